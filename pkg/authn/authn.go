// Package authn resolves the caller's identity once per request and makes
// it available to handlers through the request context. Handlers never read
// the session or headers directly for permissions; they ask for the
// Identity instead.
package authn

import (
	"context"
	"net/http"
	"strings"

	"github.com/kdalam/furnidex/config"
	"github.com/kdalam/furnidex/pkg/auth"
	"github.com/kdalam/furnidex/pkg/response"
	"github.com/kdalam/furnidex/pkg/session"
)

// Session keys written at login time.
const (
	SessionUserKey   = "username"
	SessionViewerKey = "viewer"
)

// Identity is the request-scoped authentication result.
type Identity struct {
	Username string
	Viewer   bool // may see the catalogue listing
	Admin    bool // may upload, edit prices, reset
}

type ctxKey struct{}

// FromCtx returns the Identity resolved by Middleware.
// An anonymous Identity is returned when none is present.
func FromCtx(ctx context.Context) Identity {
	if id, ok := ctx.Value(ctxKey{}).(Identity); ok {
		return id
	}
	return Identity{}
}

// WithIdentity stores an Identity in ctx. Exposed for tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IsAdminUser reports whether username is on the configured allowlist.
func IsAdminUser(username string) bool {
	if username == "" {
		return false
	}
	for _, u := range config.AdminUsers() {
		if strings.EqualFold(u, username) {
			return true
		}
	}
	return false
}

// Middleware resolves the caller's Identity from the session or, failing
// that, from a Bearer token, and injects it into the request context.
// Wire it after session.Middleware.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := resolve(r)
			ctx := WithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolve(r *http.Request) Identity {
	sess := session.FromCtx(r)

	id := Identity{Viewer: sess.GetBool(SessionViewerKey)}
	if username, ok := sess.GetString(SessionUserKey); ok && username != "" {
		id.Username = username
		id.Admin = IsAdminUser(username)
		id.Viewer = true // admins always see the listing
	}

	if id.Admin {
		return id
	}

	// Bearer token fallback for API clients.
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" || raw == r.Header.Get("Authorization") {
		return id
	}
	claims, err := auth.ValidateToken(raw)
	if err != nil {
		return id
	}
	return Identity{
		Username: claims.Username,
		Admin:    claims.Admin && IsAdminUser(claims.Username),
		Viewer:   true,
	}
}

// RequireAdmin rejects requests whose Identity is not an admin. HTML
// requests get an Arabic flash and a redirect to the search page, matching
// the upload/edit/reset gate behaviour; API requests get a 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := FromCtx(r.Context())
		if id.Admin {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			response.Forbidden(w)
			return
		}

		sess := session.FromCtx(r)
		sess.PushFlash("danger", "غير مصرح لك بالوصول لهذه الصفحة")
		_ = sess.Save(w)
		http.Redirect(w, r, "/search", http.StatusSeeOther)
	})
}

package authn_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdalam/furnidex/config"
	"github.com/kdalam/furnidex/pkg/authn"
)

func TestIsAdminUser(t *testing.T) {
	config.Set("ADMIN_USERS", "boss@example.com, second@example.com")

	assert.True(t, authn.IsAdminUser("boss@example.com"))
	assert.True(t, authn.IsAdminUser("BOSS@EXAMPLE.COM")) // case-insensitive
	assert.True(t, authn.IsAdminUser("second@example.com"))
	assert.False(t, authn.IsAdminUser("intruder@example.com"))
	assert.False(t, authn.IsAdminUser(""))
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	next, called := okHandler()
	h := authn.RequireAdmin(next)

	req := httptest.NewRequest(http.MethodPost, "/edit_price", nil)
	req = req.WithContext(authn.WithIdentity(req.Context(),
		authn.Identity{Username: "boss@example.com", Admin: true}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRedirectsBrowser(t *testing.T) {
	next, called := okHandler()
	h := authn.RequireAdmin(next)

	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/search", rec.Header().Get("Location"))
}

func TestRequireAdminForbidsAPI(t *testing.T) {
	next, called := okHandler()
	h := authn.RequireAdmin(next)

	req := httptest.NewRequest(http.MethodPost, "/api/graphql", nil)
	req = req.WithContext(authn.WithIdentity(req.Context(),
		authn.Identity{Username: "viewer", Viewer: true}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAnonymousIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id := authn.FromCtx(req.Context())
	assert.Empty(t, id.Username)
	assert.False(t, id.Viewer)
	assert.False(t, id.Admin)
}

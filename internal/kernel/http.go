// Package kernel assembles the HTTP stack: middleware, routes and the
// operational endpoints.
package kernel

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/kdalam/furnidex/app/routes"
	"github.com/kdalam/furnidex/pkg/authn"
	"github.com/kdalam/furnidex/pkg/metrics"
	"github.com/kdalam/furnidex/pkg/middleware"
	"github.com/kdalam/furnidex/pkg/reqid"
	"github.com/kdalam/furnidex/pkg/router"
	"github.com/kdalam/furnidex/pkg/session"
)

// HTTPKernel owns the configured router.
type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the middleware stack and registers all routes.
// Session resolution must run before authn so identities come from the
// loaded session, and metrics wrap everything including panics caught by
// Recovery.
func NewHTTPKernel(db *gorm.DB) *HTTPKernel {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		session.Middleware(session.DefaultOptions()),
		authn.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)

	routes.Register(r, db)

	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return &HTTPKernel{router: r}
}

// Handler returns the root http.Handler.
func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Routes exposes the named route table for the route:list command.
func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}

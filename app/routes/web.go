// Package routes registers the HTTP surface.
package routes

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/kdalam/furnidex/app/controllers"
	"github.com/kdalam/furnidex/app/repositories"
	"github.com/kdalam/furnidex/pkg/authn"
	"github.com/kdalam/furnidex/pkg/logger"
	"github.com/kdalam/furnidex/pkg/router"
	"github.com/kdalam/furnidex/pkg/ws"
)

// Register wires every route against the shared database handle.
func Register(r *router.Router, db *gorm.DB) {
	repo := repositories.NewProductRepository(db)

	search := controllers.NewSearchController(repo)
	catalog := controllers.NewCatalogController(repo)
	upload := controllers.NewUploadController(repo)
	auth := controllers.NewAuthController()

	// Public pages.
	r.Get("/", "home", search.Home)
	r.Get("/search", "search.page", search.Page)
	r.Post("/api/search", "search.api", search.API)

	r.Get("/products", "catalog.list", catalog.Products)
	r.Post("/products", "catalog.unlock", catalog.Products)
	r.Get("/export_excel", "catalog.export", catalog.Export)

	// Google Sheet import carries its own credential requirement and has
	// historically been open to any authenticated browser session.
	r.Post("/upload_sheet", "upload.sheet", upload.UploadSheet)

	// Admin login.
	r.Get("/login", "auth.form", auth.LoginForm)
	r.Post("/login", "auth.login", auth.Login)
	r.Post("/logout", "auth.logout", auth.Logout)
	r.Post("/api/token", "auth.token", auth.APIToken)

	// Admin-only mutations.
	admin := r.Group("", authn.RequireAdmin)
	admin.Get("/upload", "upload.page", upload.Page)
	admin.Post("/upload_file", "upload.file", upload.UploadFile)
	admin.Post("/edit_price", "catalog.edit_price", catalog.EditPrice)
	admin.Post("/reset", "catalog.reset", catalog.Reset)

	// Read-only query API.
	if gql, err := controllers.NewGraphQLHandler(repo); err != nil {
		logger.Error("routes: graphql schema", "error", err)
	} else {
		r.Post("/api/graphql", "api.graphql", gql)
	}

	// Catalogue change events.
	r.Get("/ws/catalog", "ws.catalog", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, ws.Catalog)
	})
}

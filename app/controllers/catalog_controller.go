package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kdalam/furnidex/app/repositories"
	"github.com/kdalam/furnidex/app/services"
	"github.com/kdalam/furnidex/app/views"
	"github.com/kdalam/furnidex/config"
	"github.com/kdalam/furnidex/pkg/auth"
	"github.com/kdalam/furnidex/pkg/authn"
	"github.com/kdalam/furnidex/pkg/logger"
	"github.com/kdalam/furnidex/pkg/metrics"
	"github.com/kdalam/furnidex/pkg/session"
	"github.com/kdalam/furnidex/pkg/ws"
)

type CatalogController struct {
	repo     *repositories.ProductRepository
	exporter *services.ExportService
}

func NewCatalogController(repo *repositories.ProductRepository) *CatalogController {
	return &CatalogController{
		repo:     repo,
		exporter: services.NewExportService(repo),
	}
}

// Products serves the catalogue listing behind the shared view password.
// GET renders the table when the session is already authorised, otherwise
// the password form. POST checks the submitted password against the
// bcrypt hash and marks the session as a viewer.
func (c *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	id := authn.FromCtx(r.Context())

	if r.Method == http.MethodPost {
		password := r.FormValue("password")
		if !auth.CheckPassword(config.ViewPasswordHash(), password) {
			sess.PushFlash("danger", "كلمة المرور غير صحيحة")
			views.Render(w, r, "products", map[string]interface{}{
				"Authenticated": false,
			})
			return
		}
		sess.Set(authn.SessionViewerKey, true)
		sess.Save(w)
		id.Viewer = true
	}

	if !id.Viewer {
		views.Render(w, r, "products", map[string]interface{}{
			"Authenticated": false,
		})
		return
	}

	products, err := c.repo.All()
	if err != nil {
		logger.Error("catalog: list products", "error", err)
		views.Errorf(w, r, "/search", "حدث خطأ أثناء تحميل الأصناف")
		return
	}

	views.Render(w, r, "products", map[string]interface{}{
		"Authenticated": true,
		"Products":      products,
	})
}

// EditPrice overwrites the price of one product. Admin only (enforced by
// routing middleware).
func (c *CatalogController) EditPrice(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.FormValue("code"))
	price := strings.TrimSpace(r.FormValue("price"))

	if code == "" || price == "" {
		views.Redirect(w, r, "/products", "danger", "يرجى تعبئة جميع الحقول المطلوبة")
		return
	}

	err := c.repo.UpdatePrice(code, price)
	if errors.Is(err, repositories.ErrNotFound) {
		views.Redirect(w, r, "/products", "danger", "لم يتم العثور على المنتج")
		return
	}
	if err != nil {
		logger.Error("catalog: price edit failed", "code", code, "error", err)
		views.Errorf(w, r, "/products", "حدث خطأ أثناء تحديث السعر: %v", err)
		return
	}

	metrics.PriceEdits.Inc()
	ws.Catalog.Notify("price_updated", map[string]interface{}{
		"code":  code,
		"price": price,
	})
	logger.Info("catalog: price updated",
		"code", code, "actor", authn.FromCtx(r.Context()).Username)
	views.Redirect(w, r, "/products", "success", "تم تحديث السعر بنجاح")
}

// Reset deletes every product. Admin only.
func (c *CatalogController) Reset(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.DeleteAll(); err != nil {
		logger.Error("catalog: reset failed", "error", err)
		views.Errorf(w, r, "/products", "حدث خطأ أثناء حذف الأصناف: %v", err)
		return
	}

	ws.Catalog.Notify("reset", nil)
	logger.Info("catalog: reset", "actor", authn.FromCtx(r.Context()).Username)
	views.Redirect(w, r, "/products", "info", "تم حذف جميع الأصناف بنجاح")
}

// Export streams the catalogue as an Excel attachment.
func (c *CatalogController) Export(w http.ResponseWriter, r *http.Request) {
	buf, err := c.exporter.Workbook()
	if errors.Is(err, services.ErrNothingToExport) {
		views.Redirect(w, r, "/products", "warning", "لا توجد أصناف للتصدير")
		return
	}
	if err != nil {
		logger.Error("catalog: export failed", "error", err)
		views.Errorf(w, r, "/products", "حدث خطأ أثناء تصدير الملف: %v", err)
		return
	}

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+services.ExportFilename+`"`)
	w.Write(buf.Bytes())
}

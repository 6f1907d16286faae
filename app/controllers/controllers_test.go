package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kdalam/furnidex/app/controllers"
	"github.com/kdalam/furnidex/app/models"
	"github.com/kdalam/furnidex/app/repositories"
	"github.com/kdalam/furnidex/config"
	"github.com/kdalam/furnidex/pkg/auth"
	"github.com/kdalam/furnidex/pkg/authn"
	"github.com/kdalam/furnidex/pkg/session"
)

func testRepo(t *testing.T) *repositories.ProductRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.ImportRun{}))
	return repositories.NewProductRepository(db)
}

func seedProducts(t *testing.T, repo *repositories.ProductRepository) {
	t.Helper()
	require.NoError(t, repo.ReplaceAll([]models.Product{
		{Code: "A1", Description: "Chair", Price: "100", Supplier: "X"},
		{Code: "B2", Description: "Table", Price: "250", Supplier: "Y"},
	}, nil))
}

// withSession runs the handler behind the session middleware so flashes
// and viewer flags have somewhere to live.
func withSession(h http.HandlerFunc) http.Handler {
	return session.Middleware(session.DefaultOptions())(h)
}

func asIdentity(r *http.Request, id authn.Identity) *http.Request {
	return r.WithContext(authn.WithIdentity(r.Context(), id))
}

// ── Search API ────────────────────────────────────────────────────────────────

func TestSearchAPIFindsProduct(t *testing.T) {
	repo := testRepo(t)
	seedProducts(t, repo)
	c := controllers.NewSearchController(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/search",
		strings.NewReader(`{"code":" A1 "}`))
	rec := httptest.NewRecorder()
	c.API(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"Chair"`)
}

func TestSearchAPIUnknownCode(t *testing.T) {
	repo := testRepo(t)
	seedProducts(t, repo)
	c := controllers.NewSearchController(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/search",
		strings.NewReader(`{"code":"ZZ"}`))
	rec := httptest.NewRecorder()
	c.API(rec, req)

	assert.Contains(t, rec.Body.String(), "Product not found")
}

func TestSearchAPIEmptyCode(t *testing.T) {
	c := controllers.NewSearchController(testRepo(t))

	req := httptest.NewRequest(http.MethodPost, "/api/search",
		strings.NewReader(`{"code":""}`))
	rec := httptest.NewRecorder()
	c.API(rec, req)

	assert.Contains(t, rec.Body.String(), "No product code provided")
}

// ── Viewer gate ───────────────────────────────────────────────────────────────

func TestProductsRequiresPassword(t *testing.T) {
	repo := testRepo(t)
	seedProducts(t, repo)
	c := controllers.NewCatalogController(repo)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	withSession(c.Products).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="password"`)
	assert.NotContains(t, rec.Body.String(), "Chair")
}

func TestProductsCorrectPassword(t *testing.T) {
	hash, err := auth.HashPassword("7120")
	require.NoError(t, err)
	config.Set("VIEW_PASSWORD_HASH", hash)

	repo := testRepo(t)
	seedProducts(t, repo)
	c := controllers.NewCatalogController(repo)

	form := url.Values{"password": {"7120"}}
	req := httptest.NewRequest(http.MethodPost, "/products",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	withSession(c.Products).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chair")
	assert.Contains(t, rec.Body.String(), "Table")
}

func TestProductsWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("7120")
	require.NoError(t, err)
	config.Set("VIEW_PASSWORD_HASH", hash)

	repo := testRepo(t)
	seedProducts(t, repo)
	c := controllers.NewCatalogController(repo)

	form := url.Values{"password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/products",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	withSession(c.Products).ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "كلمة المرور غير صحيحة")
	assert.NotContains(t, rec.Body.String(), "Chair")
}

// ── Price edit ────────────────────────────────────────────────────────────────

func TestEditPrice(t *testing.T) {
	repo := testRepo(t)
	seedProducts(t, repo)
	c := controllers.NewCatalogController(repo)

	form := url.Values{"code": {"A1"}, "price": {"175"}}
	req := httptest.NewRequest(http.MethodPost, "/edit_price",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = asIdentity(req, authn.Identity{Username: "admin", Admin: true, Viewer: true})
	rec := httptest.NewRecorder()
	withSession(c.EditPrice).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)

	p, err := repo.FindByCode("A1")
	require.NoError(t, err)
	assert.Equal(t, "175", p.Price)

	// Only the target row changed.
	other, err := repo.FindByCode("B2")
	require.NoError(t, err)
	assert.Equal(t, "250", other.Price)
}

func TestEditPriceUnknownCode(t *testing.T) {
	repo := testRepo(t)
	seedProducts(t, repo)
	c := controllers.NewCatalogController(repo)

	form := url.Values{"code": {"ZZ"}, "price": {"175"}}
	req := httptest.NewRequest(http.MethodPost, "/edit_price",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	withSession(c.EditPrice).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)

	// Nothing changed.
	p, err := repo.FindByCode("A1")
	require.NoError(t, err)
	assert.Equal(t, "100", p.Price)
}

func TestEditPriceMissingFields(t *testing.T) {
	repo := testRepo(t)
	seedProducts(t, repo)
	c := controllers.NewCatalogController(repo)

	form := url.Values{"code": {"A1"}}
	req := httptest.NewRequest(http.MethodPost, "/edit_price",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	withSession(c.EditPrice).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	p, err := repo.FindByCode("A1")
	require.NoError(t, err)
	assert.Equal(t, "100", p.Price)
}

// ── Reset / export ────────────────────────────────────────────────────────────

func TestReset(t *testing.T) {
	repo := testRepo(t)
	seedProducts(t, repo)
	c := controllers.NewCatalogController(repo)

	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	req = asIdentity(req, authn.Identity{Username: "admin", Admin: true})
	rec := httptest.NewRecorder()
	withSession(c.Reset).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExportAttachment(t *testing.T) {
	repo := testRepo(t)
	seedProducts(t, repo)
	c := controllers.NewCatalogController(repo)

	req := httptest.NewRequest(http.MethodGet, "/export_excel", nil)
	rec := httptest.NewRecorder()
	withSession(c.Export).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "furniture_products.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestExportEmptyRedirects(t *testing.T) {
	repo := testRepo(t)
	c := controllers.NewCatalogController(repo)

	req := httptest.NewRequest(http.MethodGet, "/export_excel", nil)
	rec := httptest.NewRecorder()
	withSession(c.Export).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))
}

// ── Uploads ───────────────────────────────────────────────────────────────────

func multipartFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadFileCSV(t *testing.T) {
	config.Set("STORAGE_DISK", "local")
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())

	repo := testRepo(t)
	c := controllers.NewUploadController(repo)

	csv := "code,description,price,supplier\nA1,Chair,100,X\n"
	body, contentType := multipartFile(t, "file", "catalog.csv", []byte(csv))
	req := httptest.NewRequest(http.MethodPost, "/upload_file", body)
	req.Header.Set("Content-Type", contentType)
	req = asIdentity(req, authn.Identity{Username: "admin", Admin: true})
	rec := httptest.NewRecorder()
	withSession(c.UploadFile).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))

	p, err := repo.FindByCode("A1")
	require.NoError(t, err)
	assert.Equal(t, "Chair", p.Description)
}

func TestUploadFileRejectsExtension(t *testing.T) {
	repo := testRepo(t)
	c := controllers.NewUploadController(repo)

	body, contentType := multipartFile(t, "file", "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/upload_file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	withSession(c.UploadFile).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/upload", rec.Header().Get("Location"))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUploadSheetMissingURL(t *testing.T) {
	repo := testRepo(t)
	c := controllers.NewUploadController(repo)

	req := httptest.NewRequest(http.MethodPost, "/upload_sheet", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	withSession(c.UploadSheet).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/upload", rec.Header().Get("Location"))
}

func TestUploadSheetBadURL(t *testing.T) {
	config.Set("GOOGLE_SHEETS_CREDENTIALS", `{"type":"service_account"}`)

	repo := testRepo(t)
	c := controllers.NewUploadController(repo)

	form := url.Values{"sheet_url": {"https://example.com/not-a-sheet"}}
	req := httptest.NewRequest(http.MethodPost, "/upload_sheet",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	withSession(c.UploadSheet).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/upload", rec.Header().Get("Location"))
}

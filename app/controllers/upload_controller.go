package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/kdalam/furnidex/app/repositories"
	"github.com/kdalam/furnidex/app/services"
	"github.com/kdalam/furnidex/app/views"
	"github.com/kdalam/furnidex/pkg/authn"
	"github.com/kdalam/furnidex/pkg/logger"
	"github.com/kdalam/furnidex/pkg/storage"
	"github.com/kdalam/furnidex/pkg/tabular"
)

// maxUploadBytes caps uploaded catalogue files at 16 MB.
const maxUploadBytes = 16 << 20

type UploadController struct {
	repo     *repositories.ProductRepository
	importer *services.ImportService
	sheets   *services.SheetService
}

func NewUploadController(repo *repositories.ProductRepository) *UploadController {
	return &UploadController{
		repo:     repo,
		importer: services.NewImportService(repo),
		sheets:   services.NewSheetService(),
	}
}

// Page renders the upload forms plus the recent import history.
func (c *UploadController) Page(w http.ResponseWriter, r *http.Request) {
	runs, err := c.repo.ImportRuns(20)
	if err != nil {
		logger.Error("upload: load import history", "error", err)
	}
	views.Render(w, r, "upload", map[string]interface{}{
		"Runs": runs,
	})
}

// UploadFile ingests a catalogue file posted as multipart field "file".
func (c *UploadController) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		views.Redirect(w, r, "/upload", "danger", "لم يتم العثور على ملف")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		views.Redirect(w, r, "/upload", "danger", "لم يتم اختيار ملف للتحميل")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
		views.Redirect(w, r, "/upload", "danger", "يرجى تحميل ملف CSV أو Excel فقط")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		views.Errorf(w, r, "/upload", "حدث خطأ أثناء معالجة الملف: %v", err)
		return
	}

	var ds *tabular.Dataset
	if ext == ".csv" {
		ds, err = tabular.ReadCSV(bytes.NewReader(content))
	} else {
		ds, err = tabular.ReadExcel(bytes.NewReader(content))
	}
	if err != nil {
		logger.Error("upload: parse failed", "file", header.Filename, "error", err)
		views.Errorf(w, r, "/upload", "حدث خطأ أثناء معالجة الملف: %v", err)
		return
	}

	actor := authn.FromCtx(r.Context()).Username
	if _, err := c.importer.Import(ds, "file", header.Filename, actor); err != nil {
		views.Errorf(w, r, "/upload", "حدث خطأ أثناء معالجة الملف: %v", err)
		return
	}

	c.archive(header.Filename, content)

	views.Redirect(w, r, "/products", "success",
		fmt.Sprintf("تم تحميل ومعالجة الملف %s بنجاح", header.Filename))
}

// archive keeps a copy of the raw upload on the storage disk. Failures are
// logged but never fail the import; the rows are already committed.
func (c *UploadController) archive(filename string, content []byte) {
	name := fmt.Sprintf("uploads/%s_%s",
		time.Now().UTC().Format("20060102-150405"), filepath.Base(filename))
	if err := storage.Put(name, content); err != nil {
		logger.Warn("upload: archive failed", "path", name, "error", err)
	}
}

// UploadSheet ingests the first worksheet of a Google Sheet by URL.
func (c *UploadController) UploadSheet(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.FormValue("sheet_url"))
	if url == "" {
		views.Redirect(w, r, "/upload", "danger", "لم يتم إدخال رابط Google Sheet")
		return
	}

	ds, id, err := c.sheets.Fetch(r.Context(), url)
	switch {
	case errors.Is(err, services.ErrNoCredentials):
		views.Redirect(w, r, "/upload", "danger",
			"لم يتم العثور على بيانات اعتماد Google Sheets. يرجى تكوين بيانات الاعتماد.")
		return
	case errors.Is(err, services.ErrBadSheetURL):
		views.Redirect(w, r, "/upload", "danger", "تنسيق رابط Google Sheet غير صالح")
		return
	case err != nil:
		logger.Error("upload: sheet fetch failed", "url", url, "error", err)
		views.Errorf(w, r, "/upload", "حدث خطأ أثناء معالجة Google Sheet: %v", err)
		return
	}

	actor := authn.FromCtx(r.Context()).Username
	if _, err := c.importer.Import(ds, "sheet", id, actor); err != nil {
		views.Errorf(w, r, "/upload", "حدث خطأ أثناء معالجة Google Sheet: %v", err)
		return
	}

	views.Redirect(w, r, "/products", "success", "تم معالجة Google Sheet بنجاح")
}

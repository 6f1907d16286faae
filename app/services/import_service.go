// Package services implements the catalogue business logic.
package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kdalam/furnidex/app/models"
	"github.com/kdalam/furnidex/app/repositories"
	"github.com/kdalam/furnidex/config"
	"github.com/kdalam/furnidex/pkg/logger"
	"github.com/kdalam/furnidex/pkg/metrics"
	"github.com/kdalam/furnidex/pkg/tabular"
	"github.com/kdalam/furnidex/pkg/ws"
)

// Logical fields each source sheet must provide, under some accepted header.
const (
	FieldCode        = "code"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldSupplier    = "supplier"
)

// ErrMissingColumn names the logical field no header alias resolved to.
type ErrMissingColumn struct {
	Field string
}

func (e *ErrMissingColumn) Error() string {
	return fmt.Sprintf("missing required column: %s (or its Arabic equivalent)", e.Field)
}

// defaultAliases maps each logical field to its accepted headers in
// priority order. Source sheets come from Arabic-speaking suppliers, so
// every field accepts Arabic variants alongside the English name.
var defaultAliases = map[string][]string{
	FieldCode:        {"code", "قطعة كود", "كود القطعة", "الكود", "كود"},
	FieldDescription: {"description", "وصف القطعة", "الوصف", "وصف المنتج", "وصف"},
	FieldPrice:       {"price", "السعر", "سعر المنتج", "سعر القطعة"},
	FieldSupplier:    {"supplier", "المورد", "اسم المورد"},
}

// fieldOrder keeps error reporting deterministic.
var fieldOrder = []string{FieldCode, FieldDescription, FieldPrice, FieldSupplier}

// ImportService turns parsed datasets into the product catalogue.
type ImportService struct {
	repo    *repositories.ProductRepository
	aliases map[string][]string
}

func NewImportService(repo *repositories.ProductRepository) *ImportService {
	return &ImportService{
		repo:    repo,
		aliases: loadAliases(),
	}
}

// loadAliases returns the default alias table, extended with any extra
// aliases from COLUMN_ALIASES_FILE. Extra aliases are appended after the
// defaults so the built-in priority order is preserved.
func loadAliases() map[string][]string {
	aliases := make(map[string][]string, len(defaultAliases))
	for field, list := range defaultAliases {
		aliases[field] = append([]string(nil), list...)
	}

	path := config.ColumnAliasesFile()
	if path == "" {
		return aliases
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// The default path is optional; only complain when it exists but
		// cannot be read.
		if !os.IsNotExist(err) {
			logger.Warn("import: alias file unreadable, using defaults", "path", path, "error", err)
		}
		return aliases
	}

	var extra map[string][]string
	if err := json.Unmarshal(data, &extra); err != nil {
		logger.Warn("import: alias file invalid, using defaults", "path", path, "error", err)
		return aliases
	}

	for field, list := range extra {
		if _, ok := aliases[field]; !ok {
			continue
		}
		for _, a := range list {
			a = strings.TrimSpace(a)
			if a != "" && !containsFold(aliases[field], a) {
				aliases[field] = append(aliases[field], a)
			}
		}
	}
	return aliases
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// ResolveColumns maps each logical field to the first of its aliases that
// appears in the dataset's header. All four fields must resolve before any
// row is touched.
func (s *ImportService) ResolveColumns(ds *tabular.Dataset) (map[string]string, error) {
	present := make(map[string]bool, len(ds.Columns))
	for _, col := range ds.Columns {
		present[col] = true
	}

	mapping := make(map[string]string, len(fieldOrder))
	for _, field := range fieldOrder {
		found := false
		for _, alias := range s.aliases[field] {
			if present[alias] {
				mapping[field] = alias
				found = true
				break
			}
		}
		if !found {
			return nil, &ErrMissingColumn{Field: field}
		}
	}
	return mapping, nil
}

// Import replaces the whole catalogue with the dataset's rows.
//
// The delete and all inserts run in one transaction: a mid-run failure
// (duplicate code, constraint violation) leaves the previous catalogue
// intact. source is "file", "sheet" or "cli"; name identifies the upload.
func (s *ImportService) Import(ds *tabular.Dataset, source, name, actor string) (int, error) {
	mapping, err := s.ResolveColumns(ds)
	if err != nil {
		metrics.ImportsTotal.WithLabelValues(source, "failed").Inc()
		return 0, err
	}

	products := make([]models.Product, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		code := strings.TrimSpace(row[mapping[FieldCode]])
		if code == "" {
			continue
		}
		products = append(products, models.Product{
			Code:        code,
			Description: row[mapping[FieldDescription]],
			Price:       row[mapping[FieldPrice]],
			Supplier:    row[mapping[FieldSupplier]],
		})
	}

	run := &models.ImportRun{Source: source, Name: name, Actor: actor}
	if err := s.repo.ReplaceAll(products, run); err != nil {
		metrics.ImportsTotal.WithLabelValues(source, "failed").Inc()
		return 0, fmt.Errorf("import: replace catalogue: %w", err)
	}

	metrics.ImportsTotal.WithLabelValues(source, "success").Inc()
	metrics.RowsIngested.Add(float64(len(products)))
	ws.Catalog.Notify("imported", map[string]interface{}{
		"source": source,
		"rows":   len(products),
	})

	logger.Info("import: catalogue replaced",
		"source", source, "name", name, "rows", len(products), "actor", actor)
	return len(products), nil
}

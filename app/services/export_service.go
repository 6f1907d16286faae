package services

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kdalam/furnidex/app/repositories"
)

// ErrNothingToExport means the catalogue is empty.
var ErrNothingToExport = errors.New("no products to export")

// ExportFilename is the attachment name served to the browser.
const ExportFilename = "furniture_products.xlsx"

const exportSheetName = "الأصناف"

// exportHeaders match the column names the suppliers expect.
var exportHeaders = []string{"الكود", "الوصف", "السعر", "المورد"}

// ExportService renders the catalogue as an Excel workbook.
type ExportService struct {
	repo *repositories.ProductRepository
}

func NewExportService(repo *repositories.ProductRepository) *ExportService {
	return &ExportService{repo: repo}
}

// Workbook builds an XLSX file with one row per product.
// Returns ErrNothingToExport when the catalogue is empty.
func (s *ExportService) Workbook() (*bytes.Buffer, error) {
	products, err := s.repo.All()
	if err != nil {
		return nil, fmt.Errorf("export: load products: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, h); err != nil {
			return nil, fmt.Errorf("export: write header: %w", err)
		}
	}

	for i, p := range products {
		values := []string{p.Code, p.Description, p.Price, p.Supplier}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(exportSheetName, cell, v); err != nil {
				return nil, fmt.Errorf("export: write row %d: %w", i+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: serialize workbook: %w", err)
	}
	return buf, nil
}

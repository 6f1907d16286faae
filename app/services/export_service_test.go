package services_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kdalam/furnidex/app/models"
	"github.com/kdalam/furnidex/app/services"
)

func TestExportWorkbook(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.ReplaceAll([]models.Product{
		{Code: "A1", Description: "Chair", Price: "100", Supplier: "X"},
		{Code: "B2", Description: "Table", Price: "250", Supplier: "Y"},
	}, nil))

	buf, err := services.NewExportService(repo).Workbook()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("الأصناف")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 products

	assert.Equal(t, []string{"الكود", "الوصف", "السعر", "المورد"}, rows[0])
	assert.Equal(t, []string{"A1", "Chair", "100", "X"}, rows[1])
	assert.Equal(t, []string{"B2", "Table", "250", "Y"}, rows[2])
}

func TestExportEmptyCatalogue(t *testing.T) {
	repo := testRepo(t)
	_, err := services.NewExportService(repo).Workbook()
	assert.ErrorIs(t, err, services.ErrNothingToExport)
}

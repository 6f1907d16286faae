package tabular_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kdalam/furnidex/pkg/tabular"
)

func TestReadCSV(t *testing.T) {
	in := "code,description,price,supplier\nA1,Chair,100,X\nB2,Table,250,Y\n"

	ds, err := tabular.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "description", "price", "supplier"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "A1", ds.Rows[0]["code"])
	assert.Equal(t, "Chair", ds.Rows[0]["description"])
	assert.Equal(t, "100", ds.Rows[0]["price"])
	assert.Equal(t, "X", ds.Rows[0]["supplier"])
}

func TestReadCSVStripsBOM(t *testing.T) {
	in := "\xEF\xBB\xBFcode,price\nA1,100\n"

	ds, err := tabular.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "code", ds.Columns[0])
	assert.Equal(t, "A1", ds.Rows[0]["code"])
}

func TestReadCSVUnevenRows(t *testing.T) {
	in := "code,description,price\nA1,Chair\nB2,Table,250,extra\n"

	ds, err := tabular.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	// Short row padded with empty cells.
	assert.Equal(t, "", ds.Rows[0]["price"])
	// Extra cell beyond the header width is dropped.
	assert.Equal(t, "250", ds.Rows[1]["price"])
}

func TestReadCSVArabicHeaders(t *testing.T) {
	in := "الكود,الوصف,السعر,المورد\nA1,كرسي,100,مورد\n"

	ds, err := tabular.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "A1", ds.Rows[0]["الكود"])
	assert.Equal(t, "كرسي", ds.Rows[0]["الوصف"])
}

func TestFromRecordsEmpty(t *testing.T) {
	_, err := tabular.FromRecords(nil)
	assert.ErrorIs(t, err, tabular.ErrEmpty)
}

func TestFromRecordsTrimsCells(t *testing.T) {
	ds, err := tabular.FromRecords([][]string{
		{" code ", "price"},
		{" A1 ", " 100 "},
	})
	require.NoError(t, err)
	assert.Equal(t, "code", ds.Columns[0])
	assert.Equal(t, "A1", ds.Rows[0]["code"])
	assert.Equal(t, "100", ds.Rows[0]["price"])
}

func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"code", "description", "price", "supplier"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"A1", "Chair", "100", "X"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ds, err := tabular.ReadExcel(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "Chair", ds.Rows[0]["description"])
}

func TestReadExcelRejectsNonWorkbook(t *testing.T) {
	_, err := tabular.ReadExcel(strings.NewReader("not an xlsx file"))
	assert.Error(t, err)
}

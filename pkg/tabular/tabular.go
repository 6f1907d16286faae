// Package tabular reads uploaded spreadsheet data into a uniform shape.
//
// CSV and XLSX inputs both come out as a Dataset: an ordered header row
// plus one string map per data row, keyed by the trimmed header text.
package tabular

import (
	"errors"
	"strings"
)

// ErrEmpty is returned when the input has no header row.
var ErrEmpty = errors.New("tabular: input has no rows")

// Dataset is a parsed sheet: ordered column headers and row maps.
type Dataset struct {
	Columns []string
	Rows    []map[string]string
}

// FromRecords builds a Dataset from raw records. The first record is the
// header row; short data rows are padded with empty strings and extra
// cells beyond the header width are dropped.
func FromRecords(records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	columns := make([]string, len(records[0]))
	for i, h := range records[0] {
		columns[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Dataset{Columns: columns, Rows: rows}, nil
}

// Len returns the number of data rows.
func (d *Dataset) Len() int { return len(d.Rows) }

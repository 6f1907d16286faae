package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV parses CSV content from r into a Dataset.
// A UTF-8 byte order mark, common in exports from Windows Excel, is
// stripped before parsing. Rows may have varying field counts.
func ReadCSV(r io.Reader) (*Dataset, error) {
	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return nil, fmt.Errorf("tabular: read csv: %w", err)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tabular: read csv: %w", err)
	}

	return FromRecords(records)
}

func skipBOM(br *bufio.Reader) error {
	bom, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return err
	}
	if len(bom) == 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}
	return nil
}

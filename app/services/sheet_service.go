package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/kdalam/furnidex/config"
	"github.com/kdalam/furnidex/pkg/tabular"
)

var (
	// ErrNoCredentials means GOOGLE_SHEETS_CREDENTIALS is not configured.
	ErrNoCredentials = errors.New("google sheets credentials are not configured")

	// ErrBadSheetURL means no spreadsheet id could be extracted from the URL.
	ErrBadSheetURL = errors.New("invalid google sheet url")
)

var sheetIDRE = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9\-_]+)`)

// SpreadsheetID extracts the spreadsheet id from a Google Sheets URL.
func SpreadsheetID(url string) (string, error) {
	m := sheetIDRE.FindStringSubmatch(url)
	if m == nil {
		return "", ErrBadSheetURL
	}
	return m[1], nil
}

// SheetService fetches spreadsheet data from the Google Sheets API.
type SheetService struct{}

func NewSheetService() *SheetService {
	return &SheetService{}
}

// Fetch downloads the first worksheet of the spreadsheet behind url and
// returns it as a Dataset plus the spreadsheet id.
func (s *SheetService) Fetch(ctx context.Context, url string) (*tabular.Dataset, string, error) {
	creds := config.SheetsCredentials()
	if creds == "" {
		return nil, "", ErrNoCredentials
	}

	id, err := SpreadsheetID(url)
	if err != nil {
		return nil, "", err
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(creds)),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, "", fmt.Errorf("sheets: create client: %w", err)
	}

	meta, err := svc.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("sheets: open spreadsheet %s: %w", id, err)
	}
	if len(meta.Sheets) == 0 {
		return nil, "", fmt.Errorf("sheets: spreadsheet %s has no worksheets", id)
	}
	title := meta.Sheets[0].Properties.Title

	resp, err := svc.Spreadsheets.Values.Get(id, title).Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("sheets: read worksheet %q: %w", title, err)
	}

	records := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rec := make([]string, len(row))
		for i, cell := range row {
			rec[i] = fmt.Sprintf("%v", cell)
		}
		records = append(records, rec)
	}

	ds, err := tabular.FromRecords(records)
	if err != nil {
		return nil, "", fmt.Errorf("sheets: worksheet %q: %w", title, err)
	}
	return ds, id, nil
}

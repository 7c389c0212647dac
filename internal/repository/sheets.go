package repository

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/minhvu/sothuchi/internal/model"
)

// Sheets appends records to a single worksheet with the columns
// date | user | amount | category and reads the whole sheet back on every
// report request.
type Sheets struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

func NewSheets(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*Sheets, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("repository.Sheets couldn't read credentials file: %v", err)
	}

	svc, err := gsheet.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("repository.Sheets couldn't create sheets service: %v", err)
	}

	return &Sheets{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func (s *Sheets) Add(ctx context.Context, record *model.Record) error {
	vr := &gsheet.ValueRange{Values: [][]any{{
		record.Date.Format(model.DateLayout),
		record.User,
		record.Amount,
		record.Category,
	}}}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.readRange(), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("repository.Sheets couldn't append row: %v", err)
	}
	return nil
}

// GetAll reads every row of the sheet. Rows that don't parse back into a
// record are skipped, not fatal: a shared spreadsheet accumulates headers
// and hand-edited garbage over time.
func (s *Sheets) GetAll(ctx context.Context) ([]model.Record, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("repository.Sheets couldn't read rows: %v", err)
	}

	records := make([]model.Record, 0, len(resp.Values))
	for i, row := range resp.Values {
		record, err := rowToRecord(row)
		if err != nil {
			logrus.Infof("sheets repository skipped row %d: %v", i+1, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Sheets) readRange() string {
	return fmt.Sprintf("%s!A:D", s.sheetName)
}

func rowToRecord(row []any) (model.Record, error) {
	if len(row) < 4 {
		return model.Record{}, fmt.Errorf("row has %d cells, want 4", len(row))
	}
	cells := make([]string, 4)
	for i := range cells {
		cells[i] = strings.TrimSpace(fmt.Sprint(row[i]))
	}

	date, err := time.Parse(model.DateLayout, cells[0])
	if err != nil {
		return model.Record{}, fmt.Errorf("bad date %q", cells[0])
	}
	amount, err := strconv.ParseInt(cells[2], 10, 64)
	if err != nil {
		return model.Record{}, fmt.Errorf("bad amount %q", cells[2])
	}

	return model.Record{
		Date:     date,
		User:     cells[1],
		Amount:   amount,
		Category: cells[3],
	}, nil
}

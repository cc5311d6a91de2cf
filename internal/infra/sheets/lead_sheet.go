package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// Column layout of the leads sheet. Row 1 is the header; data starts at row 2.
const (
	colName = iota
	colCompany
	colEmail
	colMessage
	colCreatedAt
	colStatus
	colUpdatedAt
	colSource
	colReserved
	rowWidth
)

const (
	firstDataRow = 2
	lastColumn   = "I"

	// TimestampLayout matches what the web form backend always wrote.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// RangeAPI is the slice of the spreadsheet values API the reconcile needs.
type RangeAPI interface {
	Read(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
	Update(ctx context.Context, spreadsheetID, rng string, row []string) error
	// Append returns the A1 range that was written, or "" if unknown.
	Append(ctx context.Context, spreadsheetID, rng string, row []string) (string, error)
}

// LeadSheet keeps one row per email in a spreadsheet tab.
type LeadSheet struct {
	api           RangeAPI
	spreadsheetID string
	sheetName     string
}

func NewLeadSheet(api RangeAPI, spreadsheetID, sheetName string) *LeadSheet {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &LeadSheet{
		api:           api,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
}

// Upsert overwrites the first row whose email matches exactly, keeping its
// createdAt, or appends a new row. Read and write are separate calls, so two
// concurrent first submissions for one email can both append.
func (s *LeadSheet) Upsert(ctx context.Context, lead *entity.Lead, now time.Time) (entity.ReconcileResult, error) {
	if s.spreadsheetID == "" {
		return entity.ReconcileResult{}, &entity.ConfigError{Setting: "SPREADSHEET_ID"}
	}

	stamp := now.UTC().Format(TimestampLayout)

	rows, err := s.api.Read(ctx, s.spreadsheetID, s.dataRange())
	if err != nil {
		return entity.ReconcileResult{}, &entity.StoreError{Store: "sheets", Op: "read rows", Err: err}
	}

	if idx := findEmail(rows, lead.Email); idx >= 0 {
		createdAt := cell(rows[idx], colCreatedAt)
		if createdAt == "" {
			createdAt = stamp
		}

		position := idx + firstDataRow
		rng := fmt.Sprintf("%s!A%d:%s%d", s.sheetName, position, lastColumn, position)
		if err := s.api.Update(ctx, s.spreadsheetID, rng, toRow(lead, createdAt, stamp)); err != nil {
			return entity.ReconcileResult{}, &entity.StoreError{Store: "sheets", Op: "update row", Err: err}
		}

		return entity.ReconcileResult{
			Action:    entity.ActionUpdated,
			Position:  position,
			CreatedAt: parseTimestamp(createdAt),
		}, nil
	}

	written, err := s.api.Append(ctx, s.spreadsheetID, s.dataRange(), toRow(lead, stamp, stamp))
	if err != nil {
		return entity.ReconcileResult{}, &entity.StoreError{Store: "sheets", Op: "append row", Err: err}
	}

	return entity.ReconcileResult{
		Action:    entity.ActionAppended,
		Position:  rowFromRange(written),
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}, nil
}

func (s *LeadSheet) dataRange() string {
	return fmt.Sprintf("%s!A%d:%s", s.sheetName, firstDataRow, lastColumn)
}

func findEmail(rows [][]string, email string) int {
	for i, row := range rows {
		if cell(row, colEmail) == email {
			return i
		}
	}
	return -1
}

// cell tolerates short rows: the API drops trailing empty cells.
func cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func toRow(lead *entity.Lead, createdAt, updatedAt string) []string {
	row := make([]string, rowWidth)
	row[colName] = lead.Name
	row[colCompany] = lead.Company
	row[colEmail] = lead.Email
	row[colMessage] = lead.Message
	row[colCreatedAt] = createdAt
	row[colStatus] = orDefault(lead.Status, entity.StatusPending)
	row[colUpdatedAt] = updatedAt
	row[colSource] = orDefault(lead.Source, entity.DefaultSource)
	row[colReserved] = ""
	return row
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// parseTimestamp returns the zero time for cells edited by hand into
// something that is not a timestamp.
func parseTimestamp(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// rowFromRange extracts the start row of an A1 range like "Sheet1!A7:I7".
func rowFromRange(rng string) int {
	if i := strings.LastIndex(rng, "!"); i >= 0 {
		rng = rng[i+1:]
	}
	start, _, _ := strings.Cut(rng, ":")
	digits := strings.TrimLeft(start, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

package sheets

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// memorySheet is a RangeAPI over rows starting at sheet row 2.
type memorySheet struct {
	rows      [][]string
	reads     int
	updates   int
	appends   int
	readErr   error
	writeErr  error
	hideRange bool
}

func (m *memorySheet) Read(_ context.Context, _, _ string) ([][]string, error) {
	m.reads++
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([][]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (m *memorySheet) Update(_ context.Context, _, rng string, row []string) error {
	m.updates++
	if m.writeErr != nil {
		return m.writeErr
	}
	n := rowFromRange(rng)
	m.rows[n-firstDataRow] = append([]string(nil), row...)
	return nil
}

func (m *memorySheet) Append(_ context.Context, _, _ string, row []string) (string, error) {
	m.appends++
	if m.writeErr != nil {
		return "", m.writeErr
	}
	m.rows = append(m.rows, append([]string(nil), row...))
	if m.hideRange {
		return "", nil
	}
	n := len(m.rows) + firstDataRow - 1
	return fmt.Sprintf("Sheet1!A%d:I%d", n, n), nil
}

func newLead(email, name string) *entity.Lead {
	l := entity.NewLead(email)
	l.Name = name
	return l
}

var (
	t1 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 = time.Date(2024, 3, 2, 11, 30, 0, 0, time.UTC)
)

func TestUpsert_NewEmailAppends(t *testing.T) {
	api := &memorySheet{}
	sheet := NewLeadSheet(api, "sheet-id", "")

	result, err := sheet.Upsert(context.Background(), newLead("a@x.com", "Ana"), t1)

	require.NoError(t, err)
	assert.Equal(t, entity.ActionAppended, result.Action)
	assert.Equal(t, 2, result.Position)
	assert.True(t, t1.Equal(result.CreatedAt))
	require.Len(t, api.rows, 1)

	row := api.rows[0]
	assert.Len(t, row, rowWidth)
	assert.Equal(t, "Ana", row[colName])
	assert.Equal(t, "a@x.com", row[colEmail])
	assert.Equal(t, "2024-03-01T10:00:00.000Z", row[colCreatedAt])
	assert.Equal(t, row[colCreatedAt], row[colUpdatedAt])
	assert.Equal(t, entity.StatusPending, row[colStatus])
	assert.Equal(t, entity.DefaultSource, row[colSource])
}

func TestUpsert_SameEmailUpdatesAndKeepsCreatedAt(t *testing.T) {
	api := &memorySheet{}
	sheet := NewLeadSheet(api, "sheet-id", "Sheet1")
	ctx := context.Background()

	_, err := sheet.Upsert(ctx, newLead("a@x.com", "Ana"), t1)
	require.NoError(t, err)

	result, err := sheet.Upsert(ctx, newLead("a@x.com", "Ana Maria"), t2)

	require.NoError(t, err)
	assert.Equal(t, entity.ActionUpdated, result.Action)
	assert.Equal(t, 2, result.Position)
	assert.True(t, t1.Equal(result.CreatedAt))
	require.Len(t, api.rows, 1)
	assert.Equal(t, "Ana Maria", api.rows[0][colName])
	assert.Equal(t, "2024-03-01T10:00:00.000Z", api.rows[0][colCreatedAt])
	assert.Equal(t, "2024-03-02T11:30:00.000Z", api.rows[0][colUpdatedAt])
}

func TestUpsert_ReplayIsIdempotent(t *testing.T) {
	api := &memorySheet{rows: [][]string{{"Bob", "", "b@x.com"}}}
	sheet := NewLeadSheet(api, "sheet-id", "Sheet1")

	for i := 0; i < 5; i++ {
		_, err := sheet.Upsert(context.Background(), newLead("a@x.com", "Ana"), t1.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	require.Len(t, api.rows, 2)
	assert.Equal(t, 1, api.appends)
	assert.Equal(t, 4, api.updates)
	assert.Equal(t, "Ana", api.rows[1][colName])
	assert.Equal(t, "2024-03-01T10:00:00.000Z", api.rows[1][colCreatedAt])
	assert.Equal(t, "2024-03-01T10:04:00.000Z", api.rows[1][colUpdatedAt])
}

func TestUpsert_MatchesFirstExactEmailOnly(t *testing.T) {
	api := &memorySheet{rows: [][]string{
		{"Upper", "", "A@X.com", "", "2023-01-01T00:00:00.000Z"},
		{"First", "", "a@x.com", "", "2023-02-01T00:00:00.000Z"},
		{"Dup", "", "a@x.com", "", "2023-03-01T00:00:00.000Z"},
	}}
	sheet := NewLeadSheet(api, "sheet-id", "Sheet1")

	result, err := sheet.Upsert(context.Background(), newLead("a@x.com", "New"), t1)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Position)
	assert.Equal(t, "Upper", api.rows[0][colName])
	assert.Equal(t, "New", api.rows[1][colName])
	assert.Equal(t, "Dup", api.rows[2][colName])
	assert.Equal(t, "2023-02-01T00:00:00.000Z", api.rows[1][colCreatedAt])
}

func TestUpsert_EmptyCreatedAtIsBackfilled(t *testing.T) {
	api := &memorySheet{rows: [][]string{{"Ana", "", "a@x.com"}}}
	sheet := NewLeadSheet(api, "sheet-id", "Sheet1")

	result, err := sheet.Upsert(context.Background(), newLead("a@x.com", "Ana"), t2)

	require.NoError(t, err)
	assert.Equal(t, "2024-03-02T11:30:00.000Z", api.rows[0][colCreatedAt])
	assert.True(t, t2.Equal(result.CreatedAt))
}

func TestUpsert_UnknownAppendRange(t *testing.T) {
	api := &memorySheet{hideRange: true}
	sheet := NewLeadSheet(api, "sheet-id", "Sheet1")

	result, err := sheet.Upsert(context.Background(), newLead("a@x.com", "Ana"), t1)

	require.NoError(t, err)
	assert.Equal(t, entity.ActionAppended, result.Action)
	assert.Zero(t, result.Position)
}

func TestUpsert_MissingSpreadsheetID(t *testing.T) {
	api := &memorySheet{}
	sheet := NewLeadSheet(api, "", "Sheet1")

	_, err := sheet.Upsert(context.Background(), newLead("a@x.com", "Ana"), t1)

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrConfiguration)
	assert.Equal(t, "SPREADSHEET_ID is not set", err.Error())
	assert.Zero(t, api.reads)
}

func TestUpsert_StoreErrors(t *testing.T) {
	boom := errors.New("quota exceeded")

	t.Run("read", func(t *testing.T) {
		api := &memorySheet{readErr: boom}
		_, err := NewLeadSheet(api, "id", "Sheet1").Upsert(context.Background(), newLead("a@x.com", ""), t1)

		assert.ErrorIs(t, err, entity.ErrRemoteStore)
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, api.appends)
	})

	t.Run("append", func(t *testing.T) {
		api := &memorySheet{writeErr: boom}
		_, err := NewLeadSheet(api, "id", "Sheet1").Upsert(context.Background(), newLead("a@x.com", ""), t1)

		var se *entity.StoreError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "append row", se.Op)
	})

	t.Run("update", func(t *testing.T) {
		api := &memorySheet{rows: [][]string{{"", "", "a@x.com"}}, writeErr: boom}
		_, err := NewLeadSheet(api, "id", "Sheet1").Upsert(context.Background(), newLead("a@x.com", ""), t1)

		var se *entity.StoreError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "update row", se.Op)
	})
}

func TestRowFromRange(t *testing.T) {
	assert.Equal(t, 7, rowFromRange("Sheet1!A7:I7"))
	assert.Equal(t, 12, rowFromRange("'My Leads'!A12:I12"))
	assert.Equal(t, 3, rowFromRange("A3"))
	assert.Equal(t, 0, rowFromRange(""))
}

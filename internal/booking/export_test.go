package booking

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteSpreadsheet(t *testing.T) {
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	bookings := []*Booking{
		{
			ID:         "b1",
			RoomName:   "Sea View",
			UserEmail:  "a@b.c",
			CheckIn:    "2025-01-01",
			CheckOut:   "2025-01-04",
			TotalPrice: decimal.RequireFromString("374.00"),
			Status:     StatusConfirmed,
			CreatedAt:  created,
			UpdatedAt:  created,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSpreadsheet(&buf, bookings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{exportSheet}, f.GetSheetList())

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "b1", rows[1][0])
	assert.Equal(t, "Sea View", rows[1][1])
	assert.Equal(t, "374", rows[1][5])
	assert.Equal(t, "confirmed", rows[1][6])
	assert.Equal(t, "2025-01-01T10:00:00Z", rows[1][7])
}

func TestWriteSpreadsheet_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSpreadsheet(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

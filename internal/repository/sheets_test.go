package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/minhvu/sothuchi/internal/model"
)

func TestRowToRecord(t *testing.T) {
	record, err := rowToRecord([]any{"2026-01-05", "ngan", "-20000", "CF"})
	require.NoError(t, err)
	require.Equal(t, model.Record{
		Date:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		User:     "ngan",
		Amount:   -20000,
		Category: "CF",
	}, record)
}

func TestRowToRecord_SkipsMalformedRows(t *testing.T) {
	testTable := []struct {
		name string
		row  []any
	}{
		{
			name: "header row",
			row:  []any{"date", "user", "amount", "category"},
		},
		{
			name: "short row",
			row:  []any{"2026-01-05", "ngan"},
		},
		{
			name: "non numeric amount",
			row:  []any{"2026-01-05", "ngan", "twenty", "CF"},
		},
		{
			name: "bad date",
			row:  []any{"05/01/2026", "ngan", "-20000", "CF"},
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := rowToRecord(testCase.row)
			require.Error(t, err)
		})
	}
}

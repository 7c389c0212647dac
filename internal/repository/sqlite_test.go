package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/minhvu/sothuchi/internal/model"
)

func TestSQLite_AddGetAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, err := NewSQLite(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, repo.Close())
	}()

	records := []model.Record{
		{
			Date:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			User:     "ngan",
			Amount:   -20_000,
			Category: "CF",
		},
		{
			Date:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			User:     "ngan",
			Amount:   500_000,
			Category: "LUONG",
		},
		{
			Date:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			User:     "dima",
			Amount:   -35_000,
			Category: "TAXI",
		},
	}
	for i := range records {
		require.NoError(t, repo.Add(ctx, &records[i]))
	}

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, records, got)
}

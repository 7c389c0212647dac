package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/minhvu/sothuchi/internal/model"
	"github.com/minhvu/sothuchi/internal/parser"
	"github.com/minhvu/sothuchi/internal/repository"
)

func TestResolveSigns(t *testing.T) {
	today := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	batch := parser.ParseBatch("20K CF\n+1M LUONG\n-30K TAXI", today)
	require.Equal(t, 3, len(batch.Lines))

	testTable := []struct {
		name    string
		mode    model.Mode
		amounts []int64
		err     error
	}{
		{
			name:    "expense mode for unsigned, explicit wins",
			mode:    model.ModeExpense,
			amounts: []int64{-20_000, 1_000_000, -30_000},
		},
		{
			name:    "income mode for unsigned, explicit wins",
			mode:    model.ModeIncome,
			amounts: []int64{20_000, 1_000_000, -30_000},
		},
		{
			name: "unset mode with unsigned line rejects the batch",
			mode: model.ModeUnset,
			err:  ErrModeRequired,
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			amounts, err := resolveSigns(batch.Lines, testCase.mode)
			if testCase.err != nil {
				require.ErrorIs(t, err, testCase.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.amounts, amounts)
		})
	}
}

func TestResolveSigns_AllExplicitNeedsNoMode(t *testing.T) {
	batch := parser.ParseBatch("+1M LUONG\n-50K AN", time.Now())
	amounts, err := resolveSigns(batch.Lines, model.ModeUnset)
	require.NoError(t, err)
	require.Equal(t, []int64{1_000_000, -50_000}, amounts)
}

func TestRecorder_WritesResolvedBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := repository.NewLocalStorage()
	recorder := NewRecorder(repo)

	result, err := recorder.Record(ctx, "ngan", "20K CF\n30K TAXI", model.ModeExpense)
	require.NoError(t, err)
	require.Equal(t, 2, result.Written)
	require.Equal(t, 0, len(result.Rejected))

	records, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, len(records))
	require.Equal(t, int64(-20_000), records[0].Amount)
	require.Equal(t, "CF", records[0].Category)
	require.Equal(t, int64(-30_000), records[1].Amount)
	require.Equal(t, "TAXI", records[1].Category)
	for _, record := range records {
		require.Equal(t, "ngan", record.User)
	}
}

func TestRecorder_AmbiguousBatchPersistsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := repository.NewLocalStorage()
	recorder := NewRecorder(repo)

	_, err := recorder.Record(ctx, "ngan", "20K CF\n+1M LUONG", model.ModeUnset)
	require.ErrorIs(t, err, ErrModeRequired)

	records, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, len(records))
}

func TestRecorder_ReportsRejectedLines(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := repository.NewLocalStorage()
	recorder := NewRecorder(repo)

	result, err := recorder.Record(ctx, "ngan", "20K CF\nkhong co so\n20261301 5K X", model.ModeExpense)
	require.NoError(t, err)
	require.Equal(t, 1, result.Written)
	require.Equal(t, 2, len(result.Rejected))
	require.Equal(t, "khong co so", result.Rejected[0].Raw)
	require.Equal(t, "20261301 5K X", result.Rejected[1].Raw)
}

type failingStorage struct {
	*repository.LocalStorage
	failAfter int
	added     int
}

func (f *failingStorage) Add(ctx context.Context, record *model.Record) error {
	if f.added >= f.failAfter {
		return errors.New("sheet unavailable")
	}
	f.added++
	return f.LocalStorage.Add(ctx, record)
}

func TestRecorder_StopsOnStoreErrorAndKeepsPriorWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage := &failingStorage{LocalStorage: repository.NewLocalStorage(), failAfter: 1}
	recorder := NewRecorder(storage)

	result, err := recorder.Record(ctx, "ngan", "20K CF\n30K TAXI\n40K SPA", model.ModeExpense)
	require.Error(t, err)
	require.Equal(t, 1, result.Written)

	records, err := storage.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, len(records))
	require.Equal(t, int64(-20_000), records[0].Amount)
}

// Package service holds the sign-resolution policy and the aggregation over
// the stored records.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/minhvu/sothuchi/internal/model"
	"github.com/minhvu/sothuchi/internal/parser"
	"github.com/minhvu/sothuchi/internal/repository"
)

// ErrModeRequired means the batch had an unsigned line while the session
// mode was unset. The whole batch is rejected, nothing is persisted.
var ErrModeRequired = errors.New("mode required: pick income/expense or sign every line")

// BatchResult summarises one recorded message for the user.
type BatchResult struct {
	Written  int
	Rejected []parser.Rejection
}

type Recorder struct {
	repo repository.Recorder
}

func NewRecorder(repo repository.Recorder) *Recorder {
	return &Recorder{
		repo: repo,
	}
}

// Record parses text into transaction lines, resolves their signs against
// mode and appends them to the store. Sign resolution is a whole-batch
// decision: mixed unsigned input with no mode set rejects everything.
// Persistence is per line; on a store error the remaining lines are not
// attempted, prior writes stay, and the result reports how many made it.
func (r *Recorder) Record(ctx context.Context, user, text string, mode model.Mode) (*BatchResult, error) {
	batch := parser.ParseBatch(text, time.Now())
	result := &BatchResult{Rejected: batch.Rejected}
	if batch.Empty() {
		return result, nil
	}

	amounts, err := resolveSigns(batch.Lines, mode)
	if err != nil {
		return nil, err
	}

	for i, line := range batch.Lines {
		record := model.Record{
			Date:     line.Date,
			User:     user,
			Amount:   amounts[i],
			Category: line.Category,
		}
		if err = r.repo.Add(ctx, &record); err != nil {
			return result, err
		}
		result.Written++
		logrus.Infof("%s recorded %d %s on %s", user, record.Amount, record.Category,
			record.Date.Format(model.DateLayout))
	}
	return result, nil
}

// resolveSigns turns parsed magnitudes into signed amounts. An explicit sign
// always wins over the mode; unsigned lines take the mode's sign, and any
// unsigned line with an unset mode fails the whole batch.
func resolveSigns(lines []parser.Line, mode model.Mode) ([]int64, error) {
	amounts := make([]int64, len(lines))
	for i, line := range lines {
		switch {
		case line.Explicit():
			amounts[i] = int64(line.Sign) * line.Magnitude
		case mode == model.ModeIncome:
			amounts[i] = line.Magnitude
		case mode == model.ModeExpense:
			amounts[i] = -line.Magnitude
		default:
			return nil, ErrModeRequired
		}
	}
	return amounts, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minhvu/sothuchi/internal/model"
	"github.com/minhvu/sothuchi/internal/repository"
)

var (
	// ErrNoData means the scope contained no records at all, as opposed to
	// computed totals that happen to be zero.
	ErrNoData = errors.New("no records in this scope")
	// ErrPermissionDenied means a non-owner asked for another user's report.
	ErrPermissionDenied = errors.New("only the owner may view other users' reports")
)

// Reporter folds the full record set into day, month and year totals.
type Reporter struct {
	getter repository.Getter
	owner  string
}

func NewReporter(getter repository.Getter, owner string) *Reporter {
	return &Reporter{
		getter: getter,
		owner:  owner,
	}
}

func (r *Reporter) Day(ctx context.Context, user string, date time.Time) (*model.Summary, error) {
	records, err := r.getter.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporter couldn't read records: %v", err)
	}

	var summary model.Summary
	year, month, day := date.Date()
	for _, record := range records {
		ry, rm, rd := record.Date.Date()
		if record.User != user || ry != year || rm != month || rd != day {
			continue
		}
		summary.Add(record.Amount)
	}
	if summary.Empty() {
		return nil, ErrNoData
	}
	return &summary, nil
}

func (r *Reporter) Month(ctx context.Context, user string, year int, month time.Month) (*model.Summary, error) {
	records, err := r.getter.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporter couldn't read records: %v", err)
	}

	var summary model.Summary
	for _, record := range records {
		if record.User != user || record.Date.Year() != year || record.Date.Month() != month {
			continue
		}
		summary.Add(record.Amount)
	}
	if summary.Empty() {
		return nil, ErrNoData
	}
	return &summary, nil
}

// Year builds the per-month table plus best/worst month selection. target
// defaults to the requester; only the owner may name somebody else.
func (r *Reporter) Year(ctx context.Context, requester, target string, year int) (*model.YearReport, error) {
	if target == "" {
		target = requester
	}
	if target != requester && requester != r.owner {
		return nil, ErrPermissionDenied
	}

	records, err := r.getter.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporter couldn't read records: %v", err)
	}

	report := model.YearReport{Year: year}
	for _, record := range records {
		if record.User != target || record.Date.Year() != year {
			continue
		}
		report.Total.Add(record.Amount)
		report.Months[record.Date.Month()].Add(record.Amount)
	}
	if report.Total.Empty() {
		return nil, ErrNoData
	}

	report.Worst, report.Best = pickMonths(report.Months)
	return &report, nil
}

// pickMonths scans months in ascending order, so ties go to the lowest
// month number. Months without any data never win.
func pickMonths(months [13]model.Summary) (worst, best int) {
	var worstExpense, bestBalance int64
	for m := 1; m <= 12; m++ {
		summary := months[m]
		if summary.Empty() {
			continue
		}
		if worst == 0 || summary.Expense > worstExpense {
			worst = m
			worstExpense = summary.Expense
		}
		if best == 0 || summary.Balance() > bestBalance {
			best = m
			bestBalance = summary.Balance()
		}
	}
	return worst, best
}

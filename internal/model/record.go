package model

import "time"

// DateLayout is the calendar-date form records are stored with.
const DateLayout = "2006-01-02"

// UnknownUser is the sentinel for messages that carry no username.
const UnknownUser = "unknown"

// Record is one persisted transaction. Amount is in whole currency units,
// positive for income and negative for expenses, never zero.
type Record struct {
	Date     time.Time
	User     string
	Amount   int64
	Category string
}

// Mode is the per-user session default for unsigned amounts
type Mode string

const (
	ModeUnset   Mode = ""
	ModeIncome  Mode = "income"
	ModeExpense Mode = "expense"
)

// Summary holds aggregated totals for one reporting scope.
// Expense is kept as a positive number.
type Summary struct {
	Income  int64
	Expense int64
}

func (s Summary) Balance() int64 {
	return s.Income - s.Expense
}

// Add folds one signed amount into the totals.
func (s *Summary) Add(amount int64) {
	if amount > 0 {
		s.Income += amount
		return
	}
	s.Expense += -amount
}

// Empty reports whether the scope contained no records at all.
func (s Summary) Empty() bool {
	return s.Income == 0 && s.Expense == 0
}

// YearReport is the year scope output: totals, a per-month table indexed
// 1..12 and the best/worst month numbers (0 when the year has no data).
type YearReport struct {
	Year   int
	Total  Summary
	Months [13]Summary
	Best   int
	Worst  int
}

// Package parser turns raw transaction lines like "20K CF", "+1M LUONG" or
// "20260101 500K SPA" into dated, categorised magnitudes.
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// amountPattern matches the first amount token in a line: an optional sign,
// a digit run with at most one decimal point and an optional K/M unit.
var amountPattern = regexp.MustCompile(`(?i)[+-]?\d+(?:\.\d+)?[KM]?`)

var datePrefixPattern = regexp.MustCompile(`^(\d{8})(\s+|$)`)

// Line is one successfully parsed transaction line. Magnitude is always the
// absolute value; Sign is +1 or -1 when the token carried an explicit sign
// and 0 when it did not, so the caller decides the final sign.
type Line struct {
	Raw       string
	Date      time.Time
	Magnitude int64
	Sign      int
	Category  string
}

// Explicit reports whether the amount token carried its own sign.
func (l Line) Explicit() bool {
	return l.Sign != 0
}

// RejectKind separates lines that are quietly unusable from lines that are
// outright malformed. Both end up in the batch's rejected list.
type RejectKind string

const (
	// RejectDropped marks lines with no amount token, a zero magnitude or an
	// empty category after the amount is stripped.
	RejectDropped RejectKind = "dropped"
	// RejectMalformed marks lines with an invalid 8-digit date prefix, or a
	// date prefix with nothing after it.
	RejectMalformed RejectKind = "malformed"
)

type Rejection struct {
	Raw    string
	Kind   RejectKind
	Reason string
}

// Batch is the outcome of parsing one multi-line message. One line's failure
// never aborts the others.
type Batch struct {
	Lines    []Line
	Rejected []Rejection
}

// ParseBatch splits text into lines and parses each independently, skipping
// blank lines. today supplies the date for lines without a date prefix.
func ParseBatch(text string, today time.Time) Batch {
	var batch Batch
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line, rejection := ParseLine(raw, today)
		if rejection != nil {
			batch.Rejected = append(batch.Rejected, *rejection)
			continue
		}
		batch.Lines = append(batch.Lines, line)
	}
	return batch
}

// ParseLine parses a single raw line. It returns either a Line or a
// Rejection, never both.
func ParseLine(raw string, today time.Time) (Line, *Rejection) {
	content := strings.TrimSpace(raw)
	date := truncateToDay(today)

	if m := datePrefixPattern.FindStringSubmatch(content); m != nil {
		parsed, err := time.Parse("20060102", m[1])
		if err != nil {
			return Line{}, &Rejection{Raw: raw, Kind: RejectMalformed, Reason: "invalid date " + m[1]}
		}
		date = parsed
		content = strings.TrimSpace(content[len(m[0]):])
		if content == "" {
			return Line{}, &Rejection{Raw: raw, Kind: RejectMalformed, Reason: "date without amount"}
		}
	}

	loc := amountPattern.FindStringIndex(content)
	if loc == nil {
		return Line{}, &Rejection{Raw: raw, Kind: RejectDropped, Reason: "no amount"}
	}
	token := content[loc[0]:loc[1]]
	sign, magnitude, err := parseAmount(token)
	if err != nil {
		return Line{}, &Rejection{Raw: raw, Kind: RejectDropped, Reason: "bad amount " + token}
	}

	category := stripToken(content, loc[0], loc[1])
	if magnitude == 0 {
		return Line{}, &Rejection{Raw: raw, Kind: RejectDropped, Reason: "zero amount"}
	}
	if category == "" {
		return Line{}, &Rejection{Raw: raw, Kind: RejectDropped, Reason: "no category"}
	}

	return Line{
		Raw:       raw,
		Date:      date,
		Magnitude: magnitude,
		Sign:      sign,
		Category:  category,
	}, nil
}

// parseAmount evaluates one matched token. The magnitude is scaled by the
// K/M unit and truncated toward zero, so "1.5M" is 1500000 and "1.2345K"
// is 1234.
func parseAmount(token string) (sign int, magnitude int64, err error) {
	switch {
	case strings.HasPrefix(token, "+"):
		sign = 1
		token = token[1:]
	case strings.HasPrefix(token, "-"):
		sign = -1
		token = token[1:]
	}

	unit := decimal.NewFromInt(1)
	switch {
	case strings.HasSuffix(strings.ToUpper(token), "K"):
		unit = decimal.NewFromInt(1_000)
		token = token[:len(token)-1]
	case strings.HasSuffix(strings.ToUpper(token), "M"):
		unit = decimal.NewFromInt(1_000_000)
		token = token[:len(token)-1]
	}

	value, err := decimal.NewFromString(token)
	if err != nil {
		return 0, 0, err
	}
	return sign, value.Mul(unit).IntPart(), nil
}

// stripToken removes content[start:end] and rejoins the halves.
func stripToken(content string, start, end int) string {
	before := strings.TrimSpace(content[:start])
	after := strings.TrimSpace(content[end:])
	if before == "" {
		return after
	}
	if after == "" {
		return before
	}
	return before + " " + after
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsTransaction reports whether a message looks like a transaction batch:
// its first line starts with an optionally signed digit, which also covers
// the 8-digit date prefix form.
func IsTransaction(text string) bool {
	first := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	return transactionStart.MatchString(first)
}

var transactionStart = regexp.MustCompile(`^[+-]?\d`)

// Empty reports whether the batch produced no usable lines at all.
func (b Batch) Empty() bool {
	return len(b.Lines) == 0
}

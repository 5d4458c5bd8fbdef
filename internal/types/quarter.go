package types

import (
	"errors"
	"fmt"
	"time"
)

// Quarter is a calendar quarter in a specific year.
type Quarter struct {
	Year   int
	Number int // 1 to 4
}

var ErrQuarterInvalid = errors.New("the quarter must be one of T1, T2, T3, T4")

// ParseQuarter parses a quarter label ("T1".."T4" or "Q1".."Q4") for a year.
func ParseQuarter(year int, s string) (Quarter, error) {
	if len(s) != 2 || (s[0] != 'T' && s[0] != 'Q') || s[1] < '1' || s[1] > '4' {
		return Quarter{}, fmt.Errorf("%w: %q", ErrQuarterInvalid, s)
	}

	return Quarter{Year: year, Number: int(s[1] - '0')}, nil
}

// String returns the quarter formatted as "T1 2025".
func (q Quarter) String() string {
	return fmt.Sprintf("T%d %04d", q.Number, q.Year)
}

// First returns the first day of the quarter.
func (q Quarter) First() time.Time {
	return time.Date(q.Year, time.Month(3*(q.Number-1)+1), 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the first day of the following quarter.
func (q Quarter) Next() time.Time {
	return q.First().AddDate(0, 3, 0)
}

// Last returns the last day of the quarter.
func (q Quarter) Last() time.Time {
	return q.Next().AddDate(0, 0, -1)
}

// Contains reports whether the time instant is in the quarter.
func (q Quarter) Contains(t time.Time) bool {
	return !t.Before(q.First()) && t.Before(q.Next())
}

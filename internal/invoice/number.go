// Package invoice implements invoice numbering and payment statuses.
package invoice

import (
	"fmt"
	"regexp"
	"time"
)

// DefaultPrefix is used when the caller does not supply an invoice
// number prefix.
const DefaultPrefix = "JAXA"

// trailingDigits matches the last run of digits in an invoice number,
// ignoring any non-digit suffix.
var trailingDigits = regexp.MustCompile(`(\d+)[^0-9]*$`)

// dateSuffix matches the "-ddmmyyyy" tail that Format appends, so that
// Sequence reads the sequence part and not the date.
var dateSuffix = regexp.MustCompile(`-\d{8}$`)

// Sequence extracts the sequence number from an existing invoice
// number such as "JAXA_03-15032025". It returns 0 when the number
// contains no digits.
func Sequence(numero string) int {
	match := trailingDigits.FindStringSubmatch(dateSuffix.ReplaceAllString(numero, ""))
	if match == nil {
		return 0
	}

	var n int
	fmt.Sscanf(match[1], "%d", &n)
	return n
}

// Format builds an invoice number from a prefix, a sequence number and
// a date, e.g. "JAXA_03-15062025".
func Format(prefix string, sequence int, date time.Time) string {
	return fmt.Sprintf("%s_%02d-%s", prefix, sequence, date.Format("02012006"))
}

// Next suggests the invoice number following the highest existing one.
//
// The suggestion is advisory only: nothing is reserved, concurrent
// callers can receive the same number, and the user can edit it before
// saving. The caller passes the lexicographically greatest existing
// number for the prefix and year; an empty string starts the sequence
// at 1.
func Next(prefix string, latest string, date time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return Format(prefix, Sequence(latest)+1, date)
}

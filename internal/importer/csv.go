// Package importer parses bank CSV exports into transaction drafts.
//
// Bank exports vary widely, so columns are matched on their header
// names and amounts are cleaned of currency symbols and thousand
// separators before parsing.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Draft is a single parsed CSV line, not yet persisted.
type Draft struct {
	Date        time.Time
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// IsRevenu reports whether the line is an inflow.
func (d Draft) IsRevenu() bool {
	return d.Credit.IsPositive()
}

// Montant returns the unsigned amount of the line.
func (d Draft) Montant() decimal.Decimal {
	if d.IsRevenu() {
		return d.Credit
	}

	return d.Debit
}

var (
	dateHeader   = regexp.MustCompile(`(?i)date`)
	descHeader   = regexp.MustCompile(`(?i)desc|libell|memo`)
	debitHeader  = regexp.MustCompile(`(?i)debit|débit|retrait`)
	creditHeader = regexp.MustCompile(`(?i)credit|crédit|dépôt|depot`)

	nonAmount = regexp.MustCompile(`[^0-9.,-]`)
)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "2006/01/02", "02-01-2006"}

// columns holds the detected index of each mapped column. A value of
// -1 means the column is absent from the file.
type columns struct {
	date, desc, debit, credit int
}

func detectColumns(header []string) (columns, error) {
	cols := columns{date: -1, desc: -1, debit: -1, credit: -1}

	for i, name := range header {
		name = strings.TrimSpace(name)

		switch {
		case cols.date == -1 && dateHeader.MatchString(name):
			cols.date = i
		case cols.desc == -1 && descHeader.MatchString(name):
			cols.desc = i
		case cols.debit == -1 && debitHeader.MatchString(name):
			cols.debit = i
		case cols.credit == -1 && creditHeader.MatchString(name):
			cols.credit = i
		}
	}

	if cols.date == -1 {
		return cols, fmt.Errorf("aucune colonne de date trouvée dans l'en-tête")
	}

	if cols.debit == -1 && cols.credit == -1 {
		return cols, fmt.Errorf("aucune colonne de montant (débit ou crédit) trouvée dans l'en-tête")
	}

	return cols, nil
}

// Parse reads a CSV export and returns one draft per usable line.
// Lines without a date or without any amount are skipped silently,
// matching how bank exports pad their files with summary rows.
// Malformed lines that were mapped but unparseable are reported in
// the second return value, labeled with their line number.
func Parse(f io.Reader) ([]Draft, []string, error) {
	reader := csv.NewReader(f)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []Draft{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lecture de l'en-tête du CSV: %w", err)
	}

	cols, err := detectColumns(header)
	if err != nil {
		return nil, nil, err
	}

	var drafts []Draft
	var errs []string

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			errs = append(errs, fmt.Sprintf("Ligne %d: ligne CSV illisible", line))
			continue
		}

		rawDate := field(record, cols.date)
		if rawDate == "" {
			continue
		}

		debit := parseAmount(field(record, cols.debit))
		credit := parseAmount(field(record, cols.credit))
		if debit.IsZero() && credit.IsZero() {
			continue
		}

		date, err := parseDate(rawDate)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Ligne %d: date invalide: %s", line, rawDate))
			continue
		}

		drafts = append(drafts, Draft{
			Date:        date,
			Description: field(record, cols.desc),
			Debit:       debit,
			Credit:      credit,
		})
	}

	return drafts, errs, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, s); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

// parseAmount cleans a raw amount cell and returns its absolute
// value. Unparseable cells count as zero.
func parseAmount(s string) decimal.Decimal {
	s = nonAmount.ReplaceAllString(s, "")
	// Bank exports in French locales use the comma as decimal
	// separator when no dot is present.
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return amount.Abs()
}

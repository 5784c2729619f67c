// Package builtin contains the tariff normalization steps. Each step is a
// transformer.Step; the normalizer runs them in a fixed order.
package builtin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aarguelles2/nTOU/internal/domain"
	"github.com/aarguelles2/nTOU/internal/errs"
)

// dateLayouts are the accepted DateFrom forms. Only year-first layouts are
// listed: day/month order is never guessed.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"20060102",
}

// ErrUnrecognizedDate is wrapped by ParseDate failures.
var ErrUnrecognizedDate = errors.New("unrecognized date format")

// ParseDate parses s using the first matching layout in dateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnrecognizedDate
}

// ParseDates fills DateFromTime from the raw DateFrom text.
type ParseDates struct{}

func (ParseDates) Name() string { return "parse_dates" }

func (ParseDates) Apply(rows []domain.TariffRow) ([]domain.TariffRow, error) {
	for i := range rows {
		t, err := ParseDate(rows[i].DateFromText)
		if err != nil {
			return nil, &errs.ParseError{
				Row:    rows[i].Line,
				Column: domain.ColDateFrom,
				Value:  rows[i].DateFromText,
				Err:    err,
			}
		}
		rows[i].DateFromTime = t
	}
	return rows, nil
}

// FormatDateFrom renders the parsed date as the YYYYMMDD integer.
type FormatDateFrom struct{}

func (FormatDateFrom) Name() string { return "format_date_from" }

func (FormatDateFrom) Apply(rows []domain.TariffRow) ([]domain.TariffRow, error) {
	for i := range rows {
		text := rows[i].DateFromTime.Format(domain.DateFromLayout)
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, &errs.ParseError{Row: rows[i].Line, Column: domain.ColDateFrom, Value: text, Err: err}
		}
		rows[i].DateFrom = v
	}
	return rows, nil
}

package builtin

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/aarguelles2/nTOU/internal/domain"
)

// SortRows orders rows by (SSPAreaCode, parsed DateFrom, UTCFrom, TimeFrom).
// The sort is stable, so equal keys keep their input order. It must run after
// ParseDates and before any step that rewrites UTCFrom or TimeFrom.
//
// UTCFrom and TimeFrom are typed per column, not per value: a column sorts
// numerically only when every non-empty value in it is a number.
type SortRows struct{}

func (SortRows) Name() string { return "sort_rows" }

func (SortRows) Apply(rows []domain.TariffRow) ([]domain.TariffRow, error) {
	utc := columnOrder(rows, func(r domain.TariffRow) string { return r.UTCFrom })
	tod := columnOrder(rows, func(r domain.TariffRow) string { return r.TimeFrom })

	slices.SortStableFunc(rows, func(a, b domain.TariffRow) int {
		return cmp.Or(
			strings.Compare(a.SSPAreaCode, b.SSPAreaCode),
			a.DateFromTime.Compare(b.DateFromTime),
			utc(a.UTCFrom, b.UTCFrom),
			tod(a.TimeFrom, b.TimeFrom),
		)
	})
	return rows, nil
}

// columnOrder returns CompareNumeric when every value of field is numeric or
// empty, and strings.Compare otherwise.
func columnOrder(rows []domain.TariffRow, field func(domain.TariffRow) string) func(a, b string) int {
	for _, r := range rows {
		v := strings.TrimSpace(field(r))
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return strings.Compare
		}
	}
	return CompareNumeric
}

// CompareNumeric compares two numeric cell values; "930" sorts before "1000".
// Empty (or unparsable) values sort after every number.
func CompareNumeric(a, b string) int {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return cmp.Compare(fa, fb)
}

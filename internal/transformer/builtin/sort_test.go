package builtin

import (
	"testing"
	"time"

	"github.com/aarguelles2/nTOU/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time { return time.Date(2024, time.September, d, 0, 0, 0, 0, time.UTC) }

func lines(rows []domain.TariffRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Line
	}
	return out
}

func TestSortRows_ByAreaThenDate(t *testing.T) {
	t.Parallel()

	rows := []domain.TariffRow{
		{Line: 1, SSPAreaCode: "A", DateFromTime: day(18)},
		{Line: 2, SSPAreaCode: "A", DateFromTime: day(17)},
		{Line: 3, SSPAreaCode: "_", DateFromTime: day(19)},
	}
	out, err := SortRows{}.Apply(rows)
	require.NoError(t, err)
	// "A" (0x41) sorts before "_" (0x5F).
	assert.Equal(t, []int{2, 1, 3}, lines(out))
}

func TestSortRows_UTCThenTimeNumeric(t *testing.T) {
	t.Parallel()

	rows := []domain.TariffRow{
		{Line: 1, SSPAreaCode: "A", DateFromTime: day(17), UTCFrom: "8", TimeFrom: "1000"},
		{Line: 2, SSPAreaCode: "A", DateFromTime: day(17), UTCFrom: "8", TimeFrom: "930"},
		{Line: 3, SSPAreaCode: "A", DateFromTime: day(17), UTCFrom: "10", TimeFrom: "0"},
		{Line: 4, SSPAreaCode: "A", DateFromTime: day(17), UTCFrom: "1", TimeFrom: "2330"},
	}
	out, err := SortRows{}.Apply(rows)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 1, 3}, lines(out))
}

func TestSortRows_StableForEqualKeys(t *testing.T) {
	t.Parallel()

	rows := []domain.TariffRow{
		{Line: 1, SSPAreaCode: "B", DateFromTime: day(17), UTCFrom: "8", TimeFrom: "930"},
		{Line: 2, SSPAreaCode: "A", DateFromTime: day(17)},
		{Line: 3, SSPAreaCode: "B", DateFromTime: day(17), UTCFrom: "8", TimeFrom: "930"},
		{Line: 4, SSPAreaCode: "B", DateFromTime: day(17), UTCFrom: "8", TimeFrom: "930"},
	}
	out, err := SortRows{}.Apply(rows)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3, 4}, lines(out))
}

func TestSortRows_MixedColumnSortsAsTextForAnyInputOrder(t *testing.T) {
	t.Parallel()

	orders := [][]string{
		{"9", "10", "1a"},
		{"9", "1a", "10"},
		{"10", "9", "1a"},
		{"10", "1a", "9"},
		{"1a", "9", "10"},
		{"1a", "10", "9"},
	}
	for _, order := range orders {
		rows := make([]domain.TariffRow, len(order))
		for i, v := range order {
			rows[i] = domain.TariffRow{Line: i + 1, SSPAreaCode: "A", DateFromTime: day(17), TimeFrom: v}
		}
		out, err := SortRows{}.Apply(rows)
		require.NoError(t, err)

		got := make([]string, len(out))
		for i, r := range out {
			got[i] = r.TimeFrom
		}
		assert.Equal(t, []string{"10", "1a", "9"}, got, "input %v", order)
	}
}

func TestSortRows_EmptyValuesLastInNumericColumn(t *testing.T) {
	t.Parallel()

	rows := []domain.TariffRow{
		{Line: 1, SSPAreaCode: "A", DateFromTime: day(17), UTCFrom: ""},
		{Line: 2, SSPAreaCode: "A", DateFromTime: day(17), UTCFrom: "10"},
		{Line: 3, SSPAreaCode: "A", DateFromTime: day(17), UTCFrom: "9"},
	}
	out, err := SortRows{}.Apply(rows)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, lines(out))
}

func TestCompareNumeric(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"930", "1000", -1},
		{"1000", "930", 1},
		{"8", "8.0", 0},
		{"-1", "0", -1},
		{"", "5", 1},
		{"5", "", -1},
		{"", "", 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CompareNumeric(c.a, c.b), "%q vs %q", c.a, c.b)
	}
}

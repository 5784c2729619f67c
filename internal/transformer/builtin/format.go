package builtin

import (
	"strings"
	"unicode/utf8"

	"github.com/aarguelles2/nTOU/internal/domain"
)

// TimeWidth is the fixed width of TimeFrom and TimeTo.
const TimeWidth = 6

// PrefixUTC prepends '+' to UTCFrom and UTCTo. Values are prefixed
// unconditionally, including ones that already carry a sign.
type PrefixUTC struct{}

func (PrefixUTC) Name() string { return "prefix_utc" }

func (PrefixUTC) Apply(rows []domain.TariffRow) ([]domain.TariffRow, error) {
	for i := range rows {
		rows[i].UTCFrom = "+" + rows[i].UTCFrom
		rows[i].UTCTo = "+" + rows[i].UTCTo
	}
	return rows, nil
}

// ZeroPadTimes left-pads TimeFrom and TimeTo with zeros to TimeWidth.
type ZeroPadTimes struct{}

func (ZeroPadTimes) Name() string { return "zero_pad_times" }

func (ZeroPadTimes) Apply(rows []domain.TariffRow) ([]domain.TariffRow, error) {
	for i := range rows {
		rows[i].TimeFrom = ZFill(rows[i].TimeFrom, TimeWidth)
		rows[i].TimeTo = ZFill(rows[i].TimeTo, TimeWidth)
	}
	return rows, nil
}

// ZFill pads s on the left with '0' up to width characters. A leading '+'
// or '-' stays in front of the padding. Values already width or wider are
// returned unchanged.
func ZFill(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	pad := strings.Repeat("0", width-n)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[:1] + pad + s[1:]
	}
	return pad + s
}

package builtin

import (
	"strconv"

	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	"github.com/aarguelles2/nTOU/internal/domain"
)

// maxDuplicateLogs caps per-row warnings; the summary line always reports
// the full count.
const maxDuplicateLogs = 20

// ReportDuplicateKeys warns about rows that share the output sort key
// (SSPAreaCode, DateFrom, UTCFrom, TimeFrom) with an earlier row. It never
// drops or reorders rows: the output must keep the input row count.
type ReportDuplicateKeys struct {
	Log zerolog.Logger

	// Found is set to the number of duplicate rows seen by the last Apply.
	Found *int
}

func (ReportDuplicateKeys) Name() string { return "report_duplicate_keys" }

func (d ReportDuplicateKeys) Apply(rows []domain.TariffRow) ([]domain.TariffRow, error) {
	first := make(map[uint64]int, len(rows))
	dups := 0
	for _, r := range rows {
		h := keyHash(r)
		line, seen := first[h]
		if !seen {
			first[h] = r.Line
			continue
		}
		dups++
		if dups <= maxDuplicateLogs {
			d.Log.Warn().
				Int("row", r.Line).
				Int("first_row", line).
				Str("area", r.SSPAreaCode).
				Int("date_from", r.DateFrom).
				Str("utc_from", r.UTCFrom).
				Str("time_from", r.TimeFrom).
				Msg("duplicate tariff key")
		}
	}
	if dups > 0 {
		d.Log.Warn().Int("duplicates", dups).Int("rows", len(rows)).Msg("input contains duplicate tariff keys")
	}
	if d.Found != nil {
		*d.Found = dups
	}
	return rows, nil
}

func keyHash(r domain.TariffRow) uint64 {
	buf := make([]byte, 0, 64)
	buf = append(buf, r.SSPAreaCode...)
	buf = append(buf, 0)
	buf = strconv.AppendInt(buf, int64(r.DateFrom), 10)
	buf = append(buf, 0)
	buf = append(buf, r.UTCFrom...)
	buf = append(buf, 0)
	buf = append(buf, r.TimeFrom...)
	return xxh3.Hash(buf)
}

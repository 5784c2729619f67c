package builtin

import (
	"time"

	"github.com/aarguelles2/nTOU/internal/domain"
)

// StampVersion sets the same batch Version on every row. At is captured once
// per run by the caller.
type StampVersion struct {
	At time.Time
}

func (StampVersion) Name() string { return "stamp_version" }

func (s StampVersion) Apply(rows []domain.TariffRow) ([]domain.TariffRow, error) {
	v := domain.FormatVersion(s.At)
	for i := range rows {
		rows[i].Version = v
	}
	return rows, nil
}

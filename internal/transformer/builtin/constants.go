package builtin

import "github.com/aarguelles2/nTOU/internal/domain"

// AssignConstants stamps the fixed ForecastCode, CodeType, Partition and
// PriceType values.
type AssignConstants struct{}

func (AssignConstants) Name() string { return "assign_constants" }

func (AssignConstants) Apply(rows []domain.TariffRow) ([]domain.TariffRow, error) {
	for i := range rows {
		rows[i].ForecastCode = domain.ForecastCode
		rows[i].CodeType = domain.CodeType
		rows[i].Partition = domain.Partition
		rows[i].PriceType = domain.PriceType
	}
	return rows, nil
}

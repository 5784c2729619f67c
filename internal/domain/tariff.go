// Package domain defines the tariff record and its fixed output schema.
package domain

import (
	"strconv"
	"time"

	"github.com/aarguelles2/nTOU/internal/records"
)

// Input column names.
const (
	ColSSPAreaCode  = "SSPAreaCode"
	ColForecastCode = "ForecastCode"
	ColCodeType     = "CodeType"
	ColPartition    = "Partition"
	ColDateFrom     = "DateFrom"
	ColTimeFrom     = "TimeFrom"
	ColUTCFrom      = "UTCFrom"
	ColDateTo       = "DateTo"
	ColTimeTo       = "TimeTo"
	ColUTCTo        = "UTCTo"
	ColEnergyCharge = "EnergyCharge"
	ColPriceType    = "PriceType"
	ColUnit         = "Unit"
	ColDailyCharge  = "DailyCharge"
	ColCreatedBy    = "Created_by"
	ColVersion      = "Version"
)

// Constant column values stamped on every row.
const (
	ForecastCode = "ROC"
	CodeType     = "02"
	Partition    = "P001"
	PriceType    = "F"
)

// VersionLayout formats the batch version stamp (YYYYMMDDHHmm).
const VersionLayout = "200601021504"

// DateFromLayout formats the integer DateFrom (YYYYMMDD).
const DateFromLayout = "20060102"

// Columns is the output schema in emission order.
var Columns = []string{
	ColSSPAreaCode, ColForecastCode, ColCodeType, ColPartition,
	ColDateFrom, ColTimeFrom, ColUTCFrom,
	ColDateTo, ColTimeTo, ColUTCTo,
	ColEnergyCharge, ColPriceType, ColUnit, ColDailyCharge, ColCreatedBy, ColVersion,
}

// RequiredInput lists the columns an input table must carry.
var RequiredInput = []string{
	ColSSPAreaCode, ColDateFrom, ColTimeFrom, ColUTCFrom,
	ColDateTo, ColTimeTo, ColUTCTo,
	ColEnergyCharge, ColUnit, ColDailyCharge, ColCreatedBy,
}

// TariffRow is one energy-price record with its validity window. Fields are
// filled from input first and then rewritten in place by the normalization
// steps.
type TariffRow struct {
	// Line is the 1-based data row number in the input file.
	Line int

	SSPAreaCode  string
	ForecastCode string
	CodeType     string
	Partition    string

	// DateFromText is the raw input value; DateFromTime is its parsed form and
	// is the sort key. DateFrom is the YYYYMMDD integer emitted on output.
	DateFromText string
	DateFromTime time.Time
	DateFrom     int

	TimeFrom     string
	UTCFrom      string
	DateTo       string
	TimeTo       string
	UTCTo        string
	EnergyCharge string
	PriceType    string
	Unit         string
	DailyCharge  string
	CreatedBy    string
	Version      int64
}

// FromRecord copies the input columns of rec into a new row. Columns that are
// not part of the schema are ignored here, which is what drops them from the
// output.
func FromRecord(line int, rec records.Record) TariffRow {
	return TariffRow{
		Line:         line,
		SSPAreaCode:  rec[ColSSPAreaCode],
		DateFromText: rec[ColDateFrom],
		TimeFrom:     rec[ColTimeFrom],
		UTCFrom:      rec[ColUTCFrom],
		DateTo:       rec[ColDateTo],
		TimeTo:       rec[ColTimeTo],
		UTCTo:        rec[ColUTCTo],
		EnergyCharge: rec[ColEnergyCharge],
		Unit:         rec[ColUnit],
		DailyCharge:  rec[ColDailyCharge],
		CreatedBy:    rec[ColCreatedBy],
	}
}

// Values returns the row projected onto Columns.
func (r TariffRow) Values() []string {
	return []string{
		r.SSPAreaCode,
		r.ForecastCode,
		r.CodeType,
		r.Partition,
		strconv.Itoa(r.DateFrom),
		r.TimeFrom,
		r.UTCFrom,
		r.DateTo,
		r.TimeTo,
		r.UTCTo,
		r.EnergyCharge,
		r.PriceType,
		r.Unit,
		r.DailyCharge,
		r.CreatedBy,
		strconv.FormatInt(r.Version, 10),
	}
}

// FormatVersion renders t as the integer batch version stamp.
func FormatVersion(t time.Time) int64 {
	v, _ := strconv.ParseInt(t.Format(VersionLayout), 10, 64)
	return v
}

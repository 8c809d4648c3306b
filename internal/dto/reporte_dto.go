package dto

import "github.com/shopspring/decimal"

// VentaDiaria is one point of the daily-totals series: the calendar date and
// the sum of sale totals committed that day. Serialized as a (label, value)
// pair for chart consumption.
type VentaDiaria struct {
	Fecha string          `json:"fecha"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

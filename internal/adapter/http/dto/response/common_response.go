package response

import "github.com/shopspring/decimal"

// IDResponse is returned by commands that only hand back the affected record.
type IDResponse struct {
	ID string `json:"id"`
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

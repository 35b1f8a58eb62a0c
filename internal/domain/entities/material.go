package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material is a catalog entry. Price is the factor per cm³.
type Material struct {
	Code         string
	Name         string
	Price        decimal.Decimal
	LeadTimeDays int
	Properties   []string
}

// DeliveryFrom returns the expected delivery time for an order placed at t.
func (m Material) DeliveryFrom(t time.Time) time.Time {
	return t.AddDate(0, 0, m.LeadTimeDays)
}

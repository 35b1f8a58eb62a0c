// Package pricing computes quote prices from part volume, material price factor
// and quantity.
package pricing

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places kept for persisted and displayed amounts.
const MoneyPlaces = 2

type discountTier struct {
	minQuantity int
	rate        decimal.Decimal
}

// Tiers are ordered from the highest threshold down.
var discountTiers = []discountTier{
	{minQuantity: 50, rate: decimal.RequireFromString("0.20")},
	{minQuantity: 25, rate: decimal.RequireFromString("0.15")},
	{minQuantity: 10, rate: decimal.RequireFromString("0.10")},
	{minQuantity: 5, rate: decimal.RequireFromString("0.05")},
}

// Details is the full breakdown of a price calculation. Values are exact;
// call Rounded before persisting or displaying them.
type Details struct {
	UnitPrice          decimal.Decimal
	Subtotal           decimal.Decimal
	DiscountPercentage decimal.Decimal
	Discount           decimal.Decimal
	Total              decimal.Decimal
}

// DiscountRate returns the quantity discount as a fraction (0.05 for 5%).
func DiscountRate(quantity int) decimal.Decimal {
	for _, tier := range discountTiers {
		if quantity >= tier.minQuantity {
			return tier.rate
		}
	}
	return decimal.Zero
}

// Calculate prices quantity parts of volumeCm3 at materialPrice per cm³.
// A quantity of zero yields a zero subtotal and total.
func Calculate(volumeCm3, materialPrice decimal.Decimal, quantity int) Details {
	unitPrice := volumeCm3.Mul(materialPrice)
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	rate := DiscountRate(quantity)
	discount := subtotal.Mul(rate)

	return Details{
		UnitPrice:          unitPrice,
		Subtotal:           subtotal,
		DiscountPercentage: rate,
		Discount:           discount,
		Total:              subtotal.Sub(discount),
	}
}

// Rounded rounds every monetary amount to MoneyPlaces, half away from zero.
// The discount percentage is left untouched.
func (d Details) Rounded() Details {
	return Details{
		UnitPrice:          d.UnitPrice.Round(MoneyPlaces),
		Subtotal:           d.Subtotal.Round(MoneyPlaces),
		DiscountPercentage: d.DiscountPercentage,
		Discount:           d.Discount.Round(MoneyPlaces),
		Total:              d.Total.Round(MoneyPlaces),
	}
}

package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle of a quote.
//
// Transitions:
//   - draft -> ready   (completion, sets Pricing)
//   - ready -> ordered (order creation, same transaction as the order insert)
//   - draft|ready -> expired is derived at read time from ExpiresAt, see EffectiveStatus.
type QuoteStatus string

const (
	QuoteStatusDraft   QuoteStatus = "draft"
	QuoteStatusReady   QuoteStatus = "ready"
	QuoteStatusOrdered QuoteStatus = "ordered"
	QuoteStatusExpired QuoteStatus = "expired"
)

// DefaultQuoteTTL is how long a quote stays valid after creation.
const DefaultQuoteTTL = 7 * 24 * time.Hour

var (
	ErrQuotePricingMissing    = errors.New("quote pricing missing for priced status")
	ErrQuotePricingUnexpected = errors.New("quote pricing present on draft quote")
)

// QuotePricing is the group of fields written by quote completion.
//
// Monetary representation:
//   - MaterialPriceFactor keeps 4 decimal places, VolumeCm3 3, prices 2.
type QuotePricing struct {
	MaterialID          string
	MaterialName        string
	MaterialPriceFactor decimal.Decimal
	Quantity            int
	VolumeCm3           decimal.Decimal
	UnitPrice           decimal.Decimal
	QuantityDiscount    decimal.Decimal
	TotalPrice          decimal.Decimal
}

// Quote is a priced, not yet purchased estimate tied to one uploaded file.
//
// Storage model:
//   - PK: id
//   - file_id references File (many quotes per file)
//
// Pricing is nil while draft and set once the quote is ready or ordered.
type Quote struct {
	ID        string
	FileID    string
	Status    QuoteStatus
	CreatedAt time.Time
	ExpiresAt time.Time
	Pricing   *QuotePricing
}

// EffectiveStatus layers lazy expiry over the stored status. The stored status
// is never rewritten to expired.
func (q Quote) EffectiveStatus(now time.Time) QuoteStatus {
	switch q.Status {
	case QuoteStatusDraft, QuoteStatusReady:
		if !now.Before(q.ExpiresAt) {
			return QuoteStatusExpired
		}
	}
	return q.Status
}

// Validate checks the completeness invariant between status and pricing.
func (q Quote) Validate() error {
	switch q.Status {
	case QuoteStatusDraft:
		if q.Pricing != nil {
			return ErrQuotePricingUnexpected
		}
	case QuoteStatusReady, QuoteStatusOrdered:
		if q.Pricing == nil {
			return ErrQuotePricingMissing
		}
	}
	return nil
}

package entities

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ConfirmationSucceeded is the normalized provider outcome for a captured payment.
// Gateways translate their own vocabulary (e.g. Mercado Pago "approved") into it.
const ConfirmationSucceeded = "succeeded"

// CheckoutRequest is what the payment provider needs to start collecting money
// for an order.
type CheckoutRequest struct {
	OrderID       string
	Title         string
	Amount        decimal.Decimal
	Currency      string
	CustomerName  string
	CustomerEmail string
	ReturnURL     string
}

// CheckoutSession is the provider-side handle for an in-flight payment.
type CheckoutSession struct {
	OrderID      string
	PreferenceID string
	CheckoutURL  string
}

// PaymentConfirmation is the provider record retrieved after the customer
// returns from the checkout.
//
// ProviderPayloadRaw keeps the original provider body for traceability.
type PaymentConfirmation struct {
	ID                 string
	Status             string
	ProviderStatus     string
	ExternalReference  string
	ProviderPayloadRaw json.RawMessage
}

// Outcome maps the confirmation to the order payment status: succeeded is paid,
// anything else is failed.
func (c PaymentConfirmation) Outcome() PaymentStatus {
	if c.Status == ConfirmationSucceeded {
		return PaymentStatusPaid
	}
	return PaymentStatusFailed
}

// OrderCompletion is the result shown after the customer returns from payment.
// Order and Quote are only set for paid outcomes.
type OrderCompletion struct {
	Outcome PaymentStatus
	Message string
	Order   *Order
	Quote   *Quote
}

package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCard          PaymentMethod = "card"
	PaymentMethodPurchaseOrder PaymentMethod = "purchase_order"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodPurchaseOrder
}

// PaymentStatus represents the payment outcome of an order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Settled reports whether s is a terminal payment outcome.
func (s PaymentStatus) Settled() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed
}

const DefaultCurrency = "EUR"

// Order is a placed purchase referencing exactly one quote.
//
// Storage model:
//   - PK: id
//
// ExpectedDeliveryAt is CreatedAt plus the material lead time, captured when
// the order is placed so later catalog changes do not move it.
type Order struct {
	ID                 string
	QuoteID            string
	CustomerName       string
	CustomerEmail      string
	CustomerCompany    *string
	PaymentMethod      PaymentMethod
	PaymentStatus      PaymentStatus
	TotalAmount        decimal.Decimal
	Currency           string
	CreatedAt          time.Time
	ExpectedDeliveryAt time.Time
}

// NewOrderInput is the customer data submitted when placing an order.
type NewOrderInput struct {
	QuoteID         string
	CustomerName    string
	CustomerEmail   string
	CustomerCompany *string
	PaymentMethod   PaymentMethod
}

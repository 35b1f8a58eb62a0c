package response

import (
	"time"

	"quote3d/internal/domain/entities"
)

type OrderResponse struct {
	ID                 string    `json:"id"`
	QuoteID            string    `json:"quoteId"`
	CustomerName       string    `json:"customerName"`
	CustomerEmail      string    `json:"customerEmail"`
	CustomerCompany    *string   `json:"customerCompany,omitempty"`
	PaymentMethod      string    `json:"paymentMethod"`
	PaymentStatus      string    `json:"paymentStatus"`
	ExpectedDeliveryAt time.Time `json:"expectedDeliveryAt"`
	TotalAmount        float64   `json:"totalAmount"`
	Currency           string    `json:"currency"`
	CreatedAt          time.Time `json:"createdAt"`
}

type CheckoutResponse struct {
	OrderID      string `json:"orderId"`
	PreferenceID string `json:"preferenceId"`
	CheckoutURL  string `json:"checkoutUrl"`
}

// CompletionResponse is shown after returning from the payment provider.
// Order and quote are only present for paid orders.
type CompletionResponse struct {
	PaymentStatus string         `json:"paymentStatus"`
	Message       string         `json:"message"`
	Order         *OrderResponse `json:"order,omitempty"`
	Quote         *QuoteResponse `json:"quote,omitempty"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:                 o.ID,
		QuoteID:            o.QuoteID,
		CustomerName:       o.CustomerName,
		CustomerEmail:      o.CustomerEmail,
		CustomerCompany:    o.CustomerCompany,
		PaymentMethod:      string(o.PaymentMethod),
		PaymentStatus:      string(o.PaymentStatus),
		ExpectedDeliveryAt: o.ExpectedDeliveryAt,
		TotalAmount:        money(o.TotalAmount),
		Currency:           o.Currency,
		CreatedAt:          o.CreatedAt,
	}
}

func FromCheckoutSession(s entities.CheckoutSession) CheckoutResponse {
	return CheckoutResponse{OrderID: s.OrderID, PreferenceID: s.PreferenceID, CheckoutURL: s.CheckoutURL}
}

func FromCompletion(c entities.OrderCompletion) CompletionResponse {
	resp := CompletionResponse{PaymentStatus: string(c.Outcome), Message: c.Message}
	if c.Order != nil {
		o := FromOrder(*c.Order)
		resp.Order = &o
	}
	if c.Quote != nil {
		q := FromQuote(*c.Quote)
		resp.Quote = &q
	}
	return resp
}

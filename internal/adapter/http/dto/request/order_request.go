package request

import (
	"strings"

	"quote3d/internal/domain/entities"
)

type CreateOrderRequest struct {
	QuoteID         string  `json:"quoteId" binding:"required"`
	CustomerName    string  `json:"customerName" binding:"required"`
	CustomerEmail   string  `json:"customerEmail" binding:"required"`
	CustomerCompany *string `json:"customerCompany"`
	PaymentMethod   string  `json:"paymentMethod" binding:"required"`
}

func (r CreateOrderRequest) ToInput() entities.NewOrderInput {
	return entities.NewOrderInput{
		QuoteID:         r.QuoteID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerCompany: r.CustomerCompany,
		PaymentMethod:   entities.PaymentMethod(strings.TrimSpace(r.PaymentMethod)),
	}
}

type ProcessPaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

func (r ProcessPaymentRequest) Status() entities.PaymentStatus {
	return entities.PaymentStatus(strings.TrimSpace(r.PaymentStatus))
}

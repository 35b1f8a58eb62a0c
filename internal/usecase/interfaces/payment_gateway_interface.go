package interfaces

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_interface_mock.go -package=mock_interfaces

import (
	"context"

	"quote3d/internal/domain/entities"
)

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// CreateCheckout opens a hosted checkout for an order. GetConfirmation fetches
// the payment the customer made there; it returns a zero confirmation and no
// error when the provider has no such payment.
type IPaymentGateway interface {
	CreateCheckout(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutSession, error)
	GetConfirmation(ctx context.Context, confirmationID string) (entities.PaymentConfirmation, error)
}

package interfaces

//go:generate mockgen -source=order_repository_interface.go -destination=mocks/order_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"quote3d/internal/domain/entities"
)

// IOrderRepository abstracts persistence for orders.
//
// CreateForQuote inserts the order and moves its quote from ready to ordered in
// a single transaction. If the quote is not ready anymore nothing is written
// and ErrStaleState is returned.
//
// UpdatePaymentStatus only applies while the order is pending or already holds
// the requested status; otherwise it returns ErrStaleState.
type IOrderRepository interface {
	CreateForQuote(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status entities.PaymentStatus) (entities.Order, error)
}

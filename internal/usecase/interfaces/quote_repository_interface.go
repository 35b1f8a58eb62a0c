package interfaces

//go:generate mockgen -source=quote_repository_interface.go -destination=mocks/quote_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"quote3d/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for quotes.
//
// Complete writes the pricing group and moves the quote to ready only while the
// stored status is draft; otherwise it returns ErrStaleState.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Complete(ctx context.Context, id string, pricing entities.QuotePricing) (entities.Quote, error)
}

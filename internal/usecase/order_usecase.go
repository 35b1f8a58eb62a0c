package usecase

//go:generate mockgen -source=order_usecase.go -destination=../adapter/http/handlers/mocks/order_usecase_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrInvalidCustomerName   = errors.New("customer name is required")
	ErrInvalidCustomerEmail  = errors.New("customer email is invalid")
	ErrInvalidPaymentMethod  = errors.New("payment method must be card or purchase_order")
	ErrInvalidPaymentStatus  = errors.New("payment status must be paid or failed")
	ErrMaterialDiscontinued  = errors.New("material discontinued")
	ErrPaymentAlreadySettled = errors.New("order payment already settled")
)

// IOrderUseCase places orders from ready quotes and records payment outcomes.
type IOrderUseCase interface {
	Create(ctx context.Context, in entities.NewOrderInput) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	ProcessPayment(ctx context.Context, id string, status entities.PaymentStatus) (entities.Order, error)
}

type OrderUseCase struct {
	orders    interfaces.IOrderRepository
	quotes    interfaces.IQuoteRepository
	materials interfaces.IMaterialRepository
	currency  string
	now       func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(orders interfaces.IOrderRepository, quotes interfaces.IQuoteRepository, materials interfaces.IMaterialRepository, currency string) *OrderUseCase {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = entities.DefaultCurrency
	}
	return &OrderUseCase{orders: orders, quotes: quotes, materials: materials, currency: currency, now: time.Now}
}

// Create places an order for a ready quote. The order insert and the quote's
// move to ordered happen in one transaction.
func (u *OrderUseCase) Create(ctx context.Context, in entities.NewOrderInput) (entities.Order, error) {
	in.QuoteID = strings.TrimSpace(in.QuoteID)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	if in.QuoteID == "" {
		return entities.Order{}, ErrInvalidQuoteID
	}
	if in.CustomerName == "" {
		return entities.Order{}, ErrInvalidCustomerName
	}
	if _, err := mail.ParseAddress(in.CustomerEmail); err != nil {
		return entities.Order{}, ErrInvalidCustomerEmail
	}
	if !in.PaymentMethod.Valid() {
		return entities.Order{}, ErrInvalidPaymentMethod
	}
	if in.CustomerCompany != nil {
		company := strings.TrimSpace(*in.CustomerCompany)
		if company == "" {
			in.CustomerCompany = nil
		} else {
			in.CustomerCompany = &company
		}
	}

	q, err := u.quotes.GetByID(ctx, in.QuoteID)
	if err != nil {
		return entities.Order{}, err
	}
	if q.ID == "" {
		return entities.Order{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusReady {
		return entities.Order{}, &QuoteStateError{QuoteID: q.ID, Current: q.Status, Required: entities.QuoteStatusReady}
	}
	if q.Pricing == nil {
		return entities.Order{}, fmt.Errorf("quote %s: %w", q.ID, entities.ErrQuotePricingMissing)
	}

	m, err := u.materials.GetByCode(ctx, q.Pricing.MaterialID)
	if err != nil {
		return entities.Order{}, err
	}
	if m.Code == "" {
		log.Printf("[order][usecase] material discontinued quote_id=%s material_id=%s", q.ID, q.Pricing.MaterialID)
		return entities.Order{}, ErrMaterialDiscontinued
	}

	now := u.now().UTC()
	o := entities.Order{
		ID:                 uuid.NewString(),
		QuoteID:            q.ID,
		CustomerName:       in.CustomerName,
		CustomerEmail:      in.CustomerEmail,
		CustomerCompany:    in.CustomerCompany,
		PaymentMethod:      in.PaymentMethod,
		PaymentStatus:      entities.PaymentStatusPending,
		TotalAmount:        q.Pricing.TotalPrice,
		Currency:           u.currency,
		CreatedAt:          now,
		ExpectedDeliveryAt: m.DeliveryFrom(now),
	}

	log.Printf("[order][usecase] create start order_id=%s quote_id=%s method=%s", o.ID, q.ID, o.PaymentMethod)
	created, err := u.orders.CreateForQuote(ctx, o)
	if err != nil {
		if errors.Is(err, interfaces.ErrStaleState) {
			return entities.Order{}, u.quoteConflict(ctx, q.ID)
		}
		log.Printf("[order][usecase] create failed order_id=%s quote_id=%s err=%v", o.ID, q.ID, err)
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] create success order_id=%s total=%s %s", created.ID, created.TotalAmount.StringFixed(2), created.Currency)
	return created, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// ProcessPayment records a payment outcome. Re-applying the outcome already
// stored is accepted; switching a settled order to the other outcome is not.
func (u *OrderUseCase) ProcessPayment(ctx context.Context, id string, status entities.PaymentStatus) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	if !status.Settled() {
		return entities.Order{}, ErrInvalidPaymentStatus
	}

	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.PaymentStatus == status {
		return o, nil
	}
	if o.PaymentStatus != entities.PaymentStatusPending {
		return entities.Order{}, fmt.Errorf("%w: order '%s' is already '%s'", ErrPaymentAlreadySettled, id, o.PaymentStatus)
	}

	updated, err := u.orders.UpdatePaymentStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, interfaces.ErrStaleState) {
			return entities.Order{}, fmt.Errorf("%w: order '%s' changed concurrently", ErrPaymentAlreadySettled, id)
		}
		log.Printf("[order][usecase] payment update failed order_id=%s status=%s err=%v", id, status, err)
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] payment processed order_id=%s status=%s", id, status)
	return updated, nil
}

func (u *OrderUseCase) quoteConflict(ctx context.Context, quoteID string) error {
	current, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if current.ID == "" {
		return ErrQuoteNotFound
	}
	return &QuoteStateError{QuoteID: quoteID, Current: current.Status, Required: entities.QuoteStatusReady}
}

package usecase

//go:generate mockgen -source=checkout_usecase.go -destination=../adapter/http/handlers/mocks/checkout_usecase_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"
)

const (
	PaymentSucceededMessage = "Your order was successful! You will receive an email with the order details shortly."
	PaymentFailedMessage    = "Your payment has failed."
)

var (
	ErrMissingConfirmation         = errors.New("missing payment confirmation id")
	ErrConfirmationUnavailable     = errors.New("payment confirmation unavailable")
	ErrOrderFetch                  = errors.New("fetching order data failed")
	ErrQuoteFetch                  = errors.New("fetching quote data failed")
	ErrOrderNotPending             = errors.New("order payment is not pending")
	ErrPaymentGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrPaymentProviderFailed       = errors.New("payment provider request failed")
)

// ICheckoutUseCase hands orders to the payment provider and settles them when
// the customer comes back.
type ICheckoutUseCase interface {
	Begin(ctx context.Context, orderID string) (entities.CheckoutSession, error)
	Complete(ctx context.Context, orderID, confirmationID string) (entities.OrderCompletion, error)
}

// ReturnURLFunc builds the URL the provider sends the customer back to.
type ReturnURLFunc func(orderID string) string

type CheckoutUseCase struct {
	orders    IOrderUseCase
	quotes    IQuoteUseCase
	gateway   interfaces.IPaymentGateway
	notifier  interfaces.INotifier
	returnURL ReturnURLFunc
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(orders IOrderUseCase, quotes IQuoteUseCase, gateway interfaces.IPaymentGateway, notifier interfaces.INotifier, returnURL ReturnURLFunc) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, quotes: quotes, gateway: gateway, notifier: notifier, returnURL: returnURL}
}

// Begin opens a hosted checkout for a pending order.
func (u *CheckoutUseCase) Begin(ctx context.Context, orderID string) (entities.CheckoutSession, error) {
	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.CheckoutSession{}, err
	}
	if o.PaymentStatus != entities.PaymentStatusPending {
		return entities.CheckoutSession{}, fmt.Errorf("%w: order '%s' is '%s'", ErrOrderNotPending, o.ID, o.PaymentStatus)
	}
	if u.gateway == nil {
		return entities.CheckoutSession{}, ErrPaymentGatewayNotConfigured
	}

	req := entities.CheckoutRequest{
		OrderID:       o.ID,
		Title:         fmt.Sprintf("3D print order %s", o.ID),
		Amount:        o.TotalAmount,
		Currency:      o.Currency,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
	}
	if u.returnURL != nil {
		req.ReturnURL = u.returnURL(o.ID)
	}

	log.Printf("[checkout][usecase] begin order_id=%s amount=%s %s", o.ID, o.TotalAmount.StringFixed(2), o.Currency)
	session, err := u.gateway.CreateCheckout(ctx, req)
	if err != nil {
		log.Printf("[checkout][usecase] provider checkout failed order_id=%s err=%v", o.ID, err)
		return entities.CheckoutSession{}, fmt.Errorf("%w: %w", ErrPaymentProviderFailed, err)
	}
	if session.OrderID == "" {
		session.OrderID = o.ID
	}
	return session, nil
}

// Complete settles an order from the provider's payment confirmation.
//
// Without a confirmation id, or when the provider cannot produce the
// confirmation, nothing is mutated and ErrMissingConfirmation or
// ErrConfirmationUnavailable is returned so the caller can send the customer
// back to the start. A failed payment also emits an error notification.
func (u *CheckoutUseCase) Complete(ctx context.Context, orderID, confirmationID string) (entities.OrderCompletion, error) {
	orderID = strings.TrimSpace(orderID)
	confirmationID = strings.TrimSpace(confirmationID)
	if confirmationID == "" {
		return entities.OrderCompletion{}, ErrMissingConfirmation
	}
	if u.gateway == nil {
		return entities.OrderCompletion{}, fmt.Errorf("%w: %w", ErrConfirmationUnavailable, ErrPaymentGatewayNotConfigured)
	}

	confirmation, err := u.gateway.GetConfirmation(ctx, confirmationID)
	if err != nil {
		log.Printf("[checkout][usecase] confirmation fetch failed order_id=%s confirmation_id=%s err=%v", orderID, confirmationID, err)
		return entities.OrderCompletion{}, fmt.Errorf("%w: %w", ErrConfirmationUnavailable, err)
	}
	if confirmation.ID == "" {
		return entities.OrderCompletion{}, ErrConfirmationUnavailable
	}
	if confirmation.ExternalReference != orderID {
		log.Printf("[checkout][usecase] confirmation does not reference order order_id=%s reference=%s", orderID, confirmation.ExternalReference)
		return entities.OrderCompletion{}, ErrConfirmationUnavailable
	}

	outcome := confirmation.Outcome()
	log.Printf("[checkout][usecase] complete order_id=%s confirmation_id=%s provider_status=%s outcome=%s", orderID, confirmation.ID, confirmation.ProviderStatus, outcome)
	if _, err := u.orders.ProcessPayment(ctx, orderID, outcome); err != nil {
		if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrInvalidOrderID) {
			return entities.OrderCompletion{}, fmt.Errorf("%w: %w", ErrOrderFetch, err)
		}
		return entities.OrderCompletion{}, err
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.OrderCompletion{}, fmt.Errorf("%w: %w", ErrOrderFetch, err)
	}
	q, err := u.quotes.GetByID(ctx, o.QuoteID)
	if err != nil {
		return entities.OrderCompletion{}, fmt.Errorf("%w: %w", ErrQuoteFetch, err)
	}

	if outcome == entities.PaymentStatusPaid {
		return entities.OrderCompletion{
			Outcome: entities.PaymentStatusPaid,
			Message: PaymentSucceededMessage,
			Order:   &o,
			Quote:   &q,
		}, nil
	}

	if u.notifier != nil {
		u.notifier.Notify(ctx, entities.Notification{
			ID:       confirmation.ID,
			Subject:  "Payment failed",
			Message:  PaymentFailedMessage,
			Variant:  entities.NotificationError,
			Duration: entities.DefaultNotificationDuration,
		})
	}
	return entities.OrderCompletion{Outcome: entities.PaymentStatusFailed, Message: PaymentFailedMessage}, nil
}

package response

import (
	"testing"
	"time"

	"quote3d/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestFromCompletion(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("failed payment has message only", func(t *testing.T) {
		res := FromCompletion(entities.OrderCompletion{Outcome: entities.PaymentStatusFailed, Message: "Your payment has failed."})
		if res.PaymentStatus != "failed" || res.Order != nil || res.Quote != nil {
			t.Fatalf("unexpected response: %+v", res)
		}
	})

	t.Run("paid payment carries order and quote", func(t *testing.T) {
		order := entities.Order{
			ID:                 "o-1",
			QuoteID:            "q-1",
			PaymentMethod:      entities.PaymentMethodCard,
			PaymentStatus:      entities.PaymentStatusPaid,
			TotalAmount:        decimal.RequireFromString("281.245"),
			Currency:           "EUR",
			CreatedAt:          now,
			ExpectedDeliveryAt: now.AddDate(0, 0, 3),
		}
		quote := entities.Quote{ID: "q-1", Status: entities.QuoteStatusOrdered}

		res := FromCompletion(entities.OrderCompletion{Outcome: entities.PaymentStatusPaid, Order: &order, Quote: &quote})
		if res.Order == nil || res.Quote == nil {
			t.Fatalf("expected order and quote: %+v", res)
		}
		if res.Order.TotalAmount != 281.25 {
			t.Fatalf("expected 281.25, got %v", res.Order.TotalAmount)
		}
		if !res.Order.ExpectedDeliveryAt.Equal(now.AddDate(0, 0, 3)) {
			t.Fatalf("unexpected delivery date: %v", res.Order.ExpectedDeliveryAt)
		}
	})
}

package payments

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"quote3d/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutRequest() entities.CheckoutRequest {
	return entities.CheckoutRequest{
		OrderID:       "o1",
		Title:         "3D print order o1",
		Amount:        decimal.RequireFromString("472.0275"),
		Currency:      "EUR",
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		ReturnURL:     "http://localhost:8080/api/orders/o1/completion",
	}
}

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	_, err := NewMercadoPagoGateway(Options{})
	assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
}

func TestPreferencePayload(t *testing.T) {
	p := preferencePayload(checkoutRequest())

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded struct {
		Items []struct {
			ID         string  `json:"id"`
			Quantity   int     `json:"quantity"`
			UnitPrice  float64 `json:"unit_price"`
			CurrencyID string  `json:"currency_id"`
		} `json:"items"`
		ExternalReference string            `json:"external_reference"`
		BackURLs          map[string]string `json:"back_urls"`
		AutoReturn        string            `json:"auto_return"`
		Payer             struct {
			Email string `json:"email"`
		} `json:"payer"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, 472.03, decoded.Items[0].UnitPrice)
	assert.Equal(t, 1, decoded.Items[0].Quantity)
	assert.Equal(t, "EUR", decoded.Items[0].CurrencyID)
	assert.Equal(t, "o1", decoded.ExternalReference)
	assert.Equal(t, "http://localhost:8080/api/orders/o1/completion", decoded.BackURLs["success"])
	assert.Equal(t, "all", decoded.AutoReturn)
	assert.Equal(t, "ada@example.com", decoded.Payer.Email)
}

func TestConfirmationFromPayment(t *testing.T) {
	c := confirmationFromPayment(paymentResult{ID: "123", Status: "approved", ExternalReference: "o1"}, nil)
	assert.Equal(t, entities.ConfirmationSucceeded, c.Status)
	assert.Equal(t, "approved", c.ProviderStatus)
	assert.Equal(t, entities.PaymentStatusPaid, c.Outcome())

	for _, s := range []string{"rejected", "in_process", "pending", "cancelled"} {
		c := confirmationFromPayment(paymentResult{ID: "123", Status: s}, nil)
		assert.Equalf(t, entities.PaymentStatusFailed, c.Outcome(), "status %s", s)
	}
}

func TestMockGateway(t *testing.T) {
	g, err := NewMercadoPagoGateway(Options{Mock: true})
	require.NoError(t, err)
	g.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	t.Run("checkout sends the customer straight back", func(t *testing.T) {
		s, err := g.CreateCheckout(context.Background(), checkoutRequest())
		require.NoError(t, err)
		assert.Equal(t, "o1", s.OrderID)
		assert.NotEmpty(t, s.PreferenceID)

		u, err := url.Parse(s.CheckoutURL)
		require.NoError(t, err)
		assert.Equal(t, "/api/orders/o1/completion", u.Path)
		assert.Equal(t, "mock-o1", u.Query().Get("payment_id"))
	})

	t.Run("approved confirmation", func(t *testing.T) {
		c, err := g.GetConfirmation(context.Background(), "mock-o1")
		require.NoError(t, err)
		assert.Equal(t, "mock-o1", c.ID)
		assert.Equal(t, "o1", c.ExternalReference)
		assert.Equal(t, entities.PaymentStatusPaid, c.Outcome())
		assert.True(t, json.Valid(c.ProviderPayloadRaw))
	})

	t.Run("rejected confirmation", func(t *testing.T) {
		c, err := g.GetConfirmation(context.Background(), "mock-failed-o1")
		require.NoError(t, err)
		assert.Equal(t, "o1", c.ExternalReference)
		assert.Equal(t, entities.PaymentStatusFailed, c.Outcome())
	})

	t.Run("unknown confirmation", func(t *testing.T) {
		c, err := g.GetConfirmation(context.Background(), "12345")
		require.NoError(t, err)
		assert.Empty(t, c.ID)
	})
}

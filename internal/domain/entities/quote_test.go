package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestQuote_EffectiveStatus(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	expires := created.Add(DefaultQuoteTTL)

	cases := []struct {
		name   string
		stored QuoteStatus
		now    time.Time
		want   QuoteStatus
	}{
		{"draft before expiry", QuoteStatusDraft, expires.Add(-time.Second), QuoteStatusDraft},
		{"draft at expiry", QuoteStatusDraft, expires, QuoteStatusExpired},
		{"ready after expiry", QuoteStatusReady, expires.Add(time.Hour), QuoteStatusExpired},
		{"ordered never expires", QuoteStatusOrdered, expires.Add(time.Hour), QuoteStatusOrdered},
		{"stored expired", QuoteStatusExpired, created, QuoteStatusExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := Quote{Status: tc.stored, CreatedAt: created, ExpiresAt: expires}
			if got := q.EffectiveStatus(tc.now); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestQuote_Validate(t *testing.T) {
	pricing := &QuotePricing{MaterialID: "pla", Quantity: 1, TotalPrice: decimal.NewFromInt(10)}

	if err := (Quote{Status: QuoteStatusDraft}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Quote{Status: QuoteStatusDraft, Pricing: pricing}).Validate(); !errors.Is(err, ErrQuotePricingUnexpected) {
		t.Fatalf("expected ErrQuotePricingUnexpected, got %v", err)
	}
	if err := (Quote{Status: QuoteStatusReady}).Validate(); !errors.Is(err, ErrQuotePricingMissing) {
		t.Fatalf("expected ErrQuotePricingMissing, got %v", err)
	}
	if err := (Quote{Status: QuoteStatusOrdered, Pricing: pricing}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Quote{Status: QuoteStatusExpired}).Validate(); err != nil {
		t.Fatalf("expired quotes may lack pricing, got %v", err)
	}
}

func TestPaymentConfirmation_Outcome(t *testing.T) {
	if got := (PaymentConfirmation{Status: ConfirmationSucceeded}).Outcome(); got != PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", got)
	}
	for _, s := range []string{"", "rejected", "in_process", "requires_payment_method"} {
		if got := (PaymentConfirmation{Status: s}).Outcome(); got != PaymentStatusFailed {
			t.Fatalf("status %q: expected failed, got %s", s, got)
		}
	}
}

func TestFile_ProcessingTime(t *testing.T) {
	uploaded := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	processed := uploaded.Add(8 * time.Second)

	f := File{UploadedAt: uploaded}
	if got := f.ProcessingTime(uploaded.Add(2 * time.Second)); got != 2*time.Second {
		t.Fatalf("expected 2s in flight, got %v", got)
	}

	f.ProcessedAt = &processed
	if got := f.ProcessingTime(uploaded.Add(time.Hour)); got != 8*time.Second {
		t.Fatalf("expected 8s once processed, got %v", got)
	}
}

func TestMaterial_DeliveryFrom(t *testing.T) {
	placed := time.Date(2026, 3, 30, 10, 0, 0, 0, time.UTC)
	m := Material{LeadTimeDays: 3}
	want := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	if got := m.DeliveryFrom(placed); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

package request

import (
	"testing"

	"quote3d/internal/domain/entities"
)

func TestCreateOrderRequest_ToInput(t *testing.T) {
	company := "ACME"
	r := CreateOrderRequest{
		QuoteID:         "q-1",
		CustomerName:    "Ada",
		CustomerEmail:   "ada@example.com",
		CustomerCompany: &company,
		PaymentMethod:   " card ",
	}

	in := r.ToInput()
	if in.PaymentMethod != entities.PaymentMethodCard {
		t.Fatalf("expected card, got %q", in.PaymentMethod)
	}
	if in.CustomerCompany == nil || *in.CustomerCompany != "ACME" {
		t.Fatalf("expected company ACME, got %v", in.CustomerCompany)
	}
	if in.QuoteID != "q-1" {
		t.Fatalf("expected quote id q-1, got %q", in.QuoteID)
	}
}

func TestProcessPaymentRequest_Status(t *testing.T) {
	if got := (ProcessPaymentRequest{PaymentStatus: "paid "}).Status(); got != entities.PaymentStatusPaid {
		t.Fatalf("expected paid, got %q", got)
	}
}

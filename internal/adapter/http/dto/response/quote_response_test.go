package response

import (
	"encoding/json"
	"testing"
	"time"

	"quote3d/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func marshalKeys(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestFromQuote(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pricing := &entities.QuotePricing{
		MaterialID:          "pla",
		MaterialName:        "PLA",
		MaterialPriceFactor: decimal.RequireFromString("0.05"),
		Quantity:            10,
		VolumeCm3:           decimal.RequireFromString("2812.5"),
		UnitPrice:           decimal.RequireFromString("140.625"),
		QuantityDiscount:    decimal.RequireFromString("140.625"),
		TotalPrice:          decimal.RequireFromString("1265.625"),
	}

	t.Run("draft has no pricing fields", func(t *testing.T) {
		q := entities.Quote{ID: "q-1", FileID: "f-1", Status: entities.QuoteStatusDraft, CreatedAt: now, ExpiresAt: now.Add(entities.DefaultQuoteTTL)}

		got := marshalKeys(t, FromQuote(q))
		if got["status"] != "draft" {
			t.Fatalf("expected draft, got %v", got["status"])
		}
		for _, k := range []string{"materialId", "quantity", "totalPrice"} {
			if _, ok := got[k]; ok {
				t.Fatalf("expected no %s on draft quote: %v", k, got)
			}
		}
	})

	t.Run("ready carries rounded pricing", func(t *testing.T) {
		q := entities.Quote{ID: "q-1", FileID: "f-1", Status: entities.QuoteStatusReady, CreatedAt: now, ExpiresAt: now, Pricing: pricing}

		res := FromQuote(q)
		if res.QuotePricingResponse == nil {
			t.Fatalf("expected pricing")
		}
		if res.UnitPrice != 140.63 || res.TotalPrice != 1265.63 {
			t.Fatalf("unexpected rounding: %+v", res.QuotePricingResponse)
		}

		got := marshalKeys(t, res)
		if got["materialId"] != "pla" || got["quantity"] != float64(10) {
			t.Fatalf("unexpected flattened pricing: %v", got)
		}
	})

	t.Run("expired keeps pricing when present", func(t *testing.T) {
		q := entities.Quote{ID: "q-1", Status: entities.QuoteStatusExpired, Pricing: pricing}
		if FromQuote(q).QuotePricingResponse == nil {
			t.Fatalf("expected pricing on expired quote")
		}
		q.Pricing = nil
		if FromQuote(q).QuotePricingResponse != nil {
			t.Fatalf("expected no pricing")
		}
	})
}

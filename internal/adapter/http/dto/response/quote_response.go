package response

import (
	"time"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase"
)

// QuotePricingResponse holds the fields written by quote completion.
type QuotePricingResponse struct {
	MaterialID          string  `json:"materialId"`
	MaterialName        string  `json:"materialName"`
	MaterialPriceFactor float64 `json:"materialPriceFactor"`
	Quantity            int     `json:"quantity"`
	VolumeCm3           float64 `json:"volumeCm3"`
	UnitPrice           float64 `json:"unitPrice"`
	QuantityDiscount    float64 `json:"quantityDiscount"`
	TotalPrice          float64 `json:"totalPrice"`
}

// QuoteResponse is tagged by status. Draft quotes carry no pricing fields,
// ready and ordered quotes always do, expired quotes carry them if the quote
// was completed before it expired.
type QuoteResponse struct {
	ID        string    `json:"id"`
	FileID    string    `json:"fileId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	*QuotePricingResponse
}

type SelectionResponse struct {
	QuoteID   string             `json:"quoteId"`
	Geometry  GeometryResponse   `json:"geometry"`
	Materials []MaterialResponse `json:"materials"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:        q.ID,
		FileID:    q.FileID,
		Status:    string(q.Status),
		CreatedAt: q.CreatedAt,
		ExpiresAt: q.ExpiresAt,
	}
	if q.Pricing != nil && q.Status != entities.QuoteStatusDraft {
		p := q.Pricing
		resp.QuotePricingResponse = &QuotePricingResponse{
			MaterialID:          p.MaterialID,
			MaterialName:        p.MaterialName,
			MaterialPriceFactor: p.MaterialPriceFactor.Round(4).InexactFloat64(),
			Quantity:            p.Quantity,
			VolumeCm3:           p.VolumeCm3.Round(3).InexactFloat64(),
			UnitPrice:           money(p.UnitPrice),
			QuantityDiscount:    money(p.QuantityDiscount),
			TotalPrice:          money(p.TotalPrice),
		}
	}
	return resp
}

func FromSelection(s usecase.QuoteSelection) SelectionResponse {
	return SelectionResponse{
		QuoteID:   s.Quote.ID,
		Geometry:  FromGeometry(s.Geometry),
		Materials: FromMaterials(s.Materials),
	}
}

package request

type CreateQuoteRequest struct {
	FileID string `json:"fileId" binding:"required"`
}

// CompleteQuoteRequest selects the material and quantity that price a draft
// quote. Quantity is validated by the use case so a missing or zero value gets
// the same error as a negative one.
type CompleteQuoteRequest struct {
	MaterialID string `json:"materialId" binding:"required"`
	Quantity   int    `json:"quantity"`
}

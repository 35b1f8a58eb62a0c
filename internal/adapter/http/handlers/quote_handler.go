package handlers

import (
	"errors"
	"log"
	"net/http"

	request "quote3d/internal/adapter/http/dto/request"
	response "quote3d/internal/adapter/http/dto/response"
	"quote3d/internal/usecase"
	"quote3d/pkg"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote godoc
// @Summary      Create a draft quote for an uploaded file
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateQuoteRequest  true  "File reference"
// @Success      200   {object}  response.IDResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	q, err := h.usecase.Create(c.Request.Context(), payload.FileID)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.IDResponse{ID: q.ID})
}

// GetQuote godoc
// @Summary      Get a quote
// @Description  The payload is tagged by status; pricing fields are absent on draft quotes.
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// CompleteQuote godoc
// @Summary      Price a draft quote for a material and quantity
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "Quote ID"
// @Param        body  body      request.CompleteQuoteRequest  true  "Selection"
// @Success      200   {object}  response.IDResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /quotes/{id}/complete [post]
func (h *QuoteHandler) CompleteQuote(c *gin.Context) {
	var payload request.CompleteQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	q, err := h.usecase.Complete(c.Request.Context(), c.Param("id"), payload.MaterialID, payload.Quantity)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.IDResponse{ID: q.ID})
}

// OpenSelection godoc
// @Summary      Create a quote and wait for the file geometry
// @Description  Blocks until geometry extraction finishes or the poll window elapses.
// @Tags         quotes
// @Produce      json
// @Param        fileId  path      string  true  "File ID"
// @Success      200     {object}  response.SelectionResponse
// @Failure      404     {object}  pkg.HTTPError
// @Failure      422     {object}  pkg.HTTPError
// @Failure      504     {object}  pkg.HTTPError
// @Failure      500     {object}  pkg.HTTPError
// @Router       /material-selection/{fileId} [post]
func (h *QuoteHandler) OpenSelection(c *gin.Context) {
	fileID := c.Param("fileId")
	log.Printf("[quote][handler] selection start file_id=%s", fileID)

	selection, err := h.usecase.OpenSelection(c.Request.Context(), fileID)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromSelection(selection))
}

func mapQuoteError(err error) *pkg.AppError {
	var stateErr *usecase.QuoteStateError
	switch {
	case errors.As(err, &stateErr):
		return pkg.NewDomainErrorSimple("QUOTE_STATE_CONFLICT", stateErr.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidFileID), errors.Is(err, usecase.ErrInvalidMaterialID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidQuantity):
		return badRequest("INVALID_QUANTITY", usecase.ErrInvalidQuantity)
	case errors.Is(err, usecase.ErrGeometryNotAvailable):
		return badRequest("GEOMETRY_NOT_AVAILABLE", usecase.ErrGeometryNotAvailable).WithAction(actionUploadNewFile)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrFileNotFound):
		return pkg.NewDomainErrorSimple("FILE_NOT_FOUND", "File not found", http.StatusNotFound).WithAction(actionUploadNewFile)
	case errors.Is(err, usecase.ErrMaterialNotFound):
		return pkg.NewDomainErrorSimple("MATERIAL_NOT_FOUND", "Material not found", http.StatusNotFound).WithAction(actionSelectMaterial)
	case errors.Is(err, usecase.ErrGeometryExtractionFailed):
		return pkg.NewDomainErrorSimple("GEOMETRY_EXTRACTION_FAILED", "Geometry extraction of your provided file failed.", http.StatusUnprocessableEntity).
			WithAction(actionUploadNewFile)
	case errors.Is(err, usecase.ErrGeometryTimeout):
		return pkg.NewDomainErrorSimple("GEOMETRY_TIMEOUT", "We are having trouble extracting your geometry data at the moment.", http.StatusGatewayTimeout).
			WithAction(actionUploadNewFile)
	default:
		return newInternalError(err)
	}
}

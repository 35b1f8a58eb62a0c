package handlers

import (
	"errors"
	"net/http"

	request "quote3d/internal/adapter/http/dto/request"
	response "quote3d/internal/adapter/http/dto/response"
	"quote3d/internal/usecase"
	"quote3d/pkg"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder godoc
// @Summary      Place an order for a ready quote
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateOrderRequest  true  "Customer data"
// @Success      200   {object}  response.IDResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	o, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.IDResponse{ID: o.ID})
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.OrderResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// ProcessPayment godoc
// @Summary      Record the payment outcome of an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "Order ID"
// @Param        body  body      request.ProcessPaymentRequest  true  "paid or failed"
// @Success      200   {object}  response.IDResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /orders/{id}/payment [post]
func (h *OrderHandler) ProcessPayment(c *gin.Context) {
	var payload request.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	o, err := h.usecase.ProcessPayment(c.Request.Context(), c.Param("id"), payload.Status())
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.IDResponse{ID: o.ID})
}

func mapOrderError(err error) *pkg.AppError {
	var stateErr *usecase.QuoteStateError
	switch {
	case errors.As(err, &stateErr):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_READY", stateErr.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidQuoteID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidCustomerName):
		return badRequest("INVALID_CUSTOMER_NAME", usecase.ErrInvalidCustomerName)
	case errors.Is(err, usecase.ErrInvalidCustomerEmail):
		return badRequest("INVALID_CUSTOMER_EMAIL", usecase.ErrInvalidCustomerEmail)
	case errors.Is(err, usecase.ErrInvalidPaymentMethod):
		return badRequest("INVALID_PAYMENT_METHOD", usecase.ErrInvalidPaymentMethod)
	case errors.Is(err, usecase.ErrInvalidPaymentStatus):
		return badRequest("INVALID_PAYMENT_STATUS", usecase.ErrInvalidPaymentStatus)
	case errors.Is(err, usecase.ErrMaterialDiscontinued):
		return pkg.NewDomainErrorSimple("MATERIAL_DISCONTINUED", "Looks like your selected material was discontinued.", http.StatusBadRequest).
			WithAction(actionNewQuote)
	case errors.Is(err, usecase.ErrPaymentAlreadySettled):
		return badRequest("PAYMENT_ALREADY_SETTLED", usecase.ErrPaymentAlreadySettled)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	default:
		return newInternalError(err)
	}
}

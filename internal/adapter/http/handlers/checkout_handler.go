package handlers

import (
	"errors"
	"log"
	"net/http"

	response "quote3d/internal/adapter/http/dto/response"
	"quote3d/internal/usecase"
	"quote3d/pkg"

	"github.com/gin-gonic/gin"
)

// confirmationQueryParam is the query parameter the payment provider appends
// to the back URL.
const confirmationQueryParam = "payment_id"

type CheckoutHandler struct {
	usecase  usecase.ICheckoutUseCase
	startURL string
}

// NewCheckoutHandler builds the handler. Customers whose confirmation cannot
// be resolved are sent back to startURL.
func NewCheckoutHandler(uc usecase.ICheckoutUseCase, startURL string) *CheckoutHandler {
	if startURL == "" {
		startURL = "/"
	}
	return &CheckoutHandler{usecase: uc, startURL: startURL}
}

// BeginCheckout godoc
// @Summary      Open a hosted checkout for a pending order
// @Tags         checkout
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.CheckoutResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /orders/{id}/checkout [post]
func (h *CheckoutHandler) BeginCheckout(c *gin.Context) {
	session, err := h.usecase.Begin(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapCheckoutError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutSession(session))
}

// CompleteCheckout godoc
// @Summary      Settle an order after the customer returns from the payment provider
// @Description  Redirects to the start page when the payment confirmation is missing or unknown.
// @Tags         checkout
// @Produce      json
// @Param        id          path      string  true   "Order ID"
// @Param        payment_id  query     string  false  "Provider payment id"
// @Success      200         {object}  response.CompletionResponse
// @Success      302
// @Failure      500         {object}  pkg.HTTPError
// @Router       /orders/{id}/completion [get]
func (h *CheckoutHandler) CompleteCheckout(c *gin.Context) {
	orderID := c.Param("id")
	confirmationID := c.Query(confirmationQueryParam)

	completion, err := h.usecase.Complete(c.Request.Context(), orderID, confirmationID)
	if errors.Is(err, usecase.ErrMissingConfirmation) || errors.Is(err, usecase.ErrConfirmationUnavailable) {
		log.Printf("[checkout][handler] redirect to start order_id=%s err=%v", orderID, err)
		c.Redirect(http.StatusFound, h.startURL)
		return
	}
	if err != nil {
		writeError(c, mapCheckoutError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCompletion(completion))
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotPending), errors.Is(err, usecase.ErrPaymentAlreadySettled):
		return badRequest("ORDER_NOT_PENDING", usecase.ErrOrderNotPending)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured), errors.Is(err, usecase.ErrPaymentProviderFailed):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "There is an issue with our payment integration. We cannot begin new transactions at the moment.", err, http.StatusBadGateway).
			WithAction(actionRetryLater)
	case errors.Is(err, usecase.ErrOrderFetch):
		return pkg.NewDomainError("ORDER_FETCH_FAILED", "We are having trouble to fetch your order data.", err, http.StatusInternalServerError).
			WithAction(actionRetryLater)
	case errors.Is(err, usecase.ErrQuoteFetch):
		return pkg.NewDomainError("QUOTE_FETCH_FAILED", "We are having trouble to fetch your quote data.", err, http.StatusInternalServerError).
			WithAction(actionRetryLater)
	default:
		return newInternalError(err)
	}
}

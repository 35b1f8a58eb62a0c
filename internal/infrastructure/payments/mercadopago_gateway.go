package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const (
	mpStatusApproved = "approved"
	mpStatusRejected = "rejected"

	// Mock confirmation ids are "mock-<orderID>" (approved) or
	// "mock-failed-<orderID>" (rejected).
	mockConfirmationPrefix       = "mock-"
	mockFailedConfirmationPrefix = "mock-failed-"
)

type Options struct {
	AccessToken string
	Mock        bool
}

// MercadoPagoGateway collects payments through Mercado Pago Checkout Pro: a
// preference is created per order and the resulting payment is read back when
// the customer returns.
type MercadoPagoGateway struct {
	preferences preference.Client
	payments    payment.Client
	mockMode    bool
	now         func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(opts Options) (*MercadoPagoGateway, error) {
	if opts.Mock {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, now: time.Now}, nil
	}

	if opts.AccessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		now:         time.Now,
	}, nil
}

type preferenceResult struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutSession, error) {
	if g != nil && g.mockMode {
		return g.mockCheckout(req)
	}
	if g == nil || g.preferences == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.CheckoutSession{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] preference create start order_id=%s", req.OrderID)

	payload, err := json.Marshal(preferencePayload(req))
	if err != nil {
		return entities.CheckoutSession{}, err
	}
	var prefReq preference.Request
	if err := json.Unmarshal(payload, &prefReq); err != nil {
		log.Printf("[payment][gateway] payload unmarshal failed err=%v", err)
		return entities.CheckoutSession{}, err
	}

	resp, err := g.preferences.Create(ctx, prefReq)
	if err != nil {
		log.Printf("[payment][gateway] sdk preference create failed order_id=%s err=%v", req.OrderID, err)
		return entities.CheckoutSession{}, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return entities.CheckoutSession{}, err
	}
	var res preferenceResult
	if err := json.Unmarshal(b, &res); err != nil {
		return entities.CheckoutSession{}, err
	}
	checkoutURL := res.InitPoint
	if checkoutURL == "" {
		checkoutURL = res.SandboxInitPoint
	}
	log.Printf("[payment][gateway] preference create success order_id=%s preference_id=%s", req.OrderID, res.ID)

	return entities.CheckoutSession{OrderID: req.OrderID, PreferenceID: res.ID, CheckoutURL: checkoutURL}, nil
}

type paymentResult struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	StatusDetail      string      `json:"status_detail"`
	ExternalReference string      `json:"external_reference"`
}

func (g *MercadoPagoGateway) GetConfirmation(ctx context.Context, confirmationID string) (entities.PaymentConfirmation, error) {
	if g != nil && g.mockMode {
		return g.mockConfirmation(confirmationID)
	}
	if g == nil || g.payments == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.PaymentConfirmation{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(strings.TrimSpace(confirmationID))
	if err != nil {
		log.Printf("[payment][gateway] non numeric payment id=%q", confirmationID)
		return entities.PaymentConfirmation{}, nil
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk payment get failed payment_id=%d err=%v", id, err)
		return entities.PaymentConfirmation{}, err
	}
	if resp == nil {
		return entities.PaymentConfirmation{}, nil
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return entities.PaymentConfirmation{}, err
	}
	var res paymentResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return entities.PaymentConfirmation{}, err
	}
	log.Printf("[payment][gateway] payment get success payment_id=%s provider_status=%s", res.ID, res.Status)
	return confirmationFromPayment(res, raw), nil
}

func (g *MercadoPagoGateway) mockCheckout(req entities.CheckoutRequest) (entities.CheckoutSession, error) {
	prefID := fmt.Sprintf("mock-pref-%d", g.now().UTC().UnixNano())
	checkoutURL := req.ReturnURL
	if checkoutURL != "" {
		u, err := url.Parse(checkoutURL)
		if err != nil {
			return entities.CheckoutSession{}, err
		}
		q := u.Query()
		q.Set("payment_id", mockConfirmationPrefix+req.OrderID)
		u.RawQuery = q.Encode()
		checkoutURL = u.String()
	}
	log.Printf("[payment][gateway] mock preference order_id=%s preference_id=%s", req.OrderID, prefID)
	return entities.CheckoutSession{OrderID: req.OrderID, PreferenceID: prefID, CheckoutURL: checkoutURL}, nil
}

func (g *MercadoPagoGateway) mockConfirmation(confirmationID string) (entities.PaymentConfirmation, error) {
	res := paymentResult{ID: json.Number(confirmationID), Status: mpStatusApproved, StatusDetail: "accredited"}
	switch {
	case strings.HasPrefix(confirmationID, mockFailedConfirmationPrefix):
		res.Status = mpStatusRejected
		res.StatusDetail = "cc_rejected_other_reason"
		res.ExternalReference = strings.TrimPrefix(confirmationID, mockFailedConfirmationPrefix)
	case strings.HasPrefix(confirmationID, mockConfirmationPrefix):
		res.ExternalReference = strings.TrimPrefix(confirmationID, mockConfirmationPrefix)
	default:
		return entities.PaymentConfirmation{}, nil
	}

	raw, err := json.Marshal(map[string]any{
		"id":                 confirmationID,
		"status":             res.Status,
		"status_detail":      res.StatusDetail,
		"external_reference": res.ExternalReference,
		"date_created":       g.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return entities.PaymentConfirmation{}, err
	}
	log.Printf("[payment][gateway] mock confirmation payment_id=%s provider_status=%s", confirmationID, res.Status)
	return confirmationFromPayment(res, raw), nil
}

// preferencePayload is the Checkout Pro preference body for one order.
func preferencePayload(req entities.CheckoutRequest) map[string]any {
	payload := map[string]any{
		"items": []map[string]any{{
			"id":          req.OrderID,
			"title":       req.Title,
			"quantity":    1,
			"unit_price":  req.Amount.Round(2).InexactFloat64(),
			"currency_id": req.Currency,
		}},
		"external_reference": req.OrderID,
		"payer": map[string]any{
			"name":  req.CustomerName,
			"email": req.CustomerEmail,
		},
	}
	if req.ReturnURL != "" {
		payload["back_urls"] = map[string]any{
			"success": req.ReturnURL,
			"failure": req.ReturnURL,
			"pending": req.ReturnURL,
		}
		payload["auto_return"] = "all"
	}
	return payload
}

// confirmationFromPayment normalizes Mercado Pago statuses: approved is the
// only successful outcome.
func confirmationFromPayment(res paymentResult, raw json.RawMessage) entities.PaymentConfirmation {
	status := res.Status
	if status == mpStatusApproved {
		status = entities.ConfirmationSucceeded
	}
	return entities.PaymentConfirmation{
		ID:                 res.ID.String(),
		Status:             status,
		ProviderStatus:     res.Status,
		ExternalReference:  res.ExternalReference,
		ProviderPayloadRaw: raw,
	}
}

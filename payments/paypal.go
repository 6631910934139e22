package payments

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/plutov/paypal/v4"
	"golang.org/x/exp/slog"
)

// PayPalAdapter charges through the PayPal Orders API: Charge creates an
// order with intent CAPTURE and captures it right away, Refund refunds
// the capture.
type PayPalAdapter struct {
	client    *paypal.Client
	webhookID string
	logger    *slog.Logger

	mu     sync.Mutex
	authed bool
}

// NewPayPalAdapter builds an adapter from REST credentials. With sandbox
// set, requests go to the PayPal sandbox API base.
func NewPayPalAdapter(clientID, clientSecret, webhookID string, sandbox bool, logger *slog.Logger) (*PayPalAdapter, error) {
	base := paypal.APIBaseLive
	if sandbox {
		base = paypal.APIBaseSandBox
	}

	c, err := paypal.NewClient(clientID, clientSecret, base)
	if err != nil {
		return nil, fmt.Errorf("creating paypal client: %w", err)
	}

	return &PayPalAdapter{
		client:    c,
		webhookID: webhookID,
		logger:    logger.With(slog.String("adapter", "paypal")),
	}, nil
}

func (p *PayPalAdapter) Name() string { return "paypal" }

// ensureToken fetches the OAuth token on first use. After that the client
// refreshes it on its own.
func (p *PayPalAdapter) ensureToken(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.authed {
		return nil
	}
	if _, err := p.client.GetAccessToken(ctx); err != nil {
		return fmt.Errorf("paypal auth: %w", err)
	}
	p.authed = true
	return nil
}

// Charge creates and captures a PayPal order for the amount.
func (p *PayPalAdapter) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("charge of %d cents: %w", req.AmountCents, ErrAmountNotPositive)
	}
	if err := p.ensureToken(ctx); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(currencyOrDefault(req.Currency))
	units := []paypal.PurchaseUnitRequest{{
		Amount: &paypal.PurchaseUnitAmount{
			Currency: currency,
			Value:    centsToDecimal(req.AmountCents),
		},
		Description: req.Description,
	}}

	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating paypal order: %w", err)
	}

	captured, err := p.client.CaptureOrder(ctx, order.ID, paypal.CaptureOrderRequest{})
	if err != nil {
		return nil, fmt.Errorf("capturing paypal order %s: %w", order.ID, err)
	}

	// Prefer the capture ID so refunds can reference it directly.
	id := captured.ID
	if len(captured.PurchaseUnits) > 0 &&
		captured.PurchaseUnits[0].Payments != nil &&
		len(captured.PurchaseUnits[0].Payments.Captures) > 0 {
		id = captured.PurchaseUnits[0].Payments.Captures[0].ID
	}

	p.logger.Info("order captured",
		slog.String("order_id", order.ID),
		slog.String("capture_id", id),
	)

	return &Charge{
		ID:          id,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Source:      req.Source,
		Description: req.Description,
		Status:      strings.ToLower(captured.Status),
	}, nil
}

// Refund refunds a captured payment. A zero amount refunds the full
// capture.
func (p *PayPalAdapter) Refund(ctx context.Context, req RefundRequest) (*Refund, error) {
	if req.ChargeID == "" {
		return nil, fmt.Errorf("refund: capture id is required")
	}
	if req.AmountCents < 0 {
		return nil, fmt.Errorf("refund of %d cents: %w", req.AmountCents, ErrAmountNotPositive)
	}
	if err := p.ensureToken(ctx); err != nil {
		return nil, err
	}

	refundReq := paypal.RefundCaptureRequest{}
	if req.AmountCents > 0 {
		refundReq.Amount = &paypal.Money{
			Currency: DefaultCurrency,
			Value:    centsToDecimal(req.AmountCents),
		}
	}

	resp, err := p.client.RefundCapture(ctx, req.ChargeID, refundReq)
	if err != nil {
		return nil, fmt.Errorf("refunding capture %s: %w", req.ChargeID, err)
	}

	p.logger.Info("capture refunded",
		slog.String("capture_id", req.ChargeID),
		slog.String("refund_id", resp.ID),
	)

	return &Refund{
		ID:          resp.ID,
		ChargeID:    req.ChargeID,
		AmountCents: req.AmountCents,
		Status:      strings.ToLower(resp.Status),
	}, nil
}

// VerifyWebhook asks PayPal to verify the transmission headers of the
// delivery against the configured webhook ID.
func (p *PayPalAdapter) VerifyWebhook(ctx context.Context, payload []byte, header http.Header) error {
	if p.webhookID == "" {
		return fmt.Errorf("paypal webhook id not configured: %w", ErrInvalidSignature)
	}
	if err := p.ensureToken(ctx); err != nil {
		return err
	}

	req := &http.Request{
		Header: header,
		Body:   io.NopCloser(bytes.NewReader(payload)),
	}
	resp, err := p.client.VerifyWebhookSignature(ctx, req, p.webhookID)
	if err != nil {
		return fmt.Errorf("verifying paypal webhook: %w", err)
	}
	if resp.VerificationStatus != "SUCCESS" {
		return fmt.Errorf("verification status %s: %w", resp.VerificationStatus, ErrInvalidSignature)
	}
	return nil
}

// centsToDecimal renders cents as the major-unit decimal string PayPal
// expects, e.g. 1250 becomes "12.50".
func centsToDecimal(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

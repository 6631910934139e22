package payments

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"golang.org/x/exp/slog"
)

// StripeAdapter charges and refunds through Stripe's Charges API.
type StripeAdapter struct {
	api           *client.API
	webhookSecret string
	logger        *slog.Logger
}

// NewStripeAdapter builds an adapter around a Stripe secret key. The
// webhook secret may be empty when no webhooks are verified.
func NewStripeAdapter(apiKey, webhookSecret string, logger *slog.Logger) *StripeAdapter {
	api := &client.API{}
	api.Init(apiKey, nil)

	return &StripeAdapter{
		api:           api,
		webhookSecret: webhookSecret,
		logger:        logger.With(slog.String("adapter", "stripe")),
	}
}

func (s *StripeAdapter) Name() string { return "stripe" }

// Charge creates and immediately captures a charge.
func (s *StripeAdapter) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("charge of %d cents: %w", req.AmountCents, ErrAmountNotPositive)
	}

	params := &stripe.ChargeParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(strings.ToLower(currencyOrDefault(req.Currency))),
		Description: stripe.String(req.Description),
	}
	if req.Source != "" {
		if err := params.SetSource(req.Source); err != nil {
			return nil, fmt.Errorf("setting charge source: %w", err)
		}
	}

	ch, err := s.api.Charges.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating stripe charge: %w", err)
	}

	s.logger.Info("charge created",
		slog.String("charge_id", ch.ID),
		slog.Int64("amount_cents", ch.Amount),
	)

	return &Charge{
		ID:            ch.ID,
		AmountCents:   ch.Amount,
		Currency:      string(ch.Currency),
		Source:        req.Source,
		Description:   req.Description,
		Status:        string(ch.Status),
		RefundedCents: ch.AmountRefunded,
	}, nil
}

// Refund refunds a charge. With a zero amount Stripe refunds the
// remainder itself.
func (s *StripeAdapter) Refund(ctx context.Context, req RefundRequest) (*Refund, error) {
	if req.ChargeID == "" {
		return nil, fmt.Errorf("refund: charge id is required")
	}
	if req.AmountCents < 0 {
		return nil, fmt.Errorf("refund of %d cents: %w", req.AmountCents, ErrAmountNotPositive)
	}

	params := &stripe.RefundParams{
		Params: stripe.Params{Context: ctx},
		Charge: stripe.String(req.ChargeID),
	}
	if req.AmountCents > 0 {
		params.Amount = stripe.Int64(req.AmountCents)
	}

	ref, err := s.api.Refunds.New(params)
	if err != nil {
		return nil, fmt.Errorf("refunding charge %s: %w", req.ChargeID, err)
	}

	s.logger.Info("refund created",
		slog.String("refund_id", ref.ID),
		slog.Int64("amount_cents", ref.Amount),
	)

	return &Refund{
		ID:          ref.ID,
		ChargeID:    req.ChargeID,
		AmountCents: ref.Amount,
		Status:      string(ref.Status),
	}, nil
}

// VerifyWebhook validates the Stripe-Signature header with the signing
// secret.
func (s *StripeAdapter) VerifyWebhook(_ context.Context, payload []byte, header http.Header) error {
	if s.webhookSecret == "" {
		return fmt.Errorf("webhook secret not configured: %w", ErrInvalidSignature)
	}

	event, err := webhook.ConstructEvent(payload, header.Get("Stripe-Signature"), s.webhookSecret)
	if err != nil {
		return fmt.Errorf("verifying stripe webhook: %w", err)
	}

	s.logger.Debug("stripe event verified",
		slog.String("event_id", event.ID),
		slog.String("type", string(event.Type)),
	)
	return nil
}

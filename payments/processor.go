package payments

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

// Processor validates requests before handing them to an Adapter. It is
// the front door the CLI and the examples use.
type Processor struct {
	adapter Adapter
	logger  *slog.Logger
}

// NewProcessor wraps an adapter.
func NewProcessor(adapter Adapter, logger *slog.Logger) *Processor {
	return &Processor{
		adapter: adapter,
		logger:  logger.With(slog.String("component", "payments")),
	}
}

// Adapter exposes the wrapped adapter.
func (p *Processor) Adapter() Adapter { return p.adapter }

// Charge validates and executes a charge. Currency defaults to USD.
func (p *Processor) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("charge of %d cents: %w", req.AmountCents, ErrAmountNotPositive)
	}
	req.Currency = currencyOrDefault(req.Currency)

	ch, err := p.adapter.Charge(ctx, req)
	if err != nil {
		return nil, err
	}

	p.logger.Info("charge succeeded",
		slog.String("provider", p.adapter.Name()),
		slog.String("charge_id", ch.ID),
		slog.Int64("amount_cents", ch.AmountCents),
	)
	return ch, nil
}

// Refund validates and executes a refund.
func (p *Processor) Refund(ctx context.Context, req RefundRequest) (*Refund, error) {
	if req.ChargeID == "" {
		return nil, fmt.Errorf("refund: charge id is required")
	}
	if req.AmountCents < 0 {
		return nil, fmt.Errorf("refund of %d cents: %w", req.AmountCents, ErrAmountNotPositive)
	}

	ref, err := p.adapter.Refund(ctx, req)
	if err != nil {
		return nil, err
	}

	p.logger.Info("refund succeeded",
		slog.String("provider", p.adapter.Name()),
		slog.String("charge_id", ref.ChargeID),
		slog.Int64("amount_cents", ref.AmountCents),
	)
	return ref, nil
}

package issuing

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"github.com/payproc-io/payproc/issuing/models"
)

// Service validates issuing requests before delegating to an Adapter. It
// is the front door the CLI and the examples use.
type Service struct {
	adapter Adapter
	logger  *slog.Logger
}

// NewService wraps an adapter.
func NewService(adapter Adapter, logger *slog.Logger) *Service {
	return &Service{
		adapter: adapter,
		logger:  logger.With(slog.String("component", "issuing")),
	}
}

// Adapter exposes the wrapped adapter.
func (s *Service) Adapter() Adapter { return s.adapter }

// CreateCardholder registers a cardholder. The name is required.
func (s *Service) CreateCardholder(ctx context.Context, req models.CreateCardholder) (*models.Cardholder, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("cardholder name is required")
	}

	ch, err := s.adapter.CreateCardholder(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("cardholder created",
		slog.String("provider", s.adapter.Name()),
		slog.String("cardholder_id", ch.ID),
	)
	return ch, nil
}

// IssueCard creates a virtual card for an existing cardholder. Currency
// defaults to usd.
func (s *Service) IssueCard(ctx context.Context, req models.IssueCard) (*models.Card, error) {
	if req.CardholderID == "" {
		return nil, fmt.Errorf("cardholder id is required")
	}
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}

	card, err := s.adapter.IssueCard(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("card issued",
		slog.String("provider", s.adapter.Name()),
		slog.String("card_id", card.ID),
	)
	return card, nil
}

// LoadFunds tops up a card. The amount is checked here, before the
// provider is called.
func (s *Service) LoadFunds(ctx context.Context, req models.LoadFunds) (*models.Topup, error) {
	if req.CardID == "" {
		return nil, fmt.Errorf("card id is required")
	}
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("top-up of %d cents: %w", req.AmountCents, ErrAmountNotPositive)
	}
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}

	topup, err := s.adapter.LoadFunds(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("funds loaded",
		slog.String("provider", s.adapter.Name()),
		slog.String("card_id", topup.CardID),
		slog.Int64("amount_cents", topup.AmountCents),
	)
	return topup, nil
}

// GetCard returns the current state of a card.
func (s *Service) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	if cardID == "" {
		return nil, fmt.Errorf("card id is required")
	}
	return s.adapter.GetCard(ctx, cardID)
}

// FreezeCard suspends a card.
func (s *Service) FreezeCard(ctx context.Context, cardID string) (*models.Card, error) {
	return s.setStatus(ctx, cardID, "frozen", s.adapter.FreezeCard)
}

// UnfreezeCard reactivates a card.
func (s *Service) UnfreezeCard(ctx context.Context, cardID string) (*models.Card, error) {
	return s.setStatus(ctx, cardID, "unfrozen", s.adapter.UnfreezeCard)
}

// CloseCard cancels a card.
func (s *Service) CloseCard(ctx context.Context, cardID string) (*models.Card, error) {
	return s.setStatus(ctx, cardID, "closed", s.adapter.CloseCard)
}

func (s *Service) setStatus(ctx context.Context, cardID, action string, op func(context.Context, string) (*models.Card, error)) (*models.Card, error) {
	if cardID == "" {
		return nil, fmt.Errorf("card id is required")
	}

	card, err := op(ctx, cardID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("card "+action,
		slog.String("provider", s.adapter.Name()),
		slog.String("card_id", card.ID),
	)
	return card, nil
}

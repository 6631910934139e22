package issuing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"golang.org/x/exp/slog"

	"github.com/payproc-io/payproc/issuing/models"
)

// topupCardMetadataKey tags a platform top-up with the card it was made
// for, since Stripe Issuing has no per-card balance.
const topupCardMetadataKey = "card_id"

// StripeAdapter issues virtual cards through Stripe Issuing.
type StripeAdapter struct {
	api    *client.API
	logger *slog.Logger
}

// NewStripeAdapter builds an adapter around a Stripe secret key.
func NewStripeAdapter(apiKey string, logger *slog.Logger) *StripeAdapter {
	api := &client.API{}
	api.Init(apiKey, nil)

	return &StripeAdapter{
		api:    api,
		logger: logger.With(slog.String("adapter", "stripe")),
	}
}

func (s *StripeAdapter) Name() string { return "stripe" }

// CreateCardholder registers an individual cardholder.
func (s *StripeAdapter) CreateCardholder(ctx context.Context, req models.CreateCardholder) (*models.Cardholder, error) {
	params := &stripe.IssuingCardholderParams{
		Params: stripe.Params{Context: ctx},
		Type:   stripe.String(string(stripe.IssuingCardholderTypeIndividual)),
		Name:   stripe.String(req.Name),
	}
	if req.Email != "" {
		params.Email = stripe.String(req.Email)
	}

	ch, err := s.api.IssuingCardholders.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating cardholder: %w", err)
	}

	s.logger.Info("cardholder created", slog.String("cardholder_id", ch.ID))

	return &models.Cardholder{ID: ch.ID, Name: ch.Name, Email: ch.Email}, nil
}

// IssueCard creates an active virtual card for the cardholder.
func (s *StripeAdapter) IssueCard(ctx context.Context, req models.IssueCard) (*models.Card, error) {
	if req.CardholderID == "" {
		return nil, fmt.Errorf("issue card: cardholder id is required")
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	params := &stripe.IssuingCardParams{
		Params:     stripe.Params{Context: ctx},
		Cardholder: stripe.String(req.CardholderID),
		Currency:   stripe.String(strings.ToLower(currency)),
		Type:       stripe.String(string(stripe.IssuingCardTypeVirtual)),
		Status:     stripe.String(string(stripe.IssuingCardStatusActive)),
	}

	card, err := s.api.IssuingCards.New(params)
	if err != nil {
		return nil, fmt.Errorf("issuing card: %w", err)
	}

	s.logger.Info("card issued",
		slog.String("card_id", card.ID),
		slog.String("last4", card.Last4),
	)

	return cardFromStripe(card), nil
}

// LoadFunds creates a platform top-up tagged with the card ID.
func (s *StripeAdapter) LoadFunds(ctx context.Context, req models.LoadFunds) (*models.Topup, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("top-up of %d cents: %w", req.AmountCents, ErrAmountNotPositive)
	}
	if req.CardID == "" {
		return nil, fmt.Errorf("top-up: card id is required")
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Top-up for card %s", req.CardID)
	}

	params := &stripe.TopupParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(strings.ToLower(currency)),
		Description: stripe.String(description),
	}
	params.AddMetadata(topupCardMetadataKey, req.CardID)

	topup, err := s.api.Topups.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating top-up for card %s: %w", req.CardID, err)
	}

	s.logger.Info("top-up created",
		slog.String("topup_id", topup.ID),
		slog.Int64("amount_cents", topup.Amount),
		slog.String("status", string(topup.Status)),
	)

	return topupFromStripe(topup), nil
}

// GetCard returns the current state of a card.
func (s *StripeAdapter) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	card, err := s.api.IssuingCards.Get(cardID, &stripe.IssuingCardParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, fmt.Errorf("getting card %s: %w", cardID, err)
	}
	return cardFromStripe(card), nil
}

// FreezeCard sets the card inactive.
func (s *StripeAdapter) FreezeCard(ctx context.Context, cardID string) (*models.Card, error) {
	return s.updateStatus(ctx, cardID, stripe.IssuingCardStatusInactive)
}

// UnfreezeCard reactivates a frozen card.
func (s *StripeAdapter) UnfreezeCard(ctx context.Context, cardID string) (*models.Card, error) {
	return s.updateStatus(ctx, cardID, stripe.IssuingCardStatusActive)
}

// CloseCard cancels the card permanently.
func (s *StripeAdapter) CloseCard(ctx context.Context, cardID string) (*models.Card, error) {
	return s.updateStatus(ctx, cardID, stripe.IssuingCardStatusCanceled)
}

// ReconcileTopups lists succeeded top-ups created at or after since and
// calls fn for each one tagged with a card ID. It returns how many
// top-ups were handed to fn.
func (s *StripeAdapter) ReconcileTopups(ctx context.Context, since time.Time, fn func(topup *models.Topup) error) (int, error) {
	params := &stripe.TopupListParams{
		Status:       stripe.String("succeeded"),
		CreatedRange: &stripe.RangeQueryParams{GreaterThanOrEqual: since.Unix()},
	}
	params.Context = ctx

	credited := 0
	it := s.api.Topups.List(params)
	for it.Next() {
		topup := it.Topup()
		if topup.Metadata[topupCardMetadataKey] == "" {
			continue
		}
		if err := fn(topupFromStripe(topup)); err != nil {
			return credited, fmt.Errorf("crediting top-up %s: %w", topup.ID, err)
		}
		credited++
	}
	if err := it.Err(); err != nil {
		return credited, fmt.Errorf("listing top-ups: %w", err)
	}

	return credited, nil
}

func (s *StripeAdapter) updateStatus(ctx context.Context, cardID string, status stripe.IssuingCardStatus) (*models.Card, error) {
	if cardID == "" {
		return nil, fmt.Errorf("card id is required")
	}

	card, err := s.api.IssuingCards.Update(cardID, &stripe.IssuingCardParams{
		Params: stripe.Params{Context: ctx},
		Status: stripe.String(string(status)),
	})
	if err != nil {
		return nil, fmt.Errorf("updating card %s: %w", cardID, err)
	}

	s.logger.Info("card status updated",
		slog.String("card_id", card.ID),
		slog.String("status", string(card.Status)),
	)

	return cardFromStripe(card), nil
}

func cardFromStripe(c *stripe.IssuingCard) *models.Card {
	card := &models.Card{
		ID:       c.ID,
		Currency: string(c.Currency),
		Status:   statusFromStripe(c.Status),
		Last4:    c.Last4,
		ExpMonth: int(c.ExpMonth),
		ExpYear:  int(c.ExpYear),
	}
	if c.Cardholder != nil {
		card.CardholderID = c.Cardholder.ID
	}
	return card
}

func statusFromStripe(status stripe.IssuingCardStatus) models.CardStatus {
	switch status {
	case stripe.IssuingCardStatusInactive:
		return models.CardFrozen
	case stripe.IssuingCardStatusCanceled:
		return models.CardClosed
	default:
		return models.CardActive
	}
}

func topupFromStripe(t *stripe.Topup) *models.Topup {
	return &models.Topup{
		ID:          t.ID,
		CardID:      t.Metadata[topupCardMetadataKey],
		AmountCents: t.Amount,
		Currency:    string(t.Currency),
		Status:      string(t.Status),
		CreatedAt:   time.Unix(t.Created, 0).UTC(),
	}
}

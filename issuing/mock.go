package issuing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/payproc-io/payproc/internal/cardgen"
	"github.com/payproc-io/payproc/internal/expiry"
	"github.com/payproc-io/payproc/internal/ident"
	"github.com/payproc-io/payproc/issuing/models"
)

// mockBIN is the demo BIN mock PANs start with (Visa test range).
const mockBIN = "400000"

// MockAdapter issues cards in memory. It never performs network I/O and
// tracks card balances itself so demos run fully offline.
type MockAdapter struct {
	mu          sync.RWMutex
	cardholders map[string]*models.Cardholder
	cards       map[string]*models.Card
}

// NewMockAdapter returns an empty mock provider.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		cardholders: make(map[string]*models.Cardholder),
		cards:       make(map[string]*models.Card),
	}
}

func (m *MockAdapter) Name() string { return "mock" }

// CreateCardholder registers a cardholder.
func (m *MockAdapter) CreateCardholder(_ context.Context, req models.CreateCardholder) (*models.Cardholder, error) {
	ch := &models.Cardholder{
		ID:    ident.New("ch"),
		Name:  req.Name,
		Email: req.Email,
	}

	m.mu.Lock()
	m.cardholders[ch.ID] = ch
	m.mu.Unlock()

	out := *ch
	return &out, nil
}

// IssueCard creates an active virtual card with a masked demo PAN.
func (m *MockAdapter) IssueCard(_ context.Context, req models.IssueCard) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cardholders[req.CardholderID]; !ok {
		return nil, fmt.Errorf("cardholder %s: %w", req.CardholderID, ErrNotFound)
	}

	pan, err := cardgen.GeneratePAN(mockBIN)
	if err != nil {
		return nil, fmt.Errorf("generating demo pan: %w", err)
	}
	month, year := expiry.MonthYear(time.Now(), expiry.DefaultYears)

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	card := &models.Card{
		ID:           ident.New("vc"),
		CardholderID: req.CardholderID,
		Currency:     currency,
		Status:       models.CardActive,
		Number:       cardgen.MaskPAN(pan),
		Last4:        cardgen.LastN(pan, 4),
		ExpMonth:     month,
		ExpYear:      year,
	}
	m.cards[card.ID] = card

	out := *card
	return &out, nil
}

// LoadFunds credits the card balance and reports the top-up.
func (m *MockAdapter) LoadFunds(_ context.Context, req models.LoadFunds) (*models.Topup, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("top-up of %d cents: %w", req.AmountCents, ErrAmountNotPositive)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.cards[req.CardID]
	if !ok {
		return nil, fmt.Errorf("card %s: %w", req.CardID, ErrNotFound)
	}
	if card.Status == models.CardClosed {
		return nil, fmt.Errorf("card %s: %w", req.CardID, ErrCardClosed)
	}

	card.BalanceCents += req.AmountCents

	currency := req.Currency
	if currency == "" {
		currency = card.Currency
	}

	return &models.Topup{
		ID:          ident.New("tu"),
		CardID:      card.ID,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Status:      "succeeded",
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// GetCard returns a copy of a card.
func (m *MockAdapter) GetCard(_ context.Context, cardID string) (*models.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	card, ok := m.cards[cardID]
	if !ok {
		return nil, fmt.Errorf("card %s: %w", cardID, ErrNotFound)
	}

	out := *card
	return &out, nil
}

// FreezeCard suspends an active card.
func (m *MockAdapter) FreezeCard(_ context.Context, cardID string) (*models.Card, error) {
	return m.setStatus(cardID, models.CardFrozen)
}

// UnfreezeCard reactivates a frozen card.
func (m *MockAdapter) UnfreezeCard(_ context.Context, cardID string) (*models.Card, error) {
	return m.setStatus(cardID, models.CardActive)
}

// CloseCard closes a card. Closing an already closed card is a no-op.
func (m *MockAdapter) CloseCard(_ context.Context, cardID string) (*models.Card, error) {
	return m.setStatus(cardID, models.CardClosed)
}

func (m *MockAdapter) setStatus(cardID string, status models.CardStatus) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.cards[cardID]
	if !ok {
		return nil, fmt.Errorf("card %s: %w", cardID, ErrNotFound)
	}
	if card.Status == models.CardClosed && status != models.CardClosed {
		return nil, fmt.Errorf("card %s: %w", cardID, ErrCardClosed)
	}

	card.Status = status

	out := *card
	return &out, nil
}

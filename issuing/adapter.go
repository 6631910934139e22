// Package issuing provides virtual-card issuing against interchangeable
// providers: an offline mock and Stripe Issuing.
package issuing

import (
	"context"
	"errors"

	"github.com/payproc-io/payproc/issuing/models"
)

// DefaultCurrency is applied when requests leave the currency empty.
const DefaultCurrency = "usd"

var (
	ErrNotFound          = errors.New("not found")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrCardClosed        = errors.New("card is closed")
)

// Adapter is one issuing provider. Implementations must be safe for
// concurrent use.
type Adapter interface {
	// Name identifies the provider in logs and CLI output.
	Name() string

	// CreateCardholder registers the person a card can be issued to.
	CreateCardholder(ctx context.Context, req models.CreateCardholder) (*models.Cardholder, error)

	// IssueCard creates an active virtual card.
	IssueCard(ctx context.Context, req models.IssueCard) (*models.Card, error)

	// LoadFunds tops up a card.
	LoadFunds(ctx context.Context, req models.LoadFunds) (*models.Topup, error)

	// GetCard returns the current state of a card.
	GetCard(ctx context.Context, cardID string) (*models.Card, error)

	// FreezeCard suspends an active card.
	FreezeCard(ctx context.Context, cardID string) (*models.Card, error)

	// UnfreezeCard reactivates a frozen card.
	UnfreezeCard(ctx context.Context, cardID string) (*models.Card, error)

	// CloseCard cancels a card for good. Closed cards stay closed.
	CloseCard(ctx context.Context, cardID string) (*models.Card, error)
}

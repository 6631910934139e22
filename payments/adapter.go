// Package payments charges and refunds against interchangeable payment
// providers: an offline mock, Stripe, and PayPal.
package payments

import (
	"context"
	"errors"
	"net/http"
)

// DefaultCurrency is applied when a request leaves Currency empty.
const DefaultCurrency = "USD"

// Charge statuses reported by the adapters.
const (
	StatusSucceeded = "succeeded"
	StatusRefunded  = "refunded"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAlreadyRefunded   = errors.New("charge already fully refunded")
	ErrInvalidSignature  = errors.New("invalid webhook signature")
)

// ChargeRequest describes a charge to create.
type ChargeRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

// Charge is the provider-neutral view of a created charge.
type Charge struct {
	ID            string `json:"id"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
	Source        string `json:"source,omitempty"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status"`
	RefundedCents int64  `json:"refunded_cents"`
}

// RefundRequest describes a refund. A zero AmountCents refunds whatever
// remains on the charge.
type RefundRequest struct {
	ChargeID    string `json:"charge_id"`
	AmountCents int64  `json:"amount_cents"`
}

// Refund is the provider-neutral view of a refund.
type Refund struct {
	ID          string `json:"id"`
	ChargeID    string `json:"charge_id"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
}

// Adapter is one payment provider. Implementations must be safe for
// concurrent use.
type Adapter interface {
	// Name identifies the provider in logs and CLI output.
	Name() string

	// Charge creates and captures a payment.
	Charge(ctx context.Context, req ChargeRequest) (*Charge, error)

	// Refund reverses a charge fully or partially.
	Refund(ctx context.Context, req RefundRequest) (*Refund, error)

	// VerifyWebhook authenticates a raw webhook delivery. The payload is
	// the unmodified request body; header carries the provider's
	// signature material.
	VerifyWebhook(ctx context.Context, payload []byte, header http.Header) error
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return DefaultCurrency
	}
	return currency
}

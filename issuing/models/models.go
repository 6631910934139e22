// Package models holds the issuing domain types shared by the adapters,
// the service and the CLI.
package models

import "time"

// CardStatus is the lifecycle state of a virtual card.
type CardStatus string

const (
	CardActive CardStatus = "active"
	CardFrozen CardStatus = "frozen"
	CardClosed CardStatus = "closed"
)

// Cardholder is the person cards are issued to.
type Cardholder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Card is a virtual card. Number is masked for display; only the live
// provider ever holds the real PAN. BalanceCents is tracked by the mock
// only, the live provider keeps funds on the platform balance.
type Card struct {
	ID           string     `json:"id"`
	CardholderID string     `json:"cardholder_id"`
	Currency     string     `json:"currency"`
	BalanceCents int64      `json:"balance_cents"`
	Status       CardStatus `json:"status"`
	Number       string     `json:"number,omitempty"`
	Last4        string     `json:"last4,omitempty"`
	ExpMonth     int        `json:"exp_month,omitempty"`
	ExpYear      int        `json:"exp_year,omitempty"`
}

// Topup is a funds load for a card.
type Topup struct {
	ID          string    `json:"id"`
	CardID      string    `json:"card_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCardholder is the request to register a cardholder.
type CreateCardholder struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// IssueCard is the request for a new virtual card.
type IssueCard struct {
	CardholderID string `json:"cardholder_id"`
	Currency     string `json:"currency,omitempty"`
}

// LoadFunds is the request to top up a card.
type LoadFunds struct {
	CardID      string `json:"card_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency,omitempty"`
	Description string `json:"description,omitempty"`
}

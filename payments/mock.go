package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"

	"github.com/payproc-io/payproc/internal/ident"
)

// MockSignatureHeader carries the hex HMAC-SHA256 signature of a mock
// webhook payload.
const MockSignatureHeader = "X-Payproc-Signature"

// MockAdapter is an in-memory payment provider for demos and tests. It
// never performs network I/O.
type MockAdapter struct {
	// WebhookSecret is the shared secret mock webhooks are signed with.
	// While it is empty, every delivery is rejected.
	WebhookSecret string

	mu      sync.RWMutex
	charges map[string]*Charge
}

// NewMockAdapter returns an empty mock provider.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{charges: make(map[string]*Charge)}
}

func (m *MockAdapter) Name() string { return "mock" }

// Charge records a succeeded charge in memory.
func (m *MockAdapter) Charge(_ context.Context, req ChargeRequest) (*Charge, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("charge of %d cents: %w", req.AmountCents, ErrAmountNotPositive)
	}

	ch := &Charge{
		ID:          ident.New("ch"),
		AmountCents: req.AmountCents,
		Currency:    currencyOrDefault(req.Currency),
		Source:      req.Source,
		Description: req.Description,
		Status:      StatusSucceeded,
	}

	m.mu.Lock()
	m.charges[ch.ID] = ch
	m.mu.Unlock()

	out := *ch
	return &out, nil
}

// Refund refunds part or all of a recorded charge. A zero amount refunds
// the remainder; a fully refunded charge flips to StatusRefunded.
func (m *MockAdapter) Refund(_ context.Context, req RefundRequest) (*Refund, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, ok := m.charges[req.ChargeID]
	if !ok {
		return nil, fmt.Errorf("charge %s: %w", req.ChargeID, ErrNotFound)
	}

	remaining := ch.AmountCents - ch.RefundedCents
	if remaining <= 0 {
		return nil, fmt.Errorf("charge %s: %w", req.ChargeID, ErrAlreadyRefunded)
	}

	amount := req.AmountCents
	if amount == 0 {
		amount = remaining
	}
	if amount < 0 {
		return nil, fmt.Errorf("refund of %d cents: %w", amount, ErrAmountNotPositive)
	}
	if amount > remaining {
		return nil, fmt.Errorf("refund of %d cents exceeds remaining %d cents", amount, remaining)
	}

	ch.RefundedCents += amount
	if ch.RefundedCents == ch.AmountCents {
		ch.Status = StatusRefunded
	}

	return &Refund{
		ID:          ident.New("re"),
		ChargeID:    ch.ID,
		AmountCents: amount,
		Status:      ch.Status,
	}, nil
}

// GetCharge returns a copy of a recorded charge.
func (m *MockAdapter) GetCharge(id string) (*Charge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ch, ok := m.charges[id]
	if !ok {
		return nil, fmt.Errorf("charge %s: %w", id, ErrNotFound)
	}

	out := *ch
	return &out, nil
}

// VerifyWebhook checks the hex HMAC-SHA256 signature carried in
// MockSignatureHeader against the configured secret.
func (m *MockAdapter) VerifyWebhook(_ context.Context, payload []byte, header http.Header) error {
	if m.WebhookSecret == "" {
		return fmt.Errorf("webhook secret not configured: %w", ErrInvalidSignature)
	}

	sig := header.Get(MockSignatureHeader)
	if sig == "" {
		return fmt.Errorf("missing %s header: %w", MockSignatureHeader, ErrInvalidSignature)
	}

	if !hmac.Equal([]byte(sig), []byte(SignPayload(payload, m.WebhookSecret))) {
		return ErrInvalidSignature
	}
	return nil
}

// SignPayload computes the mock webhook signature for payload. Webhook
// producers use it to sign, the mock adapter to verify.
func SignPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

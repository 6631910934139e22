package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration marks a fatal configuration mistake. Callers must treat
// it as a refusal to proceed, never as a cue to fall back to the mock.
var ErrConfiguration = errors.New("configuration error")

// Mode says which adapter family a process runs against.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// KeyShape classifies a Stripe secret key by its prefix. The prefix is the
// only signal used; keys are never sent anywhere for validation.
type KeyShape string

const (
	KeyLive         KeyShape = "live"
	KeyTest         KeyShape = "test"
	KeyUnrecognized KeyShape = "unrecognized"
)

// ClassifyKey reports the shape of a Stripe secret key.
func ClassifyKey(key string) KeyShape {
	switch {
	case strings.HasPrefix(key, "sk_live_"):
		return KeyLive
	case strings.HasPrefix(key, "sk_test_"):
		return KeyTest
	default:
		return KeyUnrecognized
	}
}

// SelectMode decides between the mock and live adapters. An empty key
// always selects the mock. With a key present, live must be requested
// explicitly; a live request with a test-shaped key fails with
// ErrConfiguration instead of falling back to the mock. Unrecognized key
// shapes are passed through to live.
func (c Config) SelectMode() (Mode, error) {
	if c.APIKey == "" {
		return ModeMock, nil
	}
	if !bool(c.Live) {
		return ModeMock, nil
	}
	if ClassifyKey(c.APIKey) == KeyTest {
		return "", fmt.Errorf("STRIPE_LIVE is set but STRIPE_API_KEY is a test key: %w", ErrConfiguration)
	}
	return ModeLive, nil
}

// AuthorizeTopup reports whether a top-up may run. The amount is validated
// here, before anything could reach the network; with DoTopup unset it is
// not inspected at all.
func (c Config) AuthorizeTopup() (bool, error) {
	if !bool(c.DoTopup) {
		return false, nil
	}
	if c.TopupAmountCents <= 0 {
		return false, fmt.Errorf("top-up amount must be positive, got %d: %w", c.TopupAmountCents, ErrConfiguration)
	}
	return true, nil
}

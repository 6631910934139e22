// Package config loads the process configuration from the environment and
// makes the mock-versus-live decisions for the payment adapters.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config is read once at startup and never mutated afterwards. All
// environment access happens in FromEnv; the decision methods on Config
// are pure, so they can be exercised without touching the process
// environment.
type Config struct {
	// APIKey is the Stripe secret key. When empty, every component runs
	// against the in-memory mock adapters.
	APIKey string `envconfig:"STRIPE_API_KEY"`

	// Live requests the live Stripe adapters. The key shape still has to
	// agree; see SelectMode.
	Live Bool `envconfig:"STRIPE_LIVE"`

	// DoTopup opts in to funds loading. Off by default so demo runs never
	// move money by accident.
	DoTopup Bool `envconfig:"STRIPE_DO_TOPUP"`

	// TopupAmountCents is the amount loaded when DoTopup is set.
	TopupAmountCents int64 `envconfig:"STRIPE_TOPUP_AMOUNT_CENTS" default:"1000"`

	// EnableLiveMode is the repo-wide master switch checked by the CLI
	// before any live flow runs. Adapter selection ignores it on purpose;
	// see SelectMode.
	EnableLiveMode Bool `envconfig:"ENABLE_LIVE_MODE"`

	// WebhookSecret signs and verifies incoming Stripe and mock webhooks.
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`

	// WebhookAddr is the listen address of the webhook receiver.
	WebhookAddr string `envconfig:"WEBHOOK_ADDR" default:"localhost:8080"`

	PayPal PayPalConfig `envconfig:"PAYPAL"`
}

// PayPalConfig carries the optional PayPal adapter credentials.
type PayPalConfig struct {
	ClientID     string `envconfig:"CLIENT_ID"`
	ClientSecret string `envconfig:"CLIENT_SECRET"`
	WebhookID    string `envconfig:"WEBHOOK_ID"`
	Sandbox      Bool   `envconfig:"SANDBOX" default:"true"`
}

// Configured reports whether PayPal credentials are present.
func (p PayPalConfig) Configured() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// FromEnv builds the Config from the process environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Bool is a permissive boolean env flag: 1, true and yes (any case) are
// true, everything else is false.
type Bool bool

// Decode implements envconfig.Decoder.
func (b *Bool) Decode(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		*b = true
	default:
		*b = false
	}
	return nil
}

// Report is the outcome of a live-configuration review. Issues block a
// live run; Warnings are printed for the operator to read twice.
type Report struct {
	Issues   []string
	Warnings []string
}

// OK reports whether the configuration has no blocking issues.
func (r Report) OK() bool { return len(r.Issues) == 0 }

// Check reviews the configuration for a live run. It only inspects the
// Config; nothing is sent to Stripe.
func (c Config) Check() Report {
	var r Report

	if !bool(c.EnableLiveMode) {
		r.Issues = append(r.Issues, "ENABLE_LIVE_MODE is not set; live flows stay disabled")
	}

	switch {
	case c.APIKey == "":
		r.Issues = append(r.Issues, "STRIPE_API_KEY is not set")
	case !strings.HasPrefix(c.APIKey, "sk_"):
		r.Issues = append(r.Issues, "STRIPE_API_KEY does not look like a Stripe secret key")
	case ClassifyKey(c.APIKey) == KeyTest && bool(c.EnableLiveMode):
		r.Warnings = append(r.Warnings, "STRIPE_API_KEY is a test key; flows will not reach live Stripe")
	}

	if !bool(c.Live) {
		r.Warnings = append(r.Warnings, "STRIPE_LIVE is not set; card operations fall back to the mock adapter")
	}

	if bool(c.DoTopup) && bool(c.EnableLiveMode) && ClassifyKey(c.APIKey) == KeyLive {
		r.Warnings = append(r.Warnings, fmt.Sprintf("top-ups are enabled for %d cents and will move real money", c.TopupAmountCents))
	}

	return r
}

package payments

import (
	"golang.org/x/exp/slog"

	"github.com/payproc-io/payproc/config"
)

// SelectAdapter maps the configured mode to a payment adapter. An error
// from mode selection is passed through untouched so callers fail fast on
// config.ErrConfiguration.
func SelectAdapter(cfg config.Config, logger *slog.Logger) (Adapter, error) {
	mode, err := cfg.SelectMode()
	if err != nil {
		return nil, err
	}

	if mode == config.ModeLive {
		logger.Info("using live stripe payment adapter")
		return NewStripeAdapter(cfg.APIKey, cfg.WebhookSecret, logger), nil
	}

	logger.Info("using mock payment adapter")
	mock := NewMockAdapter()
	mock.WebhookSecret = cfg.WebhookSecret
	return mock, nil
}

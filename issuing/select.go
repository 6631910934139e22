package issuing

import (
	"golang.org/x/exp/slog"

	"github.com/payproc-io/payproc/config"
)

// SelectAdapter maps the configured mode to an issuing adapter. An error
// from mode selection is passed through untouched so callers fail fast on
// config.ErrConfiguration.
func SelectAdapter(cfg config.Config, logger *slog.Logger) (Adapter, error) {
	mode, err := cfg.SelectMode()
	if err != nil {
		return nil, err
	}

	if mode == config.ModeLive {
		logger.Info("using live stripe issuing adapter")
		return NewStripeAdapter(cfg.APIKey, logger), nil
	}

	logger.Info("using mock issuing adapter")
	return NewMockAdapter(), nil
}

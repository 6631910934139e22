package webhooks

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"github.com/payproc-io/payproc/payments"
)

// maxPayloadBytes caps webhook bodies before signature verification.
const maxPayloadBytes = 65536

// API receives provider webhooks and verifies their signatures.
type API struct {
	stripe payments.Adapter
	paypal payments.Adapter
	logger *slog.Logger
}

// NewAPI builds the webhook API. paypal may be nil when PayPal
// credentials are not configured.
func NewAPI(stripe, paypal payments.Adapter, logger *slog.Logger) *API {
	return &API{
		stripe: stripe,
		paypal: paypal,
		logger: logger,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/webhook", func(r chi.Router) {
		r.Post("/stripe", a.stripeWebhook)
		r.Post("/paypal", a.paypalWebhook)
	})
}

func (a *API) stripeWebhook(w http.ResponseWriter, r *http.Request) {
	a.verify(w, r, a.stripe)
}

func (a *API) paypalWebhook(w http.ResponseWriter, r *http.Request) {
	if a.paypal == nil {
		http.Error(w, "paypal webhooks are not configured", http.StatusServiceUnavailable)
		return
	}

	a.verify(w, r, a.paypal)
}

func (a *API) verify(w http.ResponseWriter, r *http.Request, adapter payments.Adapter) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "reading body", http.StatusBadRequest)
		return
	}

	if err := adapter.VerifyWebhook(r.Context(), payload, r.Header); err != nil {
		a.logger.Info("webhook rejected",
			slog.String("provider", adapter.Name()),
			slog.Any("err", err),
		)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	a.logger.Info("webhook accepted",
		slog.String("provider", adapter.Name()),
		slog.Int("bytes", len(payload)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"ok":true}`))
}

package webhooks_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/payproc-io/payproc/config"
	"github.com/payproc-io/payproc/payments"
	"github.com/payproc-io/payproc/webhooks"
)

func TestWebhooksApp(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		WebhookAddr:   "localhost:0",
		WebhookSecret: "test-secret",
	}

	app := webhooks.NewApp(logger, cfg)
	require.NoError(t, app.Start())
	defer app.Shutdown()

	base := "http://" + app.Addr
	payload := []byte(`{"type":"charge.succeeded"}`)

	t.Run("liveness", func(t *testing.T) {
		res, err := http.Get(base + "/-/live")
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("signed payload is accepted", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, base+"/webhook/stripe", bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set(payments.MockSignatureHeader, payments.SignPayload(payload, "test-secret"))

		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)

		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"ok":true}`, string(body))
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, base+"/webhook/stripe", bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set(payments.MockSignatureHeader, payments.SignPayload(payload, "wrong-secret"))

		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("unsigned payload is rejected", func(t *testing.T) {
		res, err := http.Post(base+"/webhook/stripe", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("paypal is unavailable without credentials", func(t *testing.T) {
		res, err := http.Post(base+"/webhook/paypal", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	})
}

func TestWebhooksAppRejectsBadConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		WebhookAddr: "localhost:0",
		APIKey:      "sk_test_abc",
		Live:        true,
	}

	app := webhooks.NewApp(logger, cfg)
	require.ErrorIs(t, app.Start(), config.ErrConfiguration)
}

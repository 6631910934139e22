package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"golang.org/x/exp/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStripeAdapter points the Stripe SDK at a local test server.
func newTestStripeAdapter(t *testing.T, url, webhookSecret string) *StripeAdapter {
	t.Helper()

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:           stripe.String(url),
		LeveledLogger: &stripe.LeveledLogger{Level: stripe.LevelError},
	})

	api := &client.API{}
	api.Init("sk_test_adapter", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})

	return &StripeAdapter{
		api:           api,
		webhookSecret: webhookSecret,
		logger:        discardLogger(),
	}
}

func TestStripeAdapterCharge(t *testing.T) {
	var form map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/charges", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = map[string]string{
			"amount":      r.PostForm.Get("amount"),
			"currency":    r.PostForm.Get("currency"),
			"source":      r.PostForm.Get("source"),
			"description": r.PostForm.Get("description"),
		}
		fmt.Fprint(w, `{"id":"ch_live_1","amount":2500,"currency":"usd","status":"succeeded","amount_refunded":0}`)
	}))
	defer srv.Close()

	adapter := newTestStripeAdapter(t, srv.URL, "")

	ch, err := adapter.Charge(context.Background(), ChargeRequest{
		AmountCents: 2500,
		Source:      "tok_visa",
		Description: "demo charge",
	})
	require.NoError(t, err)

	require.Equal(t, "ch_live_1", ch.ID)
	require.EqualValues(t, 2500, ch.AmountCents)
	require.Equal(t, "usd", ch.Currency)
	require.Equal(t, StatusSucceeded, ch.Status)

	require.Equal(t, "2500", form["amount"])
	require.Equal(t, "usd", form["currency"])
	require.Equal(t, "tok_visa", form["source"])
	require.Equal(t, "demo charge", form["description"])
}

func TestStripeAdapterChargeRejectsBadAmount(t *testing.T) {
	adapter := &StripeAdapter{logger: discardLogger()}

	_, err := adapter.Charge(context.Background(), ChargeRequest{AmountCents: 0})
	require.ErrorIs(t, err, ErrAmountNotPositive)
}

func TestStripeAdapterRefund(t *testing.T) {
	t.Run("partial refund sends the amount", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/refunds", r.URL.Path)
			require.NoError(t, r.ParseForm())
			require.Equal(t, "ch_live_1", r.PostForm.Get("charge"))
			require.Equal(t, "1000", r.PostForm.Get("amount"))
			fmt.Fprint(w, `{"id":"re_1","amount":1000,"charge":"ch_live_1","status":"succeeded"}`)
		}))
		defer srv.Close()

		adapter := newTestStripeAdapter(t, srv.URL, "")

		ref, err := adapter.Refund(context.Background(), RefundRequest{ChargeID: "ch_live_1", AmountCents: 1000})
		require.NoError(t, err)
		require.Equal(t, "re_1", ref.ID)
		require.Equal(t, "ch_live_1", ref.ChargeID)
		require.EqualValues(t, 1000, ref.AmountCents)
	})

	t.Run("full refund leaves the amount to stripe", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			require.Empty(t, r.PostForm.Get("amount"))
			fmt.Fprint(w, `{"id":"re_2","amount":2500,"charge":"ch_live_1","status":"succeeded"}`)
		}))
		defer srv.Close()

		adapter := newTestStripeAdapter(t, srv.URL, "")

		ref, err := adapter.Refund(context.Background(), RefundRequest{ChargeID: "ch_live_1"})
		require.NoError(t, err)
		require.EqualValues(t, 2500, ref.AmountCents)
	})

	t.Run("charge id is required", func(t *testing.T) {
		adapter := &StripeAdapter{logger: discardLogger()}

		_, err := adapter.Refund(context.Background(), RefundRequest{})
		require.Error(t, err)
	})
}

// stripeSignature builds a Stripe-Signature header value for payload.
func stripeSignature(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestStripeAdapterVerifyWebhook(t *testing.T) {
	adapter := &StripeAdapter{webhookSecret: "whsec_test", logger: discardLogger()}
	payload := []byte(`{"id":"evt_1","object":"event","type":"charge.succeeded"}`)

	t.Run("valid signature", func(t *testing.T) {
		header := http.Header{}
		header.Set("Stripe-Signature", stripeSignature(payload, "whsec_test", time.Now()))

		require.NoError(t, adapter.VerifyWebhook(context.Background(), payload, header))
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := http.Header{}
		header.Set("Stripe-Signature", stripeSignature(payload, "whsec_other", time.Now()))

		require.Error(t, adapter.VerifyWebhook(context.Background(), payload, header))
	})

	t.Run("stale timestamp", func(t *testing.T) {
		header := http.Header{}
		header.Set("Stripe-Signature", stripeSignature(payload, "whsec_test", time.Now().Add(-time.Hour)))

		require.Error(t, adapter.VerifyWebhook(context.Background(), payload, header))
	})

	t.Run("missing header", func(t *testing.T) {
		require.Error(t, adapter.VerifyWebhook(context.Background(), payload, http.Header{}))
	})

	t.Run("no secret configured", func(t *testing.T) {
		bare := &StripeAdapter{logger: discardLogger()}

		err := bare.VerifyWebhook(context.Background(), payload, http.Header{})
		require.ErrorIs(t, err, ErrInvalidSignature)
	})
}

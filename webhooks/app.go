package webhooks

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"github.com/payproc-io/payproc/config"
	"github.com/payproc-io/payproc/internal/middleware"
	"github.com/payproc-io/payproc/payments"
)

// App is the webhook receiver service. It verifies provider signatures
// with the same adapters the payment processor charges through.
type App struct {
	srv    *http.Server
	wg     *sync.WaitGroup
	Addr   string
	logger *slog.Logger
	config config.Config
}

func NewApp(logger *slog.Logger, cfg config.Config) *App {
	logger = logger.With(slog.String("app", "webhooks"))

	return &App{
		wg:     &sync.WaitGroup{},
		logger: logger,
		config: cfg,
	}
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	stripeVerifier, err := payments.SelectAdapter(a.config, a.logger)
	if err != nil {
		return fmt.Errorf("selecting webhook verifier: %w", err)
	}

	var paypalVerifier payments.Adapter
	if a.config.PayPal.Configured() {
		pp, err := payments.NewPayPalAdapter(
			a.config.PayPal.ClientID,
			a.config.PayPal.ClientSecret,
			a.config.PayPal.WebhookID,
			bool(a.config.PayPal.Sandbox),
			a.logger,
		)
		if err != nil {
			return fmt.Errorf("configuring paypal verifier: %w", err)
		}
		paypalVerifier = pp
	}

	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(a.logger))

	api := NewAPI(stripeVerifier, paypalVerifier, a.logger)
	api.AppendRoutes(router)

	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	l, err := net.Listen("tcp", a.config.WebhookAddr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()

	a.srv = &http.Server{
		Handler: router,
	}

	a.wg.Add(1)
	go func() {
		a.logger.Info("http server started", slog.String("addr", a.Addr))

		if err := a.srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("starting http server", "err", err)
			}

			a.logger.Info("http server stopped")
		}

		a.wg.Done()
	}()

	return nil
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down app...")

	a.srv.Shutdown(context.Background())

	a.wg.Wait()

	a.logger.Info("app stopped")
}

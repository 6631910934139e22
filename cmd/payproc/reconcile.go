package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/payproc-io/payproc/config"
	"github.com/payproc-io/payproc/issuing"
	"github.com/payproc-io/payproc/issuing/models"
)

var reconcileSinceHours int

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "List recent live top-ups tagged with a card",
	RunE:  runReconcile,
}

func init() {
	reconcileCmd.Flags().IntVar(&reconcileSinceHours, "since-hours", 24, "look back this many hours")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	mode, err := cfg.SelectMode()
	if err != nil {
		return err
	}
	if mode != config.ModeLive {
		return fmt.Errorf("reconcile needs live mode; current mode is %s", mode)
	}
	if !cfg.EnableLiveMode {
		return fmt.Errorf("live mode selected but ENABLE_LIVE_MODE is not set")
	}

	adapter := issuing.NewStripeAdapter(cfg.APIKey, logger)
	since := time.Now().Add(-time.Duration(reconcileSinceHours) * time.Hour)

	credited, err := adapter.ReconcileTopups(cmd.Context(), since, func(topup *models.Topup) error {
		cmd.Printf("%s  card=%s  %d %s  %s\n",
			topup.ID,
			topup.CardID,
			topup.AmountCents,
			topup.Currency,
			topup.CreatedAt.Format(time.RFC3339),
		)
		return nil
	})
	if err != nil {
		return err
	}

	cmd.Printf("%d top-ups credited\n", credited)

	return nil
}

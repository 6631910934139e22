package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/payproc-io/payproc/config"
	"github.com/payproc-io/payproc/internal/expiry"
	"github.com/payproc-io/payproc/issuing"
	"github.com/payproc-io/payproc/issuing/models"
)

var issuingDemoCmd = &cobra.Command{
	Use:   "issuing-demo",
	Short: "Walk a virtual card through create, load, freeze and close",
	RunE:  runIssuingDemo,
}

func runIssuingDemo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	mode, err := cfg.SelectMode()
	if err != nil {
		return err
	}
	if mode == config.ModeLive && !cfg.EnableLiveMode {
		return fmt.Errorf("live mode selected but ENABLE_LIVE_MODE is not set")
	}

	adapter, err := issuing.SelectAdapter(cfg, logger)
	if err != nil {
		return err
	}
	service := issuing.NewService(adapter, logger)

	cmd.Printf("provider: %s\n", adapter.Name())

	holder, err := service.CreateCardholder(ctx, models.CreateCardholder{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})
	if err != nil {
		return err
	}
	if err := printJSON(cmd, "cardholder", holder); err != nil {
		return err
	}

	card, err := service.IssueCard(ctx, models.IssueCard{CardholderID: holder.ID})
	if err != nil {
		return err
	}
	if err := printJSON(cmd, "card", card); err != nil {
		return err
	}
	cmd.Printf("expires %s\n", expiry.CardFace(card.ExpMonth, card.ExpYear))

	if err := loadDemoFunds(cmd, cfg, mode, service, card.ID); err != nil {
		return err
	}

	card, err = service.FreezeCard(ctx, card.ID)
	if err != nil {
		return err
	}
	cmd.Printf("card %s is now %s\n", card.ID, card.Status)

	card, err = service.UnfreezeCard(ctx, card.ID)
	if err != nil {
		return err
	}
	cmd.Printf("card %s is now %s\n", card.ID, card.Status)

	card, err = service.GetCard(ctx, card.ID)
	if err != nil {
		return err
	}
	if err := printJSON(cmd, "card before close", card); err != nil {
		return err
	}

	card, err = service.CloseCard(ctx, card.ID)
	if err != nil {
		return err
	}
	cmd.Printf("card %s is now %s\n", card.ID, card.Status)

	return nil
}

// loadDemoFunds loads a small fixed amount in mock mode. In live mode it
// moves real money, so it runs only when top-ups are explicitly enabled.
func loadDemoFunds(cmd *cobra.Command, cfg config.Config, mode config.Mode, service *issuing.Service, cardID string) error {
	ctx := cmd.Context()

	amount := int64(500)
	if mode == config.ModeLive {
		ok, err := cfg.AuthorizeTopup()
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("top-ups are disabled; skipping load")
			return nil
		}
		amount = cfg.TopupAmountCents
	}

	topup, err := service.LoadFunds(ctx, models.LoadFunds{
		CardID:      cardID,
		AmountCents: amount,
	})
	if err != nil {
		return err
	}

	return printJSON(cmd, "top-up", topup)
}

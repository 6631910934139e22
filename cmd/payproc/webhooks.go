package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/payproc-io/payproc/config"
	"github.com/payproc-io/payproc/webhooks"
)

var webhooksCmd = &cobra.Command{
	Use:   "webhooks",
	Short: "Run the webhook receiver until interrupted",
	RunE:  runWebhooks,
}

func runWebhooks(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	app := webhooks.NewApp(newLogger(), cfg)
	if err := app.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	app.Shutdown()

	return nil
}

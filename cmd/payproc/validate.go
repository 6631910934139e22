package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/payproc-io/payproc/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the environment before enabling live mode",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	report := cfg.Check()
	for _, warning := range report.Warnings {
		cmd.Printf("WARN  %s\n", warning)
	}
	for _, issue := range report.Issues {
		cmd.Printf("ISSUE %s\n", issue)
	}

	if !report.OK() {
		return fmt.Errorf("configuration is not ready for live mode (%d issues)", len(report.Issues))
	}

	mode, err := cfg.SelectMode()
	if err != nil {
		return err
	}
	cmd.Printf("mode: %s\n", mode)

	topups, err := cfg.AuthorizeTopup()
	if err != nil {
		return err
	}
	if topups {
		cmd.Printf("top-ups: enabled for %d cents\n", cfg.TopupAmountCents)
	} else {
		cmd.Println("top-ups: disabled")
	}

	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:           "payproc",
	Short:         "Payment processing toolkit with mock and live providers",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(issuingDemoCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(webhooksCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the slog logger shared by all commands. Log lines go
// to stderr so command output on stdout stays machine-readable.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printJSON(cmd *cobra.Command, label string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", label, err)
	}

	cmd.Printf("%s:\n%s\n", label, out)

	return nil
}

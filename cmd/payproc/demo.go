package main

import (
	"github.com/spf13/cobra"

	"github.com/payproc-io/payproc/payments"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Charge and refund a test card against the mock provider",
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	mock := payments.NewMockAdapter()
	processor := payments.NewProcessor(mock, newLogger())

	charge, err := processor.Charge(ctx, payments.ChargeRequest{
		AmountCents: 2500,
		Currency:    payments.DefaultCurrency,
		Source:      "tok_visa",
		Description: "demo charge",
	})
	if err != nil {
		return err
	}
	if err := printJSON(cmd, "charge", charge); err != nil {
		return err
	}

	partial, err := processor.Refund(ctx, payments.RefundRequest{
		ChargeID:    charge.ID,
		AmountCents: 1000,
	})
	if err != nil {
		return err
	}
	if err := printJSON(cmd, "partial refund", partial); err != nil {
		return err
	}

	// A zero amount refunds whatever is left on the charge.
	rest, err := processor.Refund(ctx, payments.RefundRequest{ChargeID: charge.ID})
	if err != nil {
		return err
	}
	if err := printJSON(cmd, "final refund", rest); err != nil {
		return err
	}

	charge, err = mock.GetCharge(charge.ID)
	if err != nil {
		return err
	}

	return printJSON(cmd, "charge after refunds", charge)
}

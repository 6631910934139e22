package issuing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/payproc-io/payproc/issuing"
	"github.com/payproc-io/payproc/issuing/models"
)

func newTestService() *issuing.Service {
	logger := slog.New(slog.NewTextHandler(discard{}, nil))
	return issuing.NewService(issuing.NewMockAdapter(), logger)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestServiceValidatesInput(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	_, err := service.CreateCardholder(ctx, models.CreateCardholder{Name: "   "})
	require.Error(t, err)

	_, err = service.IssueCard(ctx, models.IssueCard{})
	require.Error(t, err)

	_, err = service.GetCard(ctx, "")
	require.Error(t, err)

	_, err = service.LoadFunds(ctx, models.LoadFunds{AmountCents: 100})
	require.Error(t, err)

	_, err = service.LoadFunds(ctx, models.LoadFunds{CardID: "vc_1", AmountCents: 0})
	require.ErrorIs(t, err, issuing.ErrAmountNotPositive)

	_, err = service.FreezeCard(ctx, "")
	require.Error(t, err)
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	holder, err := service.CreateCardholder(ctx, models.CreateCardholder{Name: "Ada Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	card, err := service.IssueCard(ctx, models.IssueCard{CardholderID: holder.ID})
	require.NoError(t, err)
	require.Equal(t, "usd", card.Currency)
	require.Equal(t, models.CardActive, card.Status)

	topup, err := service.LoadFunds(ctx, models.LoadFunds{CardID: card.ID, AmountCents: 1500})
	require.NoError(t, err)
	require.Equal(t, "usd", topup.Currency)

	card, err = service.GetCard(ctx, card.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1500, card.BalanceCents)

	card, err = service.FreezeCard(ctx, card.ID)
	require.NoError(t, err)
	require.Equal(t, models.CardFrozen, card.Status)

	card, err = service.UnfreezeCard(ctx, card.ID)
	require.NoError(t, err)
	require.Equal(t, models.CardActive, card.Status)

	card, err = service.CloseCard(ctx, card.ID)
	require.NoError(t, err)
	require.Equal(t, models.CardClosed, card.Status)
}

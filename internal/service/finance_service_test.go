package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filsox/store-api/internal/domain"
)

func TestCreateEntry_Validation(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceRepo{})
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, 1, FinanceEntryInput{Type: "BOGUS", Amount: 10, Description: "x"})
	requireDomainCode(t, err, "VALIDATION_FAILED")

	_, err = svc.CreateEntry(ctx, 1, FinanceEntryInput{Type: domain.FinanceRevenue, Amount: 0, Description: "x"})
	requireDomainCode(t, err, "VALIDATION_FAILED")

	_, err = svc.CreateEntry(ctx, 1, FinanceEntryInput{Type: domain.FinanceRevenue, Amount: 10, Description: "  "})
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestCreateEntry_DefaultsToPendingManual(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceRepo{})

	entry, err := svc.CreateEntry(context.Background(), 1, FinanceEntryInput{
		Type:        domain.FinanceExpense,
		Amount:      120.50,
		Description: "Aluguel",
	})
	require.NoError(t, err)
	require.Equal(t, domain.FinancePending, entry.Status)
	require.Equal(t, "MANUAL", entry.Origin)
	require.False(t, entry.EntryDate.IsZero())
}

func TestSummary_PaidOnlyMovesCash(t *testing.T) {
	repo := &fakeFinanceRepo{}
	svc := NewFinanceService(repo)
	ctx := context.Background()

	seed := []FinanceEntryInput{
		{Type: domain.FinanceRevenue, Status: domain.FinancePaid, Amount: 500, Description: "OS paga"},
		{Type: domain.FinanceRevenue, Status: domain.FinancePending, Amount: 200, Description: "fiado"},
		{Type: domain.FinanceExpense, Status: domain.FinancePaid, Amount: 150, Description: "peças"},
		{Type: domain.FinanceExpense, Status: domain.FinancePending, Amount: 80, Description: "boleto"},
	}
	for _, input := range seed {
		_, err := svc.CreateEntry(ctx, 1, input)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	require.InDelta(t, 350.0, summary.CashPosition, 0.001)
	require.InDelta(t, 500.0, summary.PaidRevenue, 0.001)
	require.InDelta(t, 200.0, summary.PendingRevenue, 0.001)
	require.InDelta(t, 150.0, summary.PaidExpense, 0.001)
	require.InDelta(t, 80.0, summary.PendingExpense, 0.001)
}

func TestSettleEntry_StatusValidated(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceRepo{})

	err := svc.SettleEntry(context.Background(), 1, 1, "MAYBE")
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

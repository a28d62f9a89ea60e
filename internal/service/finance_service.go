package service

import (
	"context"
	"strings"
	"time"

	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/lifecycle"
	"github.com/filsox/store-api/internal/repository"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// FinanceService manages the bookkeeping ledger.
type FinanceService struct {
	entries repository.FinanceRepository
}

// FinanceEntryInput describes a manual ledger entry.
type FinanceEntryInput struct {
	Type          domain.FinanceEntryType
	Status        domain.FinanceEntryStatus
	Description   string
	Category      string
	Amount        float64
	PaymentMethod string
	EntryDate     time.Time
}

// FinanceSummary is the cash dashboard.
type FinanceSummary struct {
	CashPosition   float64 `json:"cash_position"`
	PaidRevenue    float64 `json:"paid_revenue"`
	PaidExpense    float64 `json:"paid_expense"`
	PendingRevenue float64 `json:"pending_revenue"`
	PendingExpense float64 `json:"pending_expense"`
}

// NewFinanceService constructs the service.
func NewFinanceService(entries repository.FinanceRepository) *FinanceService {
	return &FinanceService{entries: entries}
}

// CreateEntry records a manual revenue or expense.
func (s *FinanceService) CreateEntry(ctx context.Context, storeID int64, input FinanceEntryInput) (*domain.FinanceEntry, error) {
	if input.Type != domain.FinanceRevenue && input.Type != domain.FinanceExpense {
		return nil, apperrors.NewValidationError("type must be REVENUE or EXPENSE", nil)
	}
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	status := input.Status
	if status == "" {
		status = domain.FinancePending
	}
	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	entry := &domain.FinanceEntry{
		StoreID:       storeID,
		Type:          input.Type,
		Status:        status,
		Description:   strings.TrimSpace(input.Description),
		Category:      input.Category,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Origin:        "MANUAL",
		EntryDate:     entryDate,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes a ledger entry.
func (s *FinanceService) DeleteEntry(ctx context.Context, storeID, id int64) error {
	return s.entries.Delete(ctx, storeID, id)
}

// SettleEntry marks a pending entry as paid (or back to pending).
func (s *FinanceService) SettleEntry(ctx context.Context, storeID, id int64, status domain.FinanceEntryStatus) error {
	if status != domain.FinancePaid && status != domain.FinancePending {
		return apperrors.NewValidationError("status must be PAID or PENDING", nil)
	}
	return s.entries.UpdateStatus(ctx, storeID, id, status)
}

// ListEntries returns the store's ledger, newest first.
func (s *FinanceService) ListEntries(ctx context.Context, storeID int64) ([]domain.FinanceEntry, error) {
	return s.entries.ListByStore(ctx, storeID)
}

// Summary derives the cash dashboard from a fresh ledger snapshot.
func (s *FinanceService) Summary(ctx context.Context, storeID int64) (FinanceSummary, error) {
	entries, err := s.entries.ListByStore(ctx, storeID)
	if err != nil {
		return FinanceSummary{}, err
	}

	summary := FinanceSummary{CashPosition: lifecycle.CashPosition(entries)}
	for _, e := range entries {
		switch {
		case e.Type == domain.FinanceRevenue && e.Status == domain.FinancePaid:
			summary.PaidRevenue += e.Amount
		case e.Type == domain.FinanceRevenue:
			summary.PendingRevenue += e.Amount
		case e.Type == domain.FinanceExpense && e.Status == domain.FinancePaid:
			summary.PaidExpense += e.Amount
		case e.Type == domain.FinanceExpense:
			summary.PendingExpense += e.Amount
		}
	}
	return summary, nil
}

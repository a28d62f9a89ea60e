package dto

import (
	"time"

	"github.com/filsox/store-api/internal/domain"
)

// CreateFinanceEntryRequest payload for manual entries.
type CreateFinanceEntryRequest struct {
	Type          domain.FinanceEntryType   `json:"type" validate:"required,oneof=REVENUE EXPENSE"`
	Status        domain.FinanceEntryStatus `json:"status" validate:"omitempty,oneof=PAID PENDING"`
	Description   string                    `json:"description" validate:"required"`
	Category      string                    `json:"category"`
	Amount        float64                   `json:"amount" validate:"required,gt=0"`
	PaymentMethod string                    `json:"payment_method"`
	EntryDate     *time.Time                `json:"entry_date"`
}

// SettleFinanceEntryRequest payload for toggling settlement state.
type SettleFinanceEntryRequest struct {
	Status domain.FinanceEntryStatus `json:"status" validate:"required,oneof=PAID PENDING"`
}

// FinanceEntryResponse representation.
type FinanceEntryResponse struct {
	ID            int64                     `json:"id"`
	Type          domain.FinanceEntryType   `json:"type"`
	Status        domain.FinanceEntryStatus `json:"status"`
	Description   string                    `json:"description"`
	Category      string                    `json:"category,omitempty"`
	Amount        float64                   `json:"amount"`
	PaymentMethod string                    `json:"payment_method,omitempty"`
	Origin        string                    `json:"origin"`
	OriginRef     string                    `json:"origin_ref,omitempty"`
	EntryDate     time.Time                 `json:"entry_date"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// NewFinanceEntryResponse maps a domain entry.
func NewFinanceEntryResponse(e *domain.FinanceEntry) FinanceEntryResponse {
	return FinanceEntryResponse{
		ID:            e.ID,
		Type:          e.Type,
		Status:        e.Status,
		Description:   e.Description,
		Category:      e.Category,
		Amount:        e.Amount,
		PaymentMethod: e.PaymentMethod,
		Origin:        e.Origin,
		OriginRef:     e.OriginRef,
		EntryDate:     e.EntryDate,
		CreatedAt:     e.CreatedAt,
	}
}

// NewFinanceEntryResponses maps a slice of entries.
func NewFinanceEntryResponses(entries []domain.FinanceEntry) []FinanceEntryResponse {
	items := make([]FinanceEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, NewFinanceEntryResponse(&entries[i]))
	}
	return items
}

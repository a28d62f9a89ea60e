package domain

import "time"

// FinanceEntryType splits the ledger into revenue and expense.
type FinanceEntryType string

const (
	FinanceRevenue FinanceEntryType = "REVENUE"
	FinanceExpense FinanceEntryType = "EXPENSE"
)

// FinanceEntryStatus is the settlement state of a ledger entry.
type FinanceEntryStatus string

const (
	FinancePaid    FinanceEntryStatus = "PAID"
	FinancePending FinanceEntryStatus = "PENDING"
)

// FinanceEntry is one revenue or expense record. Entries created on ticket
// completion carry the ticket number in OriginRef.
type FinanceEntry struct {
	ID            int64
	StoreID       int64
	Type          FinanceEntryType
	Status        FinanceEntryStatus
	Description   string
	Category      string
	Amount        float64
	PaymentMethod string
	Origin        string
	OriginRef     string
	EntryDate     time.Time
	CreatedAt     time.Time
}

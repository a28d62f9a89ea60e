package domain

import "time"

// Sale is a point-of-sale transaction.
type Sale struct {
	ID            int64
	StoreID       int64
	CustomerID    *int64
	Total         float64
	PaymentMethod string
	Items         []SaleItem
	CreatedAt     time.Time
}

// SaleItem is one line of a sale. UnitPrice is captured at sale time so later
// price changes do not rewrite history.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice float64
}

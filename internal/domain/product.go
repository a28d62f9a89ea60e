package domain

import "time"

// Product is a stock item held by a store.
type Product struct {
	ID              int64
	StoreID         int64
	Name            string
	Brand           string
	Model           string
	CostPrice       float64
	SalePrice       float64
	Quantity        int
	MinimumQuantity int
	Barcode         string
	Supplier        string
	Location        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AtRisk reports whether the item is at or below its restock threshold.
func (p Product) AtRisk() bool {
	return p.Quantity <= p.MinimumQuantity
}

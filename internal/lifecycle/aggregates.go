package lifecycle

import "github.com/filsox/store-api/internal/domain"

// CashPosition sums settled revenue minus settled expense. Pending entries
// do not move the cash position.
func CashPosition(entries []domain.FinanceEntry) float64 {
	var balance float64
	for _, e := range entries {
		if e.Status != domain.FinancePaid {
			continue
		}
		switch e.Type {
		case domain.FinanceRevenue:
			balance += e.Amount
		case domain.FinanceExpense:
			balance -= e.Amount
		}
	}
	return balance
}

// StockRiskCount counts products at or below their restock threshold.
func StockRiskCount(products []domain.Product) int {
	count := 0
	for _, p := range products {
		if p.AtRisk() {
			count++
		}
	}
	return count
}

// StockValuation totals the stock at cost and at sale price.
func StockValuation(products []domain.Product) (cost, sale float64) {
	for _, p := range products {
		qty := float64(p.Quantity)
		cost += p.CostPrice * qty
		sale += p.SalePrice * qty
	}
	return cost, sale
}

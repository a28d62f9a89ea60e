package lifecycle

import (
	"testing"

	"github.com/filsox/store-api/internal/domain"
)

func TestCashPosition(t *testing.T) {
	entries := []domain.FinanceEntry{
		{Type: domain.FinanceRevenue, Status: domain.FinancePaid, Amount: 500},
		{Type: domain.FinanceRevenue, Status: domain.FinancePending, Amount: 900}, // ignored
		{Type: domain.FinanceExpense, Status: domain.FinancePaid, Amount: 120.50},
		{Type: domain.FinanceExpense, Status: domain.FinancePending, Amount: 60}, // ignored
	}
	if got := CashPosition(entries); got != 379.50 {
		t.Fatalf("expected 379.50, got %v", got)
	}
	if got := CashPosition(nil); got != 0 {
		t.Fatalf("expected 0 for empty ledger, got %v", got)
	}
}

func TestStockRiskCount(t *testing.T) {
	products := []domain.Product{
		{Quantity: 2, MinimumQuantity: 5},  // at risk
		{Quantity: 5, MinimumQuantity: 5},  // boundary: at risk
		{Quantity: 10, MinimumQuantity: 5}, // fine
	}
	if got := StockRiskCount(products); got != 2 {
		t.Fatalf("expected 2 at-risk products, got %d", got)
	}
}

func TestStockValuation(t *testing.T) {
	products := []domain.Product{
		{CostPrice: 10, SalePrice: 25, Quantity: 3},
		{CostPrice: 100, SalePrice: 180, Quantity: 1},
	}
	cost, sale := StockValuation(products)
	if cost != 130 {
		t.Fatalf("expected cost valuation 130, got %v", cost)
	}
	if sale != 255 {
		t.Fatalf("expected sale valuation 255, got %v", sale)
	}
}

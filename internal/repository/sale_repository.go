package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filsox/store-api/internal/domain"
)

// SaleRepository encapsulates point-of-sale persistence.
type SaleRepository interface {
	// Create inserts the sale, its items and the stock decrements in one
	// transaction.
	Create(ctx context.Context, sale *domain.Sale) error
	ListByStore(ctx context.Context, storeID int64) ([]domain.Sale, error)
	ListByCustomer(ctx context.Context, storeID, customerID int64) ([]domain.Sale, error)
}

type saleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository instantiates repository.
func NewSaleRepository(pool *pgxpool.Pool) SaleRepository {
	return &saleRepository{pool: pool}
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const saleQuery = `
        INSERT INTO sales (store_id, customer_id, total, payment_method)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, saleQuery,
		sale.StoreID,
		sale.CustomerID,
		sale.Total,
		sale.PaymentMethod,
	).Scan(&sale.ID, &sale.CreatedAt); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO sale_items (sale_id, product_id, name, quantity, unit_price)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	const stockQuery = `
        UPDATE products SET quantity = quantity - $1, updated_at=NOW()
        WHERE store_id=$2 AND id=$3 AND quantity >= $1`

	for i := range sale.Items {
		item := &sale.Items[i]
		item.SaleID = sale.ID
		if err := tx.QueryRow(ctx, itemQuery,
			item.SaleID, item.ProductID, item.Name, item.Quantity, item.UnitPrice,
		).Scan(&item.ID); err != nil {
			return err
		}
		cmd, err := tx.Exec(ctx, stockQuery, item.Quantity, sale.StoreID, item.ProductID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrInsufficientStock
		}
	}

	return tx.Commit(ctx)
}

func (r *saleRepository) ListByStore(ctx context.Context, storeID int64) ([]domain.Sale, error) {
	return r.list(ctx, `SELECT id, store_id, customer_id, total, payment_method, created_at
        FROM sales WHERE store_id=$1 ORDER BY created_at DESC`, storeID)
}

func (r *saleRepository) ListByCustomer(ctx context.Context, storeID, customerID int64) ([]domain.Sale, error) {
	return r.list(ctx, `SELECT id, store_id, customer_id, total, payment_method, created_at
        FROM sales WHERE store_id=$1 AND customer_id=$2 ORDER BY created_at DESC`, storeID, customerID)
}

func (r *saleRepository) list(ctx context.Context, query string, args ...any) ([]domain.Sale, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Sale
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(
			&sale.ID,
			&sale.StoreID,
			&sale.CustomerID,
			&sale.Total,
			&sale.PaymentMethod,
			&sale.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.listItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *saleRepository) listItems(ctx context.Context, saleID int64) ([]domain.SaleItem, error) {
	const query = `SELECT id, sale_id, product_id, name, quantity, unit_price
        FROM sale_items WHERE sale_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.SaleItem
	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

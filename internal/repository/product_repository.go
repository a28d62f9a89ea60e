package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filsox/store-api/internal/domain"
)

// ProductRepository encapsulates stock persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, storeID, id int64) error
	GetByID(ctx context.Context, storeID, id int64) (*domain.Product, error)
	ListByStore(ctx context.Context, storeID int64) ([]domain.Product, error)
	AdjustQuantity(ctx context.Context, storeID, id int64, delta int) error
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, store_id, name, brand, model, cost_price, sale_price, quantity,
           minimum_quantity, barcode, supplier, location, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (store_id, name, brand, model, cost_price, sale_price, quantity,
            minimum_quantity, barcode, supplier, location)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		product.StoreID,
		product.Name,
		product.Brand,
		product.Model,
		product.CostPrice,
		product.SalePrice,
		product.Quantity,
		product.MinimumQuantity,
		product.Barcode,
		product.Supplier,
		product.Location,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, brand=$2, model=$3, cost_price=$4, sale_price=$5,
            quantity=$6, minimum_quantity=$7, barcode=$8, supplier=$9, location=$10,
            updated_at=NOW()
        WHERE id=$11 AND store_id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Brand,
		product.Model,
		product.CostPrice,
		product.SalePrice,
		product.Quantity,
		product.MinimumQuantity,
		product.Barcode,
		product.Supplier,
		product.Location,
		product.ID,
		product.StoreID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, storeID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE store_id=$1 AND id=$2`, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, storeID, id int64) (*domain.Product, error) {
	var product domain.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id=$1 AND id=$2`
	if err := r.pool.QueryRow(ctx, query, storeID, id).Scan(
		&product.ID,
		&product.StoreID,
		&product.Name,
		&product.Brand,
		&product.Model,
		&product.CostPrice,
		&product.SalePrice,
		&product.Quantity,
		&product.MinimumQuantity,
		&product.Barcode,
		&product.Supplier,
		&product.Location,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListByStore(ctx context.Context, storeID int64) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id=$1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.StoreID,
			&product.Name,
			&product.Brand,
			&product.Model,
			&product.CostPrice,
			&product.SalePrice,
			&product.Quantity,
			&product.MinimumQuantity,
			&product.Barcode,
			&product.Supplier,
			&product.Location,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	return result, rows.Err()
}

// AdjustQuantity applies a stock delta, guarded against going negative.
func (r *productRepository) AdjustQuantity(ctx context.Context, storeID, id int64, delta int) error {
	const query = `
        UPDATE products SET quantity = quantity + $1, updated_at=NOW()
        WHERE store_id=$2 AND id=$3 AND quantity + $1 >= 0`
	cmd, err := r.pool.Exec(ctx, query, delta, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filsox/store-api/internal/domain"
)

// CustomerRepository encapsulates CRM persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, storeID, id int64) error
	GetByID(ctx context.Context, storeID, id int64) (*domain.Customer, error)
	GetByDocument(ctx context.Context, storeID int64, document string) (*domain.Customer, error)
	ListByStore(ctx context.Context, storeID int64) ([]domain.Customer, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository instantiates repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, store_id, name, document, phone, email, city, address, notes, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (store_id, name, document, phone, email, city, address, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		customer.StoreID,
		customer.Name,
		customer.Document,
		customer.Phone,
		customer.Email,
		customer.City,
		customer.Address,
		customer.Notes,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET name=$1, document=$2, phone=$3, email=$4, city=$5, address=$6,
            notes=$7, updated_at=NOW()
        WHERE id=$8 AND store_id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		customer.Name,
		customer.Document,
		customer.Phone,
		customer.Email,
		customer.City,
		customer.Address,
		customer.Notes,
		customer.ID,
		customer.StoreID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, storeID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE store_id=$1 AND id=$2`, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, storeID, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	query := `SELECT ` + customerColumns + ` FROM customers WHERE store_id=$1 AND id=$2`
	if err := r.pool.QueryRow(ctx, query, storeID, id).Scan(
		&customer.ID,
		&customer.StoreID,
		&customer.Name,
		&customer.Document,
		&customer.Phone,
		&customer.Email,
		&customer.City,
		&customer.Address,
		&customer.Notes,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByDocument(ctx context.Context, storeID int64, document string) (*domain.Customer, error) {
	var customer domain.Customer
	query := `SELECT ` + customerColumns + ` FROM customers WHERE store_id=$1 AND document=$2`
	if err := r.pool.QueryRow(ctx, query, storeID, document).Scan(
		&customer.ID,
		&customer.StoreID,
		&customer.Name,
		&customer.Document,
		&customer.Phone,
		&customer.Email,
		&customer.City,
		&customer.Address,
		&customer.Notes,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) ListByStore(ctx context.Context, storeID int64) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE store_id=$1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.StoreID,
			&customer.Name,
			&customer.Document,
			&customer.Phone,
			&customer.Email,
			&customer.City,
			&customer.Address,
			&customer.Notes,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}

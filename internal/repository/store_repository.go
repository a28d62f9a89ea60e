package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filsox/store-api/internal/domain"
)

// StoreRepository encapsulates tenant persistence.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	List(ctx context.Context) ([]domain.Store, error)
}

type storeRepository struct {
	pool *pgxpool.Pool
}

// NewStoreRepository instantiates repository.
func NewStoreRepository(pool *pgxpool.Pool) StoreRepository {
	return &storeRepository{pool: pool}
}

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	const query = `
        INSERT INTO stores (name, address, phone, email, active, active_modules)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		store.Name,
		store.Address,
		store.Phone,
		store.Email,
		store.Active,
		moduleStrings(store.ActiveModules),
	).Scan(&store.ID, &store.CreatedAt, &store.UpdatedAt)
}

func (r *storeRepository) Update(ctx context.Context, store *domain.Store) error {
	const query = `
        UPDATE stores SET name=$1, address=$2, phone=$3, email=$4, active=$5,
            active_modules=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		store.Name,
		store.Address,
		store.Phone,
		store.Email,
		store.Active,
		moduleStrings(store.ActiveModules),
		store.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *storeRepository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	const query = `
        SELECT id, name, address, phone, email, active, active_modules, created_at, updated_at
        FROM stores WHERE id=$1`
	var store domain.Store
	var modules []string
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&store.ID,
		&store.Name,
		&store.Address,
		&store.Phone,
		&store.Email,
		&store.Active,
		&modules,
		&store.CreatedAt,
		&store.UpdatedAt,
	); err != nil {
		return nil, err
	}
	store.ActiveModules = moduleIDs(modules)
	return &store, nil
}

func (r *storeRepository) List(ctx context.Context) ([]domain.Store, error) {
	const query = `
        SELECT id, name, address, phone, email, active, active_modules, created_at, updated_at
        FROM stores ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Store
	for rows.Next() {
		var store domain.Store
		var modules []string
		if err := rows.Scan(
			&store.ID,
			&store.Name,
			&store.Address,
			&store.Phone,
			&store.Email,
			&store.Active,
			&modules,
			&store.CreatedAt,
			&store.UpdatedAt,
		); err != nil {
			return nil, err
		}
		store.ActiveModules = moduleIDs(modules)
		result = append(result, store)
	}
	return result, rows.Err()
}

func moduleStrings(modules []domain.ModuleID) []string {
	out := make([]string, len(modules))
	for i, m := range modules {
		out[i] = string(m)
	}
	return out
}

func moduleIDs(values []string) []domain.ModuleID {
	out := make([]domain.ModuleID, len(values))
	for i, v := range values {
		out[i] = domain.ModuleID(v)
	}
	return out
}

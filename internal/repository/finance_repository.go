package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filsox/store-api/internal/domain"
)

// FinanceRepository encapsulates ledger persistence.
type FinanceRepository interface {
	Create(ctx context.Context, entry *domain.FinanceEntry) error
	Delete(ctx context.Context, storeID, id int64) error
	UpdateStatus(ctx context.Context, storeID, id int64, status domain.FinanceEntryStatus) error
	ListByStore(ctx context.Context, storeID int64) ([]domain.FinanceEntry, error)
}

type financeRepository struct {
	pool *pgxpool.Pool
}

// NewFinanceRepository instantiates repository.
func NewFinanceRepository(pool *pgxpool.Pool) FinanceRepository {
	return &financeRepository{pool: pool}
}

func (r *financeRepository) Create(ctx context.Context, entry *domain.FinanceEntry) error {
	const query = `
        INSERT INTO finance_entries (store_id, type, status, description, category, amount,
            payment_method, origin, origin_ref, entry_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.StoreID,
		entry.Type,
		entry.Status,
		entry.Description,
		entry.Category,
		entry.Amount,
		entry.PaymentMethod,
		entry.Origin,
		entry.OriginRef,
		entry.EntryDate,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *financeRepository) Delete(ctx context.Context, storeID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM finance_entries WHERE store_id=$1 AND id=$2`, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *financeRepository) UpdateStatus(ctx context.Context, storeID, id int64, status domain.FinanceEntryStatus) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE finance_entries SET status=$1 WHERE store_id=$2 AND id=$3`,
		status, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *financeRepository) ListByStore(ctx context.Context, storeID int64) ([]domain.FinanceEntry, error) {
	const query = `
        SELECT id, store_id, type, status, description, category, amount, payment_method,
               origin, origin_ref, entry_date, created_at
        FROM finance_entries WHERE store_id=$1 ORDER BY entry_date DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FinanceEntry
	for rows.Next() {
		var entry domain.FinanceEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.StoreID,
			&entry.Type,
			&entry.Status,
			&entry.Description,
			&entry.Category,
			&entry.Amount,
			&entry.PaymentMethod,
			&entry.Origin,
			&entry.OriginRef,
			&entry.EntryDate,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

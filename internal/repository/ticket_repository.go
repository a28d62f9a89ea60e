package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filsox/store-api/internal/domain"
)

// TicketFilter captures ticket listing parameters.
type TicketFilter struct {
	Statuses         []domain.TicketStatus
	WarrantyStatuses []domain.WarrantyStatus
	Kind             *domain.TicketKind
	SearchTerm       *string
	OpenedFrom       *time.Time
	OpenedTo         *time.Time
	Limit            int
	Offset           int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, storeID int64, number string) error
	GetByID(ctx context.Context, storeID, id int64) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, storeID int64, number string) (*domain.Ticket, error)
	ListByStore(ctx context.Context, storeID int64) ([]domain.Ticket, error)
	ListWithFilter(ctx context.Context, storeID int64, filter TicketFilter) ([]domain.Ticket, error)
	ListOpenAllStores(ctx context.Context) ([]domain.Ticket, error)
	ListByCustomerDocument(ctx context.Context, storeID int64, document string) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, store_id, number, customer_name, customer_document, customer_phone,
           customer_city, kind, equipment, brand, serial, accessories, reported_problem,
           extra_info, solution_notes, technician, status, warranty_status, final_value,
           rma_company, invoice_number, tracking_code, opened_at, completed_at, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (store_id, number, customer_name, customer_document, customer_phone,
            customer_city, kind, equipment, brand, serial, accessories, reported_problem,
            extra_info, solution_notes, technician, status, warranty_status, final_value,
            rma_company, invoice_number, tracking_code, opened_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.StoreID,
		ticket.Number,
		ticket.CustomerName,
		ticket.CustomerDocument,
		ticket.CustomerPhone,
		ticket.CustomerCity,
		ticket.Kind,
		ticket.Equipment,
		ticket.Brand,
		ticket.Serial,
		ticket.Accessories,
		ticket.ReportedProblem,
		ticket.ExtraInfo,
		ticket.SolutionNotes,
		ticket.Technician,
		ticket.Status,
		ticket.WarrantyStatus,
		ticket.FinalValue,
		ticket.RMACompany,
		ticket.InvoiceNumber,
		ticket.TrackingCode,
		ticket.OpenedAt,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET customer_name=$1, customer_document=$2, customer_phone=$3,
            customer_city=$4, kind=$5, equipment=$6, brand=$7, serial=$8, accessories=$9,
            reported_problem=$10, extra_info=$11, solution_notes=$12, technician=$13,
            status=$14, warranty_status=$15, final_value=$16, rma_company=$17,
            invoice_number=$18, tracking_code=$19, completed_at=$20, updated_at=NOW()
        WHERE id=$21 AND store_id=$22`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.CustomerName,
		ticket.CustomerDocument,
		ticket.CustomerPhone,
		ticket.CustomerCity,
		ticket.Kind,
		ticket.Equipment,
		ticket.Brand,
		ticket.Serial,
		ticket.Accessories,
		ticket.ReportedProblem,
		ticket.ExtraInfo,
		ticket.SolutionNotes,
		ticket.Technician,
		ticket.Status,
		ticket.WarrantyStatus,
		ticket.FinalValue,
		ticket.RMACompany,
		ticket.InvoiceNumber,
		ticket.TrackingCode,
		ticket.CompletedAt,
		ticket.ID,
		ticket.StoreID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, storeID int64, number string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE store_id=$1 AND number=$2`, storeID, number)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, storeID, id int64) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE store_id=$1 AND id=$2`, ticketColumns)
	return r.fetchSingle(ctx, query, storeID, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, storeID int64, number string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE store_id=$1 AND number=$2`, ticketColumns)
	return r.fetchSingle(ctx, query, storeID, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tickets, err := scanTickets(rows)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &tickets[0], nil
}

func (r *ticketRepository) ListByStore(ctx context.Context, storeID int64) ([]domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE store_id=$1 ORDER BY opened_at DESC`, ticketColumns)
	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, storeID int64, filter TicketFilter) ([]domain.Ticket, error) {
	base := fmt.Sprintf(`SELECT %s FROM tickets`, ticketColumns)
	clauses := []string{"store_id=$1"}
	args := []any{storeID}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.WarrantyStatuses) > 0 {
		placeholders := make([]string, len(filter.WarrantyStatuses))
		for i, ws := range filter.WarrantyStatuses {
			args = append(args, ws)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("warranty_status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		clauses = append(clauses, fmt.Sprintf("kind=$%d", len(args)))
	}
	if filter.OpenedFrom != nil {
		args = append(args, *filter.OpenedFrom)
		clauses = append(clauses, fmt.Sprintf("opened_at >= $%d", len(args)))
	}
	if filter.OpenedTo != nil {
		args = append(args, *filter.OpenedTo)
		clauses = append(clauses, fmt.Sprintf("opened_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(customer_name) LIKE %s OR LOWER(equipment) LIKE %s OR number LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY opened_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListOpenAllStores feeds the due-date sweep; completed tickets are skipped
// at the SQL level since they can never be temporally urgent.
func (r *ticketRepository) ListOpenAllStores(ctx context.Context) ([]domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE status <> $1 ORDER BY store_id, opened_at`, ticketColumns)
	rows, err := r.pool.Query(ctx, query, domain.TicketStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListByCustomerDocument(ctx context.Context, storeID int64, document string) ([]domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE store_id=$1 AND customer_document=$2 ORDER BY opened_at DESC`, ticketColumns)
	rows, err := r.pool.Query(ctx, query, storeID, document)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.StoreID,
			&ticket.Number,
			&ticket.CustomerName,
			&ticket.CustomerDocument,
			&ticket.CustomerPhone,
			&ticket.CustomerCity,
			&ticket.Kind,
			&ticket.Equipment,
			&ticket.Brand,
			&ticket.Serial,
			&ticket.Accessories,
			&ticket.ReportedProblem,
			&ticket.ExtraInfo,
			&ticket.SolutionNotes,
			&ticket.Technician,
			&ticket.Status,
			&ticket.WarrantyStatus,
			&ticket.FinalValue,
			&ticket.RMACompany,
			&ticket.InvoiceNumber,
			&ticket.TrackingCode,
			&ticket.OpenedAt,
			&ticket.CompletedAt,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

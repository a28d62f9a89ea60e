package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/events"
	"github.com/filsox/store-api/internal/lifecycle"
	"github.com/filsox/store-api/internal/repository"
)

type fakeTicketRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{nextID: 1, byID: map[int64]domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = r.nextID
	r.nextID++
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.byID[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[ticket.ID]
	if !ok || stored.StoreID != ticket.StoreID {
		return pgx.ErrNoRows
	}
	r.byID[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, storeID int64, number string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.byID {
		if t.StoreID == storeID && t.Number == number {
			delete(r.byID, id)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeTicketRepo) GetByID(_ context.Context, storeID, id int64) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || t.StoreID != storeID {
		return nil, pgx.ErrNoRows
	}
	copied := t
	return &copied, nil
}

func (r *fakeTicketRepo) GetByNumber(_ context.Context, storeID int64, number string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byID {
		if t.StoreID == storeID && t.Number == number {
			copied := t
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListByStore(_ context.Context, storeID int64) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, t := range r.byID {
		if t.StoreID == storeID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, storeID int64, _ repository.TicketFilter) ([]domain.Ticket, error) {
	return r.ListByStore(ctx, storeID)
}

func (r *fakeTicketRepo) ListOpenAllStores(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, t := range r.byID {
		if !t.Completed() {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ListByCustomerDocument(_ context.Context, storeID int64, document string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, t := range r.byID {
		if t.StoreID == storeID && t.CustomerDocument == document {
			result = append(result, t)
		}
	}
	return result, nil
}

type fakeFinanceRepo struct {
	mu      sync.Mutex
	entries []domain.FinanceEntry
}

func (r *fakeFinanceRepo) Create(_ context.Context, entry *domain.FinanceEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeFinanceRepo) Delete(context.Context, int64, int64) error { return nil }

func (r *fakeFinanceRepo) UpdateStatus(context.Context, int64, int64, domain.FinanceEntryStatus) error {
	return nil
}

func (r *fakeFinanceRepo) ListByStore(_ context.Context, storeID int64) ([]domain.FinanceEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.FinanceEntry
	for _, e := range r.entries {
		if e.StoreID == storeID {
			result = append(result, e)
		}
	}
	return result, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		result = append(result, e.Type)
	}
	return result
}

func newTestTicketService() (*TicketService, *fakeTicketRepo, *fakeFinanceRepo, *recordingDispatcher) {
	tickets := newFakeTicketRepo()
	finance := &fakeFinanceRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		FinanceRepo: finance,
		Dispatcher:  dispatcher,
	})
	return svc, tickets, finance, dispatcher
}

func TestCreateTicket_Defaults(t *testing.T) {
	svc, _, _, dispatcher := newTestTicketService()

	ticket, err := svc.CreateTicket(context.Background(), 1, TicketCreateInput{
		CustomerName:    "  Maria Souza ",
		Equipment:       "Notebook",
		ReportedProblem: "does not boot",
	})
	require.NoError(t, err)

	require.NotEmpty(t, ticket.Number)
	require.Equal(t, domain.TicketKindGeneral, ticket.Kind)
	require.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.Equal(t, domain.WarrantyNone, ticket.WarrantyStatus)
	require.Equal(t, "Maria Souza", ticket.CustomerName)
	require.False(t, ticket.OpenedAt.IsZero())
	require.Equal(t, []events.EventType{events.EventTicketCreated}, dispatcher.types())
}

func TestCreateTicket_KeepsProvidedNumber(t *testing.T) {
	svc, _, _, _ := newTestTicketService()

	ticket, err := svc.CreateTicket(context.Background(), 1, TicketCreateInput{
		Number:       "OS-0042",
		CustomerName: "João",
		Equipment:    "Phone",
		Kind:         domain.TicketKindPhone,
	})
	require.NoError(t, err)
	require.Equal(t, "OS-0042", ticket.Number)
	require.Equal(t, domain.TicketKindPhone, ticket.Kind)
}

func TestComplete_PostsPaidRevenueEntry(t *testing.T) {
	svc, _, finance, dispatcher := newTestTicketService()
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, 1, TicketCreateInput{
		CustomerName: "Maria", Equipment: "Notebook", ReportedProblem: "screen",
	})
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, 1, ticket.ID, "replaced panel", "R$ 1.250,00", "PIX")
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	entries, err := finance.ListByStore(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	require.Equal(t, domain.FinanceRevenue, entry.Type)
	require.Equal(t, domain.FinancePaid, entry.Status)
	require.Equal(t, 1250.00, entry.Amount)
	require.Equal(t, "OS", entry.Origin)
	require.Equal(t, ticket.Number, entry.OriginRef)
	require.Equal(t, "PIX", entry.PaymentMethod)

	require.Equal(t, []events.EventType{
		events.EventTicketCreated,
		events.EventLedgerEntryPosted,
		events.EventTicketCompleted,
	}, dispatcher.types())
}

func TestComplete_ZeroValueSkipsLedger(t *testing.T) {
	svc, _, finance, dispatcher := newTestTicketService()
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, 1, TicketCreateInput{
		CustomerName: "Maria", Equipment: "Notebook", ReportedProblem: "loose cable",
	})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, 1, ticket.ID, "reseated cable, no charge", "", "")
	require.NoError(t, err)

	entries, err := finance.ListByStore(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, entries)
	require.NotContains(t, dispatcher.types(), events.EventLedgerEntryPosted)
}

func TestComplete_TwiceConflicts(t *testing.T) {
	svc, _, finance, _ := newTestTicketService()
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, 1, TicketCreateInput{
		CustomerName: "Maria", Equipment: "Notebook", ReportedProblem: "battery",
	})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, 1, ticket.ID, "new battery", "300,00", "")
	require.NoError(t, err)

	_, err = svc.Complete(ctx, 1, ticket.ID, "again", "300,00", "")
	var conflict *lifecycle.ConflictError
	require.ErrorAs(t, err, &conflict)

	entries, err := finance.ListByStore(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestComplete_WrongStoreNotFound(t *testing.T) {
	svc, _, _, _ := newTestTicketService()
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, 1, TicketCreateInput{
		CustomerName: "Maria", Equipment: "Notebook", ReportedProblem: "hdd",
	})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, 2, ticket.ID, "swap", "100,00", "")
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestWarrantyFlowThroughService(t *testing.T) {
	svc, _, _, dispatcher := newTestTicketService()
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, 1, TicketCreateInput{
		CustomerName: "Maria", Equipment: "Console", ReportedProblem: "no video",
	})
	require.NoError(t, err)

	sent, err := svc.SendToWarranty(ctx, 1, ticket.ID, "Vendor SA", "BR123", "NF-9")
	require.NoError(t, err)
	require.Equal(t, domain.WarrantyInWarranty, sent.WarrantyStatus)

	arrived, err := svc.MarkArrivedFromWarranty(ctx, 1, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WarrantyAwaitingPickup, arrived.WarrantyStatus)

	delivered, err := svc.Deliver(ctx, 1, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusCompleted, delivered.Status)
	require.Equal(t, domain.WarrantyNone, delivered.WarrantyStatus)

	require.Equal(t, []events.EventType{
		events.EventTicketCreated,
		events.EventTicketSentToWarranty,
		events.EventTicketArrived,
		events.EventTicketDelivered,
	}, dispatcher.types())
}

func TestUpdateTicket_PartialApply(t *testing.T) {
	svc, _, _, _ := newTestTicketService()
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, 1, TicketCreateInput{
		CustomerName: "Maria", Equipment: "Notebook", ReportedProblem: "slow",
	})
	require.NoError(t, err)

	tech := "Carlos"
	updated, err := svc.UpdateTicket(ctx, 1, ticket.ID, TicketUpdateInput{Technician: &tech})
	require.NoError(t, err)
	require.Equal(t, "Carlos", updated.Technician)
	require.Equal(t, "Maria", updated.CustomerName)
	require.Equal(t, "slow", updated.ReportedProblem)
}

func TestQueues_GroupsByUrgency(t *testing.T) {
	svc, tickets, _, _ := newTestTicketService()
	ctx := context.Background()

	fresh := domain.Ticket{
		StoreID: 1, Number: "OS-1", Status: domain.TicketStatusOpen,
		WarrantyStatus: domain.WarrantyNone, OpenedAt: time.Now().Add(-48 * time.Hour),
	}
	stale := domain.Ticket{
		StoreID: 1, Number: "OS-2", Status: domain.TicketStatusOpen,
		WarrantyStatus: domain.WarrantyNone, OpenedAt: time.Now().Add(-31 * 24 * time.Hour),
	}
	require.NoError(t, tickets.Create(ctx, &fresh))
	require.NoError(t, tickets.Create(ctx, &stale))

	queues, err := svc.Queues(ctx, 1)
	require.NoError(t, err)
	require.Len(t, queues.InProgress, 2)
	require.Len(t, queues.Overdue, 1)
	require.Equal(t, "OS-2", queues.Overdue[0].Number)
}

func TestQueueCounts_NoCacheStillComputes(t *testing.T) {
	svc, tickets, _, _ := newTestTicketService()
	ctx := context.Background()

	open := domain.Ticket{
		StoreID: 1, Number: "OS-1", Status: domain.TicketStatusOpen,
		WarrantyStatus: domain.WarrantyNone, OpenedAt: time.Now(),
	}
	require.NoError(t, tickets.Create(ctx, &open))

	counts, err := svc.QueueCounts(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, counts.InProgress)
	require.Equal(t, 0, counts.Completed)
}

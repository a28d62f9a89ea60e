package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/filsox/store-api/internal/config"
	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/events"
	"github.com/filsox/store-api/internal/repository"
)

type staticTicketRepo struct {
	open []domain.Ticket
}

func (r *staticTicketRepo) Create(context.Context, *domain.Ticket) error             { return nil }
func (r *staticTicketRepo) Update(context.Context, *domain.Ticket) error             { return nil }
func (r *staticTicketRepo) Delete(context.Context, int64, string) error              { return nil }
func (r *staticTicketRepo) GetByID(context.Context, int64, int64) (*domain.Ticket, error) {
	return nil, nil
}
func (r *staticTicketRepo) GetByNumber(context.Context, int64, string) (*domain.Ticket, error) {
	return nil, nil
}
func (r *staticTicketRepo) ListByStore(context.Context, int64) ([]domain.Ticket, error) {
	return nil, nil
}
func (r *staticTicketRepo) ListWithFilter(context.Context, int64, repository.TicketFilter) ([]domain.Ticket, error) {
	return nil, nil
}
func (r *staticTicketRepo) ListOpenAllStores(context.Context) ([]domain.Ticket, error) {
	return r.open, nil
}
func (r *staticTicketRepo) ListByCustomerDocument(context.Context, int64, string) ([]domain.Ticket, error) {
	return nil, nil
}

type capturingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func openTicket(store int64, number string, daysAgo int) domain.Ticket {
	return domain.Ticket{
		StoreID:        store,
		Number:         number,
		Status:         domain.TicketStatusOpen,
		WarrantyStatus: domain.WarrantyNone,
		OpenedAt:       time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}

func TestSweep_EmitsOverdueEventsPerStore(t *testing.T) {
	repo := &staticTicketRepo{open: []domain.Ticket{
		openTicket(1, "OS-1", 2),
		openTicket(1, "OS-2", 35),
		openTicket(2, "OS-3", 40),
		openTicket(2, "OS-4", 28),
	}}
	dispatcher := &capturingDispatcher{}
	sweeper := NewDueDateSweeper(config.SweepConfig{Enabled: true}, repo, dispatcher, zap.NewNop())

	sweeper.Sweep(context.Background())

	require.Len(t, dispatcher.events, 2)
	byNumber := map[string]events.Event{}
	for _, event := range dispatcher.events {
		require.Equal(t, events.EventTicketOverdue, event.Type)
		byNumber[event.TicketNumber] = event
	}

	overdue1, ok := byNumber["OS-2"]
	require.True(t, ok)
	require.Equal(t, int64(1), overdue1.StoreID)
	payload1, ok := overdue1.Payload.(events.TicketOverduePayload)
	require.True(t, ok)
	require.Equal(t, 35, payload1.DaysElapsed)

	overdue2, ok := byNumber["OS-3"]
	require.True(t, ok)
	require.Equal(t, int64(2), overdue2.StoreID)
}

func TestSweep_NoOpenTickets(t *testing.T) {
	dispatcher := &capturingDispatcher{}
	sweeper := NewDueDateSweeper(config.SweepConfig{Enabled: true}, &staticTicketRepo{}, dispatcher, zap.NewNop())

	sweeper.Sweep(context.Background())
	require.Empty(t, dispatcher.events)
}

func TestStart_DisabledIsNoOp(t *testing.T) {
	sweeper := NewDueDateSweeper(config.SweepConfig{Enabled: false}, &staticTicketRepo{}, &capturingDispatcher{}, zap.NewNop())
	require.NoError(t, sweeper.Start())
	sweeper.Stop()
}

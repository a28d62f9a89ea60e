package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/filsox/store-api/internal/config"
	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/events"
	"github.com/filsox/store-api/internal/lifecycle"
	"github.com/filsox/store-api/internal/repository"
)

// DueDateSweeper walks every open ticket once a day and emits overdue
// events for tickets past the service deadline. Notification and reporting
// hang off the events; the sweep itself never mutates tickets.
type DueDateSweeper struct {
	cfg        config.SweepConfig
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	scheduler  gocron.Scheduler
}

// NewDueDateSweeper constructs the sweeper.
func NewDueDateSweeper(cfg config.SweepConfig, tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger) *DueDateSweeper {
	return &DueDateSweeper{cfg: cfg, tickets: tickets, dispatcher: dispatcher, logger: logger}
}

// Start schedules the daily sweep. No-op when disabled by config.
func (s *DueDateSweeper) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("due-date sweep disabled")
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(s.cfg.Hour), uint(s.cfg.Minute), 0),
		)),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			s.Sweep(ctx)
		}),
	)
	if err != nil {
		return fmt.Errorf("schedule sweep job: %w", err)
	}

	scheduler.Start()
	s.scheduler = scheduler
	s.logger.Info("due-date sweep scheduled",
		zap.Int("hour", s.cfg.Hour),
		zap.Int("minute", s.cfg.Minute),
	)
	return nil
}

// Stop shuts the scheduler down.
func (s *DueDateSweeper) Stop() {
	if s.scheduler != nil {
		_ = s.scheduler.Shutdown()
	}
}

// Sweep runs one pass over all stores' open tickets.
func (s *DueDateSweeper) Sweep(ctx context.Context) {
	tickets, err := s.tickets.ListOpenAllStores(ctx)
	if err != nil {
		s.logger.Error("due-date sweep failed to list tickets", zap.Error(err))
		return
	}

	now := time.Now()
	byStore := make(map[int64][]domain.Ticket)
	for _, ticket := range tickets {
		byStore[ticket.StoreID] = append(byStore[ticket.StoreID], ticket)
	}

	var overdueTotal int
	for storeID, storeTickets := range byStore {
		queues := lifecycle.Classify(storeTickets, now)
		for _, ticket := range queues.Overdue {
			overdueTotal++
			_ = s.dispatcher.Publish(ctx, events.Event{
				ID:           uuid.NewString(),
				Type:         events.EventTicketOverdue,
				StoreID:      storeID,
				TicketNumber: ticket.Number,
				Timestamp:    now,
				Payload: events.TicketOverduePayload{
					DaysElapsed: lifecycle.DaysElapsed(ticket.OpenedAt, now),
				},
			})
		}
	}

	s.logger.Info("due-date sweep completed",
		zap.Int("open_tickets", len(tickets)),
		zap.Int("overdue", overdueTotal),
	)
}

package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/events"
	"github.com/filsox/store-api/internal/lifecycle"
	"github.com/filsox/store-api/internal/persistence"
	"github.com/filsox/store-api/internal/repository"
)

const queueCacheTTL = 30 * time.Second

// TicketService coordinates service-order workflows around the lifecycle
// engine. The engine computes next states; this service persists them,
// posts the finance side effects and publishes events.
type TicketService struct {
	tickets    repository.TicketRepository
	finance    repository.FinanceRepository
	dispatcher events.Dispatcher
	cache      *persistence.Redis
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	FinanceRepo repository.FinanceRepository
	Dispatcher  events.Dispatcher
	Cache       *persistence.Redis
	Logger      *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Number           string
	CustomerName     string
	CustomerDocument string
	CustomerPhone    string
	CustomerCity     string
	Kind             domain.TicketKind
	Equipment        string
	Brand            string
	Serial           string
	Accessories      string
	ReportedProblem  string
	ExtraInfo        string
	Technician       string
}

// TicketUpdateInput carries operator edits to intake fields.
type TicketUpdateInput struct {
	CustomerName     *string
	CustomerDocument *string
	CustomerPhone    *string
	CustomerCity     *string
	Equipment        *string
	Brand            *string
	Serial           *string
	Accessories      *string
	ReportedProblem  *string
	ExtraInfo        *string
	SolutionNotes    *string
	FinalValue       *string
	Technician       *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		finance:    deps.FinanceRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		logger:     logger,
	}
}

// CreateTicket opens a new service order for a store.
func (s *TicketService) CreateTicket(ctx context.Context, storeID int64, input TicketCreateInput) (*domain.Ticket, error) {
	number := strings.TrimSpace(input.Number)
	if number == "" {
		number = generateTicketNumber()
	}
	kind := input.Kind
	if kind == "" {
		kind = domain.TicketKindGeneral
	}

	ticket := &domain.Ticket{
		StoreID:          storeID,
		Number:           number,
		CustomerName:     strings.TrimSpace(input.CustomerName),
		CustomerDocument: strings.TrimSpace(input.CustomerDocument),
		CustomerPhone:    strings.TrimSpace(input.CustomerPhone),
		CustomerCity:     strings.TrimSpace(input.CustomerCity),
		Kind:             kind,
		Equipment:        strings.TrimSpace(input.Equipment),
		Brand:            strings.TrimSpace(input.Brand),
		Serial:           strings.TrimSpace(input.Serial),
		Accessories:      input.Accessories,
		ReportedProblem:  strings.TrimSpace(input.ReportedProblem),
		ExtraInfo:        input.ExtraInfo,
		Technician:       strings.TrimSpace(input.Technician),
		Status:           domain.TicketStatusOpen,
		WarrantyStatus:   domain.WarrantyNone,
		OpenedAt:         time.Now(),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.invalidateQueueCache(ctx, storeID)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketCreated,
		StoreID:      storeID,
		TicketNumber: ticket.Number,
		Payload: events.TicketCreatedPayload{
			Kind:         ticket.Kind,
			Equipment:    ticket.Equipment,
			CustomerName: ticket.CustomerName,
		},
	})
	return ticket, nil
}

// GetTicket fetches a ticket by id within the store.
func (s *TicketService) GetTicket(ctx context.Context, storeID, id int64) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, storeID, id)
}

// GetTicketByNumber fetches a ticket by its human-facing number.
func (s *TicketService) GetTicketByNumber(ctx context.Context, storeID int64, number string) (*domain.Ticket, error) {
	return s.tickets.GetByNumber(ctx, storeID, number)
}

// ListTickets returns filtered tickets for a store.
func (s *TicketService) ListTickets(ctx context.Context, storeID int64, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, storeID, filter)
}

// UpdateTicket applies field-by-field intake edits. Lifecycle fields are not
// reachable from here; those go through the transition methods.
func (s *TicketService) UpdateTicket(ctx context.Context, storeID, id int64, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	applyString(&ticket.CustomerName, input.CustomerName)
	applyString(&ticket.CustomerDocument, input.CustomerDocument)
	applyString(&ticket.CustomerPhone, input.CustomerPhone)
	applyString(&ticket.CustomerCity, input.CustomerCity)
	applyString(&ticket.Equipment, input.Equipment)
	applyString(&ticket.Brand, input.Brand)
	applyString(&ticket.Serial, input.Serial)
	applyString(&ticket.Accessories, input.Accessories)
	applyString(&ticket.ReportedProblem, input.ReportedProblem)
	applyString(&ticket.ExtraInfo, input.ExtraInfo)
	applyString(&ticket.SolutionNotes, input.SolutionNotes)
	applyString(&ticket.FinalValue, input.FinalValue)
	applyString(&ticket.Technician, input.Technician)

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// DeleteTicket removes a ticket by number.
func (s *TicketService) DeleteTicket(ctx context.Context, storeID int64, number string) error {
	if err := s.tickets.Delete(ctx, storeID, number); err != nil {
		return err
	}
	s.invalidateQueueCache(ctx, storeID)
	return nil
}

// Queues recomputes the work queues from a fresh ticket snapshot.
func (s *TicketService) Queues(ctx context.Context, storeID int64) (lifecycle.QueueSet, error) {
	tickets, err := s.tickets.ListByStore(ctx, storeID)
	if err != nil {
		return lifecycle.QueueSet{}, err
	}
	for _, t := range tickets {
		if t.OpenedAt.IsZero() {
			s.logger.Warn("ticket has no open date, treating as day zero",
				zap.String("number", t.Number), zap.Int64("store_id", storeID))
		}
	}
	return lifecycle.Classify(tickets, time.Now()), nil
}

// QueueCounts returns the dashboard counters, served from cache when fresh.
func (s *TicketService) QueueCounts(ctx context.Context, storeID int64) (lifecycle.Counts, error) {
	if counts, ok := s.cachedCounts(ctx, storeID); ok {
		return counts, nil
	}
	qs, err := s.Queues(ctx, storeID)
	if err != nil {
		return lifecycle.Counts{}, err
	}
	counts := qs.Counts()
	s.storeCounts(ctx, storeID, counts)
	return counts, nil
}

// Complete closes the ticket and posts the revenue entry when one is owed.
func (s *TicketService) Complete(ctx context.Context, storeID, id int64, solutionNotes, finalValue, paymentMethod string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	updated, ledgerReq, err := lifecycle.Complete(*ticket, solutionNotes, finalValue, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, &updated); err != nil {
		return nil, err
	}

	posted := false
	if ledgerReq != nil && s.finance != nil {
		entry := &domain.FinanceEntry{
			StoreID:       storeID,
			Type:          domain.FinanceRevenue,
			Status:        domain.FinancePaid,
			Description:   "Service order #" + ledgerReq.TicketNumber + " - " + ledgerReq.CustomerName,
			Category:      "Services",
			Amount:        ledgerReq.Amount,
			PaymentMethod: paymentMethod,
			Origin:        "OS",
			OriginRef:     ledgerReq.TicketNumber,
			EntryDate:     time.Now(),
		}
		if err := s.finance.Create(ctx, entry); err != nil {
			return nil, err
		}
		posted = true
		s.publishEvent(ctx, events.Event{
			Type:         events.EventLedgerEntryPosted,
			StoreID:      storeID,
			TicketNumber: ledgerReq.TicketNumber,
			Payload: events.LedgerEntryPostedPayload{
				EntryID: entry.ID,
				Amount:  entry.Amount,
				Origin:  entry.Origin,
			},
		})
	}

	s.invalidateQueueCache(ctx, storeID)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketCompleted,
		StoreID:      storeID,
		TicketNumber: updated.Number,
		Payload: events.TicketCompletedPayload{
			SolutionNotes: solutionNotes,
			Amount:        lifecycle.ParseCurrency(finalValue),
			LedgerPosted:  posted,
		},
	})
	return &updated, nil
}

// SendToWarranty dispatches the unit to its RMA vendor.
func (s *TicketService) SendToWarranty(ctx context.Context, storeID, id int64, rmaCompany, trackingCode, invoiceNumber string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	updated, err := lifecycle.SendToWarranty(*ticket, rmaCompany, trackingCode, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.invalidateQueueCache(ctx, storeID)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketSentToWarranty,
		StoreID:      storeID,
		TicketNumber: updated.Number,
		Payload: events.TicketWarrantyPayload{
			WarrantyStatus: updated.WarrantyStatus,
			RMACompany:     updated.RMACompany,
			TrackingCode:   updated.TrackingCode,
		},
	})
	return &updated, nil
}

// MarkArrivedFromWarranty moves the ticket into the pickup queue.
func (s *TicketService) MarkArrivedFromWarranty(ctx context.Context, storeID, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	updated, err := lifecycle.MarkArrivedFromWarranty(*ticket)
	if err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.invalidateQueueCache(ctx, storeID)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketArrived,
		StoreID:      storeID,
		TicketNumber: updated.Number,
		Payload: events.TicketWarrantyPayload{
			WarrantyStatus: updated.WarrantyStatus,
			RMACompany:     updated.RMACompany,
		},
	})
	return &updated, nil
}

// Deliver hands the unit to the customer and closes the ticket. No ledger
// entry: pickup-path completions never bill again.
func (s *TicketService) Deliver(ctx context.Context, storeID, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	updated, err := lifecycle.DeliverAfterPickupReady(*ticket, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.invalidateQueueCache(ctx, storeID)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketDelivered,
		StoreID:      storeID,
		TicketNumber: updated.Number,
		Payload: events.TicketWarrantyPayload{
			WarrantyStatus: updated.WarrantyStatus,
		},
	})
	return &updated, nil
}

func (s *TicketService) cachedCounts(ctx context.Context, storeID int64) (lifecycle.Counts, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return lifecycle.Counts{}, false
	}
	raw, err := s.cache.Client.Get(ctx, queueCacheKey(storeID)).Bytes()
	if err != nil {
		return lifecycle.Counts{}, false
	}
	var counts lifecycle.Counts
	if err := json.Unmarshal(raw, &counts); err != nil {
		return lifecycle.Counts{}, false
	}
	return counts, true
}

func (s *TicketService) storeCounts(ctx context.Context, storeID int64, counts lifecycle.Counts) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	_ = s.cache.Client.Set(ctx, queueCacheKey(storeID), raw, queueCacheTTL).Err()
}

func (s *TicketService) invalidateQueueCache(ctx context.Context, storeID int64) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	_ = s.cache.Client.Del(ctx, queueCacheKey(storeID)).Err()
}

func queueCacheKey(storeID int64) string {
	return "queues:" + strconv.FormatInt(storeID, 10)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateTicketNumber() string {
	return "OS-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

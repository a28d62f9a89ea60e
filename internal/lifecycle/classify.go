package lifecycle

import (
	"time"

	"github.com/filsox/store-api/internal/domain"
)

// QueueSet partitions a ticket collection into the dashboard work queues.
// Membership overlaps: a ticket can be in progress and near-due at the same
// time. Only COMPLETED excludes the temporal queues.
type QueueSet struct {
	InProgress     []domain.Ticket
	NearDue        []domain.Ticket
	Overdue        []domain.Ticket
	UnderWarranty  []domain.Ticket
	AwaitingPickup []domain.Ticket
	Completed      []domain.Ticket
}

// Counts summarizes queue sizes for dashboard cards.
type Counts struct {
	InProgress     int `json:"in_progress"`
	NearDue        int `json:"near_due"`
	Overdue        int `json:"overdue"`
	UnderWarranty  int `json:"under_warranty"`
	AwaitingPickup int `json:"awaiting_pickup"`
	Completed      int `json:"completed"`
}

// Classify recomputes queue membership from scratch in a single pass.
// Callers fetch a fresh snapshot per screen load; nothing is cached or
// updated incrementally.
func Classify(tickets []domain.Ticket, now time.Time) QueueSet {
	var qs QueueSet
	for _, t := range tickets {
		if t.Completed() {
			qs.Completed = append(qs.Completed, t)
			continue
		}
		if !PickupReady(t) {
			qs.InProgress = append(qs.InProgress, t)
		}
		if NearDue(t, now) {
			qs.NearDue = append(qs.NearDue, t)
		}
		if Overdue(t, now) {
			qs.Overdue = append(qs.Overdue, t)
		}
		if UnderWarranty(t) {
			qs.UnderWarranty = append(qs.UnderWarranty, t)
		}
		if PickupReady(t) {
			qs.AwaitingPickup = append(qs.AwaitingPickup, t)
		}
	}
	return qs
}

// Counts returns the per-queue sizes.
func (qs QueueSet) Counts() Counts {
	return Counts{
		InProgress:     len(qs.InProgress),
		NearDue:        len(qs.NearDue),
		Overdue:        len(qs.Overdue),
		UnderWarranty:  len(qs.UnderWarranty),
		AwaitingPickup: len(qs.AwaitingPickup),
		Completed:      len(qs.Completed),
	}
}

package domain

import "time"

// VisitEvent is an outbox record written in the same transaction as every
// visit status mutation. A background worker drains unprocessed events and
// feeds them to the lead synchronizer. Delivery is at-least-once; consumers
// must be idempotent with respect to (VisitID, AfterStatus).
type VisitEvent struct {
	ID           int64
	VisitID      string
	BeforeStatus VisitStatus
	AfterStatus  VisitStatus
	CreatedAt    time.Time
	ProcessedAt  *time.Time
}

// IsCancellation returns true if the event is a transition into cancelled
func (e *VisitEvent) IsCancellation() bool {
	return e.BeforeStatus != VisitCancelled && e.AfterStatus == VisitCancelled
}

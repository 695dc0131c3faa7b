package domain

import "time"

// VisitStatus represents the status of a school visit
type VisitStatus string

const (
	VisitScheduled VisitStatus = "scheduled"
	VisitConfirmed VisitStatus = "confirmed"
	VisitCompleted VisitStatus = "completed"
	VisitCancelled VisitStatus = "cancelled"
)

// Visit represents one family's reservation against a single availability slot
type Visit struct {
	ID                   string
	ParentName           string
	ParentEmail          string
	ParentPhone          *string
	ChildName            *string
	ChildAge             *int
	ChildGradeOfInterest *string
	UnitID               string
	SlotID               string

	// VisitDateTime is copied from the slot's start time at booking.
	// Editing the slot afterwards must not move already booked visits.
	VisitDateTime time.Time

	Status    VisitStatus
	Notes     *string
	CreatedAt time.Time
}

// IsActive returns true if the visit counts towards slot capacity
func (v *Visit) IsActive() bool {
	return v.Status != VisitCancelled
}

// IsTerminal returns true if no further status transition is allowed
func (v *Visit) IsTerminal() bool {
	return v.Status == VisitCancelled || v.Status == VisitCompleted
}

// CanBeCancelled returns true if the visit can still be cancelled
func (v *Visit) CanBeCancelled() bool {
	return v.Status == VisitScheduled || v.Status == VisitConfirmed
}

// CanTransition reports whether a visit status transition is allowed.
// scheduled -> confirmed -> completed; scheduled|confirmed -> cancelled.
// cancelled and completed are terminal.
func CanTransition(from, to VisitStatus) bool {
	if from == to {
		return false
	}
	switch from {
	case VisitScheduled:
		return to == VisitConfirmed || to == VisitCancelled
	case VisitConfirmed:
		return to == VisitCompleted || to == VisitCancelled
	default:
		return false
	}
}

// IsValidVisitStatus reports whether s is a known visit status
func IsValidVisitStatus(s string) bool {
	switch VisitStatus(s) {
	case VisitScheduled, VisitConfirmed, VisitCompleted, VisitCancelled:
		return true
	}
	return false
}

// VisitsFilter describes filtering options for listing visits
type VisitsFilter struct {
	UnitID           *string
	Status           *VisitStatus
	From             *time.Time // inclusive lower bound on visit_date_time
	To               *time.Time // exclusive upper bound on visit_date_time
	IncludeCancelled bool       // ignored when Status is set explicitly
}

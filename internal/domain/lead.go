package domain

import "time"

// LeadStatus represents a stage of the sales funnel
type LeadStatus string

const (
	LeadNew            LeadStatus = "new_lead"
	LeadContacted      LeadStatus = "contacted"
	LeadVisitScheduled LeadStatus = "visit_scheduled"
	LeadEnrolled       LeadStatus = "enrolled"
	LeadLost           LeadStatus = "lost"
)

// LeadSourceWebsite marks leads auto-created by the public booking flow
const LeadSourceWebsite = "website"

// Lead is a sales-funnel record for a family, independent of any single visit.
// ParentEmail is the natural key used for de-duplication on booking.
// At most one active (non-cancelled) visit may be linked through VisitID.
type Lead struct {
	ID                   string
	ParentName           string
	ParentEmail          string
	ParentPhone          *string
	ChildName            *string
	ChildAge             *int
	ChildGradeOfInterest *string
	Source               *string
	Status               LeadStatus
	LastContactDate      *time.Time
	NextFollowUpDate     *time.Time
	Notes                *string
	VisitID              *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsValidLeadStatus reports whether s is a known lead status
func IsValidLeadStatus(s string) bool {
	switch LeadStatus(s) {
	case LeadNew, LeadContacted, LeadVisitScheduled, LeadEnrolled, LeadLost:
		return true
	}
	return false
}

// LeadsFilter describes filtering options for listing leads
type LeadsFilter struct {
	Status *LeadStatus
	Limit  int
	Offset int
}

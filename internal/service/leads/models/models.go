package models

import (
	"time"

	"github.com/visitas-angelim/booking-service/internal/domain"
)

// LeadResponse модель лида для вызывающего кода
type LeadResponse struct {
	ID                   string
	ParentName           string
	ParentEmail          string
	ParentPhone          *string
	ChildName            *string
	ChildAge             *int
	ChildGradeOfInterest *string
	Source               *string
	Status               string
	LastContactDate      *time.Time
	NextFollowUpDate     *time.Time
	Notes                *string
	VisitID              *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// LeadListResponse список лидов
type LeadListResponse struct {
	Leads []*LeadResponse
	Total int
}

// CreateLeadRequest запрос создания лида оператором
type CreateLeadRequest struct {
	ParentName           string
	ParentEmail          string
	ParentPhone          *string
	ChildName            *string
	ChildAge             *int
	ChildGradeOfInterest *string
	Source               *string
	Notes                *string
}

// UpdateLeadRequest запрос обновления лида оператором
// nil-поля не изменяются
type UpdateLeadRequest struct {
	ParentName           *string
	ParentPhone          *string
	ChildName            *string
	ChildAge             *int
	ChildGradeOfInterest *string
	Source               *string
	Status               *string
	LastContactDate      *time.Time
	NextFollowUpDate     *time.Time
	Notes                *string
}

// ListLeadsRequest запрос списка лидов
type ListLeadsRequest struct {
	Status *string
	Limit  int
	Offset int
}

// FromDomainLead конвертирует доменный лид в response
func FromDomainLead(l *domain.Lead) *LeadResponse {
	return &LeadResponse{
		ID:                   l.ID,
		ParentName:           l.ParentName,
		ParentEmail:          l.ParentEmail,
		ParentPhone:          l.ParentPhone,
		ChildName:            l.ChildName,
		ChildAge:             l.ChildAge,
		ChildGradeOfInterest: l.ChildGradeOfInterest,
		Source:               l.Source,
		Status:               string(l.Status),
		LastContactDate:      l.LastContactDate,
		NextFollowUpDate:     l.NextFollowUpDate,
		Notes:                l.Notes,
		VisitID:              l.VisitID,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

// FromDomainLeadList конвертирует список доменных лидов
func FromDomainLeadList(leads []*domain.Lead) *LeadListResponse {
	result := &LeadListResponse{
		Leads: make([]*LeadResponse, 0, len(leads)),
		Total: len(leads),
	}
	for _, l := range leads {
		result.Leads = append(result.Leads, FromDomainLead(l))
	}
	return result
}

// ToDomainLeadStatus валидирует и конвертирует строковый статус
func ToDomainLeadStatus(s string) (domain.LeadStatus, error) {
	if !domain.IsValidLeadStatus(s) {
		return "", domain.ErrUnknownStatus
	}
	return domain.LeadStatus(s), nil
}

package models

import (
	"time"

	"github.com/visitas-angelim/booking-service/internal/domain"
)

// VisitResponse модель визита для вызывающего кода
type VisitResponse struct {
	ID                   string
	ParentName           string
	ParentEmail          string
	ParentPhone          *string
	ChildName            *string
	ChildAge             *int
	ChildGradeOfInterest *string
	UnitID               string
	SlotID               string
	VisitDateTime        time.Time
	Status               string

	// CanBeCancelled подсказывает операторскому интерфейсу, показывать ли
	// действие отмены для этого визита
	CanBeCancelled bool

	Notes     *string
	CreatedAt time.Time
}

// VisitListResponse список визитов
type VisitListResponse struct {
	Visits []*VisitResponse
	Total  int
}

// ListVisitsRequest запрос списка визитов с фильтрацией
type ListVisitsRequest struct {
	UnitID           *string
	Status           *string
	From             *time.Time
	To               *time.Time
	IncludeCancelled bool
}

// UpdateStatusRequest запрос смены статуса визита
type UpdateStatusRequest struct {
	Status string
}

// FromDomainVisit конвертирует доменный визит в response
func FromDomainVisit(v *domain.Visit) *VisitResponse {
	return &VisitResponse{
		ID:                   v.ID,
		ParentName:           v.ParentName,
		ParentEmail:          v.ParentEmail,
		ParentPhone:          v.ParentPhone,
		ChildName:            v.ChildName,
		ChildAge:             v.ChildAge,
		ChildGradeOfInterest: v.ChildGradeOfInterest,
		UnitID:               v.UnitID,
		SlotID:               v.SlotID,
		VisitDateTime:        v.VisitDateTime,
		Status:               string(v.Status),
		CanBeCancelled:       v.CanBeCancelled(),
		Notes:                v.Notes,
		CreatedAt:            v.CreatedAt,
	}
}

// FromDomainVisitList конвертирует список доменных визитов
func FromDomainVisitList(visits []*domain.Visit) *VisitListResponse {
	result := &VisitListResponse{
		Visits: make([]*VisitResponse, 0, len(visits)),
		Total:  len(visits),
	}
	for _, v := range visits {
		result.Visits = append(result.Visits, FromDomainVisit(v))
	}
	return result
}

// ToDomainFilter конвертирует запрос списка в доменный фильтр
func (r *ListVisitsRequest) ToDomainFilter() (domain.VisitsFilter, error) {
	filter := domain.VisitsFilter{
		UnitID:           r.UnitID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainVisitStatus(*r.Status)
		if err != nil {
			return domain.VisitsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainVisitStatus валидирует и конвертирует строковый статус
func ToDomainVisitStatus(s string) (domain.VisitStatus, error) {
	if !domain.IsValidVisitStatus(s) {
		return "", domain.ErrUnknownStatus
	}
	return domain.VisitStatus(s), nil
}

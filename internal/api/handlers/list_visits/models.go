package list_visits

import (
	"time"

	"github.com/visitas-angelim/booking-service/internal/service/visits/models"
)

// VisitResponse HTTP model визита для операторского списка
type VisitResponse struct {
	ID                   string    `json:"id"`
	ParentName           string    `json:"parentName"`
	ParentEmail          string    `json:"parentEmail"`
	ParentPhone          *string   `json:"parentPhone,omitempty"`
	ChildName            *string   `json:"childName,omitempty"`
	ChildAge             *int      `json:"childAge,omitempty"`
	ChildGradeOfInterest *string   `json:"childGradeOfInterest,omitempty"`
	UnitID               string    `json:"unitId"`
	SlotID               string    `json:"slotId"`
	VisitDateTime        time.Time `json:"visitDateTime"`
	Status               string    `json:"status"`
	CanBeCancelled       bool      `json:"canBeCancelled"`
	Notes                *string   `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// VisitsListResponse HTTP model списка визитов
type VisitsListResponse struct {
	Visits []*VisitResponse `json:"visits"`
	Total  int              `json:"total"`
}

// FromServiceVisit конвертирует ответ сервиса в HTTP модель
func FromServiceVisit(v *models.VisitResponse) *VisitResponse {
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
		Status:               v.Status,
		CanBeCancelled:       v.CanBeCancelled,
		Notes:                v.Notes,
		CreatedAt:            v.CreatedAt,
	}
}

// FromServiceResponse конвертирует список сервиса в HTTP модель
func FromServiceResponse(resp *models.VisitListResponse) *VisitsListResponse {
	result := &VisitsListResponse{
		Visits: make([]*VisitResponse, 0, len(resp.Visits)),
		Total:  resp.Total,
	}
	for _, v := range resp.Visits {
		result.Visits = append(result.Visits, FromServiceVisit(v))
	}
	return result
}

package create_lead

import (
	"time"

	"github.com/visitas-angelim/booking-service/internal/service/leads/models"
)

// CreateLeadRequest HTTP request model
type CreateLeadRequest struct {
	ParentName           string  `json:"parentName"`
	ParentEmail          string  `json:"parentEmail"`
	ParentPhone          *string `json:"parentPhone,omitempty"`
	ChildName            *string `json:"childName,omitempty"`
	ChildAge             *int    `json:"childAge,omitempty"`
	ChildGradeOfInterest *string `json:"childGradeOfInterest,omitempty"`
	Source               *string `json:"source,omitempty"`
	Notes                *string `json:"notes,omitempty"`
}

// LeadResponse HTTP response model
type LeadResponse struct {
	ID                   string     `json:"id"`
	ParentName           string     `json:"parentName"`
	ParentEmail          string     `json:"parentEmail"`
	ParentPhone          *string    `json:"parentPhone,omitempty"`
	ChildName            *string    `json:"childName,omitempty"`
	ChildAge             *int       `json:"childAge,omitempty"`
	ChildGradeOfInterest *string    `json:"childGradeOfInterest,omitempty"`
	Source               *string    `json:"source,omitempty"`
	Status               string     `json:"status"`
	LastContactDate      *time.Time `json:"lastContactDate,omitempty"`
	NextFollowUpDate     *time.Time `json:"nextFollowUpDate,omitempty"`
	Notes                *string    `json:"notes,omitempty"`
	VisitID              *string    `json:"visitId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateLeadRequest) ToServiceRequest() *models.CreateLeadRequest {
	return &models.CreateLeadRequest{
		ParentName:           r.ParentName,
		ParentEmail:          r.ParentEmail,
		ParentPhone:          r.ParentPhone,
		ChildName:            r.ChildName,
		ChildAge:             r.ChildAge,
		ChildGradeOfInterest: r.ChildGradeOfInterest,
		Source:               r.Source,
		Notes:                r.Notes,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модель
func FromServiceResponse(l *models.LeadResponse) *LeadResponse {
	return &LeadResponse{
		ID:                   l.ID,
		ParentName:           l.ParentName,
		ParentEmail:          l.ParentEmail,
		ParentPhone:          l.ParentPhone,
		ChildName:            l.ChildName,
		ChildAge:             l.ChildAge,
		ChildGradeOfInterest: l.ChildGradeOfInterest,
		Source:               l.Source,
		Status:               l.Status,
		LastContactDate:      l.LastContactDate,
		NextFollowUpDate:     l.NextFollowUpDate,
		Notes:                l.Notes,
		VisitID:              l.VisitID,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

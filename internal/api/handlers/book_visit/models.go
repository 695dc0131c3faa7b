package book_visit

import (
	"time"

	bookVisit "github.com/visitas-angelim/booking-service/internal/usecase/book_visit"
)

// BookVisitRequest HTTP request model
type BookVisitRequest struct {
	ParentName           string  `json:"parentName"`
	ParentEmail          string  `json:"parentEmail"`
	ParentPhone          *string `json:"parentPhone,omitempty"`
	ChildName            *string `json:"childName,omitempty"`
	ChildAge             *int    `json:"childAge,omitempty"`
	ChildGradeOfInterest *string `json:"childGradeOfInterest,omitempty"`
	UnitID               string  `json:"unitId"`
	SlotID               string  `json:"slotId"`
}

// BookVisitResponse HTTP response model
type BookVisitResponse struct {
	VisitID       string    `json:"visitId"`
	UnitID        string    `json:"unitId"`
	SlotID        string    `json:"slotId"`
	VisitDateTime time.Time `json:"visitDateTime"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookVisitRequest) ToUseCaseRequest() *bookVisit.Request {
	return &bookVisit.Request{
		ParentName:           r.ParentName,
		ParentEmail:          r.ParentEmail,
		ParentPhone:          r.ParentPhone,
		ChildName:            r.ChildName,
		ChildAge:             r.ChildAge,
		ChildGradeOfInterest: r.ChildGradeOfInterest,
		UnitID:               r.UnitID,
		SlotID:               r.SlotID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *bookVisit.Response) *BookVisitResponse {
	return &BookVisitResponse{
		VisitID:       resp.VisitID,
		UnitID:        resp.UnitID,
		SlotID:        resp.SlotID,
		VisitDateTime: resp.VisitDateTime,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt,
	}
}

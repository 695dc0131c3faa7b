package create_slot

import (
	"time"

	"github.com/visitas-angelim/booking-service/internal/service/slots/models"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	UnitID     string    `json:"unitId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Capacity   int       `json:"capacity"`
	IsBookable bool      `json:"isBookable"`
	Tag        *string   `json:"tag,omitempty"`
}

// SlotResponse HTTP response model операторского слота
type SlotResponse struct {
	ID          string    `json:"id"`
	UnitID      string    `json:"unitId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Capacity    int       `json:"capacity"`
	IsBookable  bool      `json:"isBookable"`
	Tag         *string   `json:"tag,omitempty"`
	BookedCount int       `json:"bookedCount"`
	SpotsLeft   int       `json:"spotsLeft"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest() *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		UnitID:     r.UnitID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Capacity:   r.Capacity,
		IsBookable: r.IsBookable,
		Tag:        r.Tag,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модель
func FromServiceResponse(s *models.SlotResponse) *SlotResponse {
	return &SlotResponse{
		ID:          s.ID,
		UnitID:      s.UnitID,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Capacity:    s.Capacity,
		IsBookable:  s.IsBookable,
		Tag:         s.Tag,
		BookedCount: s.BookedCount,
		SpotsLeft:   s.SpotsLeft,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

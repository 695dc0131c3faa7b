package get_available_slots

import (
	"time"

	"github.com/visitas-angelim/booking-service/internal/service/slots/models"
)

// SlotResponse HTTP model публичного слота
// Вместимость и занятость наружу не отдаем, только число свободных мест
type SlotResponse struct {
	ID        string    `json:"id"`
	UnitID    string    `json:"unitId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	SpotsLeft int       `json:"spotsLeft"`
	Tag       *string   `json:"tag,omitempty"`
}

// SlotsListResponse HTTP model списка слотов
type SlotsListResponse struct {
	Slots []*SlotResponse `json:"slots"`
	Total int             `json:"total"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модель
func FromServiceResponse(resp *models.SlotListResponse) *SlotsListResponse {
	result := &SlotsListResponse{
		Slots: make([]*SlotResponse, 0, len(resp.Slots)),
		Total: resp.Total,
	}
	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, &SlotResponse{
			ID:        s.ID,
			UnitID:    s.UnitID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			SpotsLeft: s.SpotsLeft,
			Tag:       s.Tag,
		})
	}
	return result
}

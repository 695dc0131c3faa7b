package models

import (
	"time"

	"github.com/visitas-angelim/booking-service/internal/domain"
)

// SlotResponse модель слота для вызывающего кода
type SlotResponse struct {
	ID          string
	UnitID      string
	StartTime   time.Time
	EndTime     time.Time
	Capacity    int
	IsBookable  bool
	Tag         *string
	BookedCount int
	SpotsLeft   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []*SlotResponse
	Total int
}

// CreateSlotRequest запрос создания слота оператором
type CreateSlotRequest struct {
	UnitID     string
	StartTime  time.Time
	EndTime    time.Time
	Capacity   int
	IsBookable bool
	Tag        *string
}

// UpdateSlotRequest запрос обновления слота оператором
// nil-поля не изменяются
type UpdateSlotRequest struct {
	StartTime  *time.Time
	EndTime    *time.Time
	Capacity   *int
	IsBookable *bool
	Tag        *string
}

// ListSlotsRequest запрос списка слотов
type ListSlotsRequest struct {
	UnitID       *string
	From         *time.Time
	To           *time.Time
	OnlyBookable bool
}

// AvailableSlotsRequest запрос публичного списка доступных слотов юнита
type AvailableSlotsRequest struct {
	UnitID string
	From   *time.Time
	To     *time.Time
}

// FromDomainSlot конвертирует доменный слот в response
// BookedCount и SpotsLeft заполняются только из FromDomainAvailability
func FromDomainSlot(s *domain.AvailabilitySlot) *SlotResponse {
	return &SlotResponse{
		ID:         s.ID,
		UnitID:     s.UnitID,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Capacity:   s.Capacity,
		IsBookable: s.IsBookable,
		Tag:        s.Tag,
		SpotsLeft:  s.Capacity,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// FromDomainAvailability конвертирует слот с подсчитанной загрузкой
func FromDomainAvailability(a *domain.SlotAvailability) *SlotResponse {
	resp := FromDomainSlot(&a.Slot)
	resp.BookedCount = a.BookedCount
	resp.SpotsLeft = a.SpotsLeft()
	return resp
}

// FromDomainAvailabilityList конвертирует список слотов с загрузкой
func FromDomainAvailabilityList(list []*domain.SlotAvailability) *SlotListResponse {
	result := &SlotListResponse{
		Slots: make([]*SlotResponse, 0, len(list)),
		Total: len(list),
	}
	for _, a := range list {
		result.Slots = append(result.Slots, FromDomainAvailability(a))
	}
	return result
}

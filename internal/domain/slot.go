package domain

import "time"

// AvailabilitySlot is a bookable time window at a unit.
// Capacity limits the number of concurrent non-cancelled visits;
// IsBookable is an operator gate independent of capacity.
type AvailabilitySlot struct {
	ID         string
	UnitID     string
	StartTime  time.Time
	EndTime    time.Time
	Capacity   int
	IsBookable bool
	Tag        *string // free-text label, e.g. receiving teacher's name
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasRoomFor returns true if one more booking fits given the current booked count
func (s *AvailabilitySlot) HasRoomFor(booked int) bool {
	return booked < s.Capacity
}

// SlotAvailability is a slot together with its booked count derived
// from the visits table (no persisted counter, so nothing can drift)
type SlotAvailability struct {
	Slot        AvailabilitySlot
	BookedCount int
}

// SpotsLeft returns the number of remaining places in the slot
func (s *SlotAvailability) SpotsLeft() int {
	left := s.Slot.Capacity - s.BookedCount
	if left < 0 {
		return 0
	}
	return left
}

// IsFull returns true if the slot has no remaining places
func (s *SlotAvailability) IsFull() bool {
	return s.SpotsLeft() == 0
}

// SlotsFilter describes filtering options for listing slots
type SlotsFilter struct {
	UnitID       *string
	From         *time.Time
	To           *time.Time
	OnlyBookable bool
}

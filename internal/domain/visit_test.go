package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    VisitStatus
		to      VisitStatus
		allowed bool
	}{
		{"scheduled to confirmed", VisitScheduled, VisitConfirmed, true},
		{"scheduled to cancelled", VisitScheduled, VisitCancelled, true},
		{"scheduled to completed skips confirmation", VisitScheduled, VisitCompleted, false},
		{"confirmed to completed", VisitConfirmed, VisitCompleted, true},
		{"confirmed to cancelled", VisitConfirmed, VisitCancelled, true},
		{"confirmed back to scheduled", VisitConfirmed, VisitScheduled, false},
		{"completed is terminal", VisitCompleted, VisitCancelled, false},
		{"cancelled is terminal", VisitCancelled, VisitScheduled, false},
		{"cancelled cannot be re-cancelled", VisitCancelled, VisitCancelled, false},
		{"same status is not a transition", VisitScheduled, VisitScheduled, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestVisitIsActive(t *testing.T) {
	for _, status := range []VisitStatus{VisitScheduled, VisitConfirmed, VisitCompleted} {
		v := &Visit{Status: status}
		assert.True(t, v.IsActive(), "status %s must count towards capacity", status)
	}

	cancelled := &Visit{Status: VisitCancelled}
	assert.False(t, cancelled.IsActive())
}

func TestVisitIsTerminal(t *testing.T) {
	assert.False(t, (&Visit{Status: VisitScheduled}).IsTerminal())
	assert.False(t, (&Visit{Status: VisitConfirmed}).IsTerminal())
	assert.True(t, (&Visit{Status: VisitCompleted}).IsTerminal())
	assert.True(t, (&Visit{Status: VisitCancelled}).IsTerminal())
}

func TestVisitCanBeCancelled(t *testing.T) {
	assert.True(t, (&Visit{Status: VisitScheduled}).CanBeCancelled())
	assert.True(t, (&Visit{Status: VisitConfirmed}).CanBeCancelled())
	assert.False(t, (&Visit{Status: VisitCompleted}).CanBeCancelled())
	assert.False(t, (&Visit{Status: VisitCancelled}).CanBeCancelled())
}

func TestSlotHasRoomFor(t *testing.T) {
	slot := &AvailabilitySlot{Capacity: 2}

	assert.True(t, slot.HasRoomFor(0))
	assert.True(t, slot.HasRoomFor(1))
	assert.False(t, slot.HasRoomFor(2))
	assert.False(t, slot.HasRoomFor(3))
}

func TestSlotAvailabilitySpotsLeft(t *testing.T) {
	a := &SlotAvailability{Slot: AvailabilitySlot{Capacity: 3}, BookedCount: 1}
	assert.Equal(t, 2, a.SpotsLeft())
	assert.False(t, a.IsFull())

	full := &SlotAvailability{Slot: AvailabilitySlot{Capacity: 3}, BookedCount: 3}
	assert.Equal(t, 0, full.SpotsLeft())
	assert.True(t, full.IsFull())

	// вместимость могла быть уменьшена оператором ниже занятости
	over := &SlotAvailability{Slot: AvailabilitySlot{Capacity: 2}, BookedCount: 3}
	assert.Equal(t, 0, over.SpotsLeft())
	assert.True(t, over.IsFull())
}

func TestVisitEventIsCancellation(t *testing.T) {
	cases := []struct {
		name   string
		before VisitStatus
		after  VisitStatus
		want   bool
	}{
		{"scheduled to cancelled", VisitScheduled, VisitCancelled, true},
		{"confirmed to cancelled", VisitConfirmed, VisitCancelled, true},
		{"scheduled to confirmed", VisitScheduled, VisitConfirmed, false},
		{"confirmed to completed", VisitConfirmed, VisitCompleted, false},
		{"redelivered cancellation", VisitCancelled, VisitCancelled, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			e := &VisitEvent{BeforeStatus: tt.before, AfterStatus: tt.after}
			assert.Equal(t, tt.want, e.IsCancellation())
		})
	}
}

package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitas-angelim/booking-service/internal/domain"
	slotRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/slot"
	unitRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/unit"
	"github.com/visitas-angelim/booking-service/internal/service/slots/models"
)

type fakeSlots struct {
	slots   map[string]*domain.AvailabilitySlot
	booked  map[string]int
	deleted []string
}

func (f *fakeSlots) Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	cp := *slot
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.slots[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeSlots) GetByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *slot
	return &cp, nil
}

func (f *fakeSlots) ListWithBookedCount(ctx context.Context, filter domain.SlotsFilter) ([]*domain.SlotAvailability, error) {
	var out []*domain.SlotAvailability
	for _, slot := range f.slots {
		if filter.UnitID != nil && slot.UnitID != *filter.UnitID {
			continue
		}
		if filter.OnlyBookable && !slot.IsBookable {
			continue
		}
		if filter.From != nil && slot.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !slot.StartTime.Before(*filter.To) {
			continue
		}
		out = append(out, &domain.SlotAvailability{Slot: *slot, BookedCount: f.booked[slot.ID]})
	}
	return out, nil
}

func (f *fakeSlots) Update(ctx context.Context, slot *domain.AvailabilitySlot) error {
	if _, ok := f.slots[slot.ID]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	cp := *slot
	f.slots[cp.ID] = &cp
	return nil
}

func (f *fakeSlots) Delete(ctx context.Context, id string) error {
	if _, ok := f.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(f.slots, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeVisitCounts struct{ counts map[string]int }

func (f *fakeVisitCounts) CountActiveBySlot(ctx context.Context, slotID string) (int, error) {
	return f.counts[slotID], nil
}

type fakeUnits struct{}

func (fakeUnits) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	if id == "angelim-centro" {
		return &domain.Unit{ID: id, Name: "Escola Angelim - Centro"}, nil
	}
	return nil, unitRepo.ErrUnitNotFound
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newTestService(now time.Time) (*Service, *fakeSlots, *fakeVisitCounts) {
	sr := &fakeSlots{slots: make(map[string]*domain.AvailabilitySlot), booked: make(map[string]int)}
	vr := &fakeVisitCounts{counts: make(map[string]int)}
	svc := NewService(sr, vr, fakeUnits{}, passthroughTx{}, fixedClock{now}, noopLogger{})
	return svc, sr, vr
}

func validCreate() *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		UnitID:     "angelim-centro",
		StartTime:  time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		Capacity:   5,
		IsBookable: true,
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	zeroCap := validCreate()
	zeroCap.Capacity = 0
	_, err := svc.Create(context.Background(), zeroCap)
	assert.ErrorIs(t, err, ErrInvalidInput)

	inverted := validCreate()
	inverted.StartTime, inverted.EndTime = inverted.EndTime, inverted.StartTime
	_, err = svc.Create(context.Background(), inverted)
	assert.ErrorIs(t, err, ErrInvalidInput)

	unknownUnit := validCreate()
	unknownUnit.UnitID = "missing"
	_, err = svc.Create(context.Background(), unknownUnit)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestCreate_Success(t *testing.T) {
	svc, sr, _ := newTestService(time.Now())

	resp, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Contains(t, sr.slots, resp.ID)
}

func TestDelete_BlockedByActiveVisits(t *testing.T) {
	svc, sr, vr := newTestService(time.Now())
	sr.slots["slot-1"] = &domain.AvailabilitySlot{ID: "slot-1", UnitID: "angelim-centro"}
	vr.counts["slot-1"] = 2

	err := svc.Delete(context.Background(), "slot-1")
	assert.ErrorIs(t, err, ErrSlotHasActiveVisits)
	assert.Contains(t, sr.slots, "slot-1", "slot must survive a blocked delete")
}

func TestDelete_AllowedWhenOnlyCancelledVisitsRemain(t *testing.T) {
	// CountActiveBySlot не считает отмененные визиты
	svc, sr, vr := newTestService(time.Now())
	sr.slots["slot-1"] = &domain.AvailabilitySlot{ID: "slot-1", UnitID: "angelim-centro"}
	vr.counts["slot-1"] = 0

	err := svc.Delete(context.Background(), "slot-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"slot-1"}, sr.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestListAvailable_ExcludesFullPastAndNotBookable(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	svc, sr, _ := newTestService(now)

	open := &domain.AvailabilitySlot{
		ID: "open", UnitID: "angelim-centro", IsBookable: true, Capacity: 5,
		StartTime: now.Add(24 * time.Hour), EndTime: now.Add(25 * time.Hour),
	}
	full := &domain.AvailabilitySlot{
		ID: "full", UnitID: "angelim-centro", IsBookable: true, Capacity: 2,
		StartTime: now.Add(24 * time.Hour), EndTime: now.Add(25 * time.Hour),
	}
	closed := &domain.AvailabilitySlot{
		ID: "closed", UnitID: "angelim-centro", IsBookable: false, Capacity: 5,
		StartTime: now.Add(24 * time.Hour), EndTime: now.Add(25 * time.Hour),
	}
	past := &domain.AvailabilitySlot{
		ID: "past", UnitID: "angelim-centro", IsBookable: true, Capacity: 5,
		StartTime: now.Add(-time.Hour), EndTime: now.Add(-30 * time.Minute),
	}
	for _, s := range []*domain.AvailabilitySlot{open, full, closed, past} {
		sr.slots[s.ID] = s
	}
	sr.booked["full"] = 2

	resp, err := svc.ListAvailable(context.Background(), &models.AvailableSlotsRequest{UnitID: "angelim-centro"})
	require.NoError(t, err)

	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "open", resp.Slots[0].ID)
	assert.Equal(t, 5, resp.Slots[0].SpotsLeft)
}

func TestListAvailable_UnknownUnit(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	_, err := svc.ListAvailable(context.Background(), &models.AvailableSlotsRequest{UnitID: "missing"})
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

package book_visit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitas-angelim/booking-service/internal/domain"
	leadRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/lead"
	slotRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/slot"
	unitRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/unit"
)

// fakeStore in-memory хранилище, сериализующее транзакции мьютексом.
// DoSerializable держит общий лок на всю транзакцию, что эквивалентно
// сериализуемому выполнению без конфликтов
type fakeStore struct {
	mu     sync.Mutex
	slots  map[string]*domain.AvailabilitySlot
	visits map[string]*domain.Visit
	leads  map[string]*domain.Lead // key: parent_email
	units  map[string]*domain.Unit
	outbox []*domain.OutboxEmail

	failVisitCreate bool
	failEnqueue     bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:  make(map[string]*domain.AvailabilitySlot),
		visits: make(map[string]*domain.Visit),
		leads:  make(map[string]*domain.Lead),
		units:  make(map[string]*domain.Unit),
	}
}

func (s *fakeStore) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Снимки для отката: транзакция либо фиксируется целиком, либо нет
	visitsBackup := make(map[string]*domain.Visit, len(s.visits))
	for k, v := range s.visits {
		visitsBackup[k] = v
	}
	leadsBackup := make(map[string]*domain.Lead, len(s.leads))
	for k, v := range s.leads {
		leadsBackup[k] = v
	}
	outboxBackup := append([]*domain.OutboxEmail(nil), s.outbox...)

	if err := fn(ctx); err != nil {
		s.visits = visitsBackup
		s.leads = leadsBackup
		s.outbox = outboxBackup
		return err
	}
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *slot
	return &cp, nil
}

type fakeVisits struct{ store *fakeStore }

func (f *fakeVisits) Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	if f.store.failVisitCreate {
		return nil, errors.New("insert failed")
	}
	cp := *visit
	cp.CreatedAt = time.Now()
	f.store.visits[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeVisits) CountActiveBySlot(ctx context.Context, slotID string) (int, error) {
	count := 0
	for _, v := range f.store.visits {
		if v.SlotID == slotID && v.IsActive() {
			count++
		}
	}
	return count, nil
}

type fakeLeads struct{ store *fakeStore }

func (f *fakeLeads) GetByEmail(ctx context.Context, email string) (*domain.Lead, error) {
	lead, ok := f.store.leads[email]
	if !ok {
		return nil, leadRepo.ErrLeadNotFound
	}
	cp := *lead
	return &cp, nil
}

func (f *fakeLeads) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if _, ok := f.store.leads[lead.ParentEmail]; ok {
		return nil, leadRepo.ErrDuplicateEmail
	}
	cp := *lead
	f.store.leads[cp.ParentEmail] = &cp
	return &cp, nil
}

func (f *fakeLeads) LinkVisit(ctx context.Context, leadID, visitID string) error {
	for _, lead := range f.store.leads {
		if lead.ID == leadID {
			lead.Status = domain.LeadVisitScheduled
			lead.VisitID = &visitID
			return nil
		}
	}
	return leadRepo.ErrLeadNotFound
}

type fakeUnits struct{ store *fakeStore }

func (f *fakeUnits) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	unit, ok := f.store.units[id]
	if !ok {
		return nil, unitRepo.ErrUnitNotFound
	}
	cp := *unit
	return &cp, nil
}

type fakeOutbox struct{ store *fakeStore }

func (f *fakeOutbox) Enqueue(ctx context.Context, email *domain.OutboxEmail) (*domain.OutboxEmail, error) {
	if f.store.failEnqueue {
		return nil, errors.New("insert failed")
	}
	cp := *email
	cp.ID = int64(len(f.store.outbox) + 1)
	f.store.outbox = append(f.store.outbox, &cp)
	return &cp, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newTestUseCase(store *fakeStore) *UseCase {
	return NewUseCase(
		store,
		&fakeVisits{store},
		&fakeLeads{store},
		&fakeUnits{store},
		&fakeOutbox{store},
		store,
		noopLogger{},
	)
}

func validRequest() *Request {
	return &Request{
		ParentName:  "Maria Silva",
		ParentEmail: "maria@example.com",
		UnitID:      "angelim-centro",
		SlotID:      "slot-1",
	}
}

func seedSlot(store *fakeStore, capacity int, bookable bool) {
	store.slots["slot-1"] = &domain.AvailabilitySlot{
		ID:         "slot-1",
		UnitID:     "angelim-centro",
		StartTime:  time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		Capacity:   capacity,
		IsBookable: bookable,
	}
	store.units["angelim-centro"] = &domain.Unit{ID: "angelim-centro", Name: "Escola Angelim - Centro"}
}

func TestExecute_Success(t *testing.T) {
	store := newFakeStore()
	seedSlot(store, 3, true)
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.VisitID)
	assert.Equal(t, "slot-1", resp.SlotID)
	assert.Equal(t, string(domain.VisitScheduled), resp.Status)
	// время визита - снапшот начала слота
	assert.Equal(t, store.slots["slot-1"].StartTime, resp.VisitDateTime)

	// лид создан и привязан к визиту
	lead := store.leads["maria@example.com"]
	require.NotNil(t, lead)
	assert.Equal(t, domain.LeadVisitScheduled, lead.Status)
	require.NotNil(t, lead.VisitID)
	assert.Equal(t, resp.VisitID, *lead.VisitID)
	require.NotNil(t, lead.Source)
	assert.Equal(t, domain.LeadSourceWebsite, *lead.Source)

	// письмо-подтверждение в outbox той же транзакцией
	require.Len(t, store.outbox, 1)
	assert.Equal(t, domain.EmailConfirmation, store.outbox[0].Kind)
	assert.Equal(t, "Escola Angelim - Centro", store.outbox[0].UnitName)
}

func TestExecute_ValidationErrors(t *testing.T) {
	store := newFakeStore()
	seedSlot(store, 3, true)
	uc := newTestUseCase(store)

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty parent name", func(r *Request) { r.ParentName = "  " }},
		{"empty email", func(r *Request) { r.ParentEmail = "" }},
		{"malformed email", func(r *Request) { r.ParentEmail = "not-an-email" }},
		{"empty unit", func(r *Request) { r.UnitID = "" }},
		{"empty slot", func(r *Request) { r.SlotID = "" }},
		{"negative child age", func(r *Request) { age := -1; r.ChildAge = &age }},
		{"child age too large", func(r *Request) { age := 22; r.ChildAge = &age }},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Empty(t, store.visits, "no visit may be written on validation failure")
}

func TestExecute_SlotNotFound(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_NotBookableBeforeFull(t *testing.T) {
	// Закрытый слот отклоняется как not bookable даже при полной занятости
	store := newFakeStore()
	seedSlot(store, 1, false)
	storeVisit := &domain.Visit{ID: "v-1", SlotID: "slot-1", Status: domain.VisitScheduled}
	store.visits[storeVisit.ID] = storeVisit
	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotBookable)
}

func TestExecute_SlotFull(t *testing.T) {
	store := newFakeStore()
	seedSlot(store, 2, true)
	store.visits["v-1"] = &domain.Visit{ID: "v-1", SlotID: "slot-1", Status: domain.VisitScheduled}
	store.visits["v-2"] = &domain.Visit{ID: "v-2", SlotID: "slot-1", Status: domain.VisitConfirmed}
	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_CancelledVisitsFreeCapacity(t *testing.T) {
	store := newFakeStore()
	seedSlot(store, 1, true)
	store.visits["v-1"] = &domain.Visit{ID: "v-1", SlotID: "slot-1", Status: domain.VisitCancelled}
	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ExistingLeadRelinked(t *testing.T) {
	store := newFakeStore()
	seedSlot(store, 3, true)
	oldVisit := "old-visit"
	store.leads["maria@example.com"] = &domain.Lead{
		ID:          "lead-1",
		ParentName:  "Maria Silva",
		ParentEmail: "maria@example.com",
		Status:      domain.LeadContacted,
		VisitID:     &oldVisit,
	}
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// дубликат не создан, привязка перезаписана свежим визитом
	require.Len(t, store.leads, 1)
	lead := store.leads["maria@example.com"]
	assert.Equal(t, "lead-1", lead.ID)
	assert.Equal(t, domain.LeadVisitScheduled, lead.Status)
	assert.Equal(t, resp.VisitID, *lead.VisitID)
}

func TestExecute_AtomicRollbackOnFailure(t *testing.T) {
	// Падение на шаге outbox откатывает и визит, и лид
	store := newFakeStore()
	seedSlot(store, 3, true)
	store.failEnqueue = true
	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInternal)

	assert.Empty(t, store.visits)
	assert.Empty(t, store.leads)
	assert.Empty(t, store.outbox)
}

func TestExecute_UnknownUnitFallsBackToID(t *testing.T) {
	store := newFakeStore()
	seedSlot(store, 3, true)
	delete(store.units, "angelim-centro")
	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, store.outbox, 1)
	assert.Equal(t, "angelim-centro", store.outbox[0].UnitName)
}

func TestExecute_CapacityInvariantUnderConcurrency(t *testing.T) {
	const capacity = 3
	const attempts = 10

	store := newFakeStore()
	seedSlot(store, capacity, true)
	uc := newTestUseCase(store)

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			req := validRequest()
			req.ParentEmail = string(rune('a'+n)) + "@example.com"
			_, errs[n] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	booked := 0
	rejected := 0
	for _, err := range errs {
		switch {
		case err == nil:
			booked++
		case errors.Is(err, ErrSlotFull):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, capacity, booked, "exactly capacity bookings must succeed")
	assert.Equal(t, attempts-capacity, rejected)
	assert.Len(t, store.visits, capacity)
}

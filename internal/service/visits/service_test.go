package visits

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitas-angelim/booking-service/internal/domain"
	visitRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/visit"
	"github.com/visitas-angelim/booking-service/internal/service/visits/models"
	"github.com/visitas-angelim/booking-service/pkg/txmanager"
)

type fakeVisits struct {
	visits map[string]*domain.Visit
}

func (f *fakeVisits) GetByID(ctx context.Context, id string) (*domain.Visit, error) {
	v, ok := f.visits[id]
	if !ok {
		return nil, visitRepo.ErrVisitNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVisits) ListWithFilter(ctx context.Context, filter domain.VisitsFilter) ([]*domain.Visit, error) {
	var out []*domain.Visit
	for _, v := range f.visits {
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		if filter.Status == nil && !filter.IncludeCancelled && v.Status == domain.VisitCancelled {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVisits) UpdateStatus(ctx context.Context, id string, status domain.VisitStatus) error {
	v, ok := f.visits[id]
	if !ok {
		return visitRepo.ErrVisitNotFound
	}
	v.Status = status
	return nil
}

type fakeEvents struct {
	events []*domain.VisitEvent
}

func (f *fakeEvents) Append(ctx context.Context, event *domain.VisitEvent) (*domain.VisitEvent, error) {
	cp := *event
	cp.ID = int64(len(f.events) + 1)
	f.events = append(f.events, &cp)
	return &cp, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newTestService(visits map[string]*domain.Visit) (*Service, *fakeVisits, *fakeEvents) {
	vr := &fakeVisits{visits: visits}
	er := &fakeEvents{}
	return NewService(vr, er, passthroughTx{}, noopLogger{}), vr, er
}

func TestUpdateStatus_WritesEventWithTransition(t *testing.T) {
	svc, vr, er := newTestService(map[string]*domain.Visit{
		"v-1": {ID: "v-1", Status: domain.VisitScheduled},
	})

	err := svc.UpdateStatus(context.Background(), "v-1", &models.UpdateStatusRequest{
		Status: string(domain.VisitConfirmed),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VisitConfirmed, vr.visits["v-1"].Status)

	require.Len(t, er.events, 1)
	assert.Equal(t, "v-1", er.events[0].VisitID)
	assert.Equal(t, domain.VisitScheduled, er.events[0].BeforeStatus)
	assert.Equal(t, domain.VisitConfirmed, er.events[0].AfterStatus)
}

func TestUpdateStatus_RejectsInvalidTransition(t *testing.T) {
	svc, vr, er := newTestService(map[string]*domain.Visit{
		"v-1": {ID: "v-1", Status: domain.VisitCompleted},
	})

	err := svc.UpdateStatus(context.Background(), "v-1", &models.UpdateStatusRequest{
		Status: string(domain.VisitCancelled),
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.VisitCompleted, vr.visits["v-1"].Status)
	assert.Empty(t, er.events, "no event on rejected transition")
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(map[string]*domain.Visit{
		"v-1": {ID: "v-1", Status: domain.VisitScheduled},
	})

	err := svc.UpdateStatus(context.Background(), "v-1", &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _, _ := newTestService(map[string]*domain.Visit{})

	err := svc.UpdateStatus(context.Background(), "missing", &models.UpdateStatusRequest{
		Status: string(domain.VisitConfirmed),
	})
	assert.ErrorIs(t, err, ErrVisitNotFound)
}

func TestCancel_EmitsCancellationEvent(t *testing.T) {
	svc, vr, er := newTestService(map[string]*domain.Visit{
		"v-1": {ID: "v-1", Status: domain.VisitConfirmed},
	})

	err := svc.Cancel(context.Background(), "v-1")
	require.NoError(t, err)

	assert.Equal(t, domain.VisitCancelled, vr.visits["v-1"].Status)
	require.Len(t, er.events, 1)
	assert.True(t, er.events[0].IsCancellation())
}

func TestCancel_TwiceFails(t *testing.T) {
	svc, _, er := newTestService(map[string]*domain.Visit{
		"v-1": {ID: "v-1", Status: domain.VisitScheduled},
	})

	require.NoError(t, svc.Cancel(context.Background(), "v-1"))
	err := svc.Cancel(context.Background(), "v-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Len(t, er.events, 1)
}

func TestList_FiltersOutCancelledByDefault(t *testing.T) {
	svc, _, _ := newTestService(map[string]*domain.Visit{
		"v-1": {ID: "v-1", Status: domain.VisitScheduled},
		"v-2": {ID: "v-2", Status: domain.VisitCancelled},
	})

	resp, err := svc.List(context.Background(), &models.ListVisitsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	all, err := svc.List(context.Background(), &models.ListVisitsRequest{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

// exhaustedTx имитирует менеджер, у которого все повторы транзакции
// закончились конфликтом сериализации
type exhaustedTx struct{}

func (exhaustedTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fmt.Errorf("%w: after 3 attempts", txmanager.ErrRetriesExhausted)
}

func TestUpdateStatus_MapsExhaustedRetriesToConflict(t *testing.T) {
	vr := &fakeVisits{visits: map[string]*domain.Visit{
		"v1": {ID: "v1", Status: domain.VisitScheduled},
	}}
	svc := NewService(vr, &fakeEvents{}, exhaustedTx{}, noopLogger{})

	err := svc.UpdateStatus(context.Background(), "v1", &models.UpdateStatusRequest{
		Status: string(domain.VisitConfirmed),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxConflict)
	// Конфликт не должен утекать как внутренняя ошибка
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestGetByID_ReportsCancellability(t *testing.T) {
	svc, _, _ := newTestService(map[string]*domain.Visit{
		"v1": {ID: "v1", Status: domain.VisitScheduled},
		"v2": {ID: "v2", Status: domain.VisitCompleted},
	})

	active, err := svc.GetByID(context.Background(), "v1")
	require.NoError(t, err)
	assert.True(t, active.CanBeCancelled)

	done, err := svc.GetByID(context.Background(), "v2")
	require.NoError(t, err)
	assert.False(t, done.CanBeCancelled)
}

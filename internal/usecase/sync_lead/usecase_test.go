package sync_lead

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitas-angelim/booking-service/internal/domain"
)

// fakeLeads эмулирует условный UPDATE ... WHERE visit_id = $1
type fakeLeads struct {
	linked map[string]string // visit_id -> lead_id
	err    error
	calls  int
}

func (f *fakeLeads) UnlinkVisit(ctx context.Context, visitID string) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.linked[visitID]; !ok {
		return 0, nil
	}
	delete(f.linked, visitID)
	return 1, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func cancellation(visitID string) *domain.VisitEvent {
	return &domain.VisitEvent{
		VisitID:      visitID,
		BeforeStatus: domain.VisitScheduled,
		AfterStatus:  domain.VisitCancelled,
	}
}

func TestExecute_CancellationRevertsLead(t *testing.T) {
	leads := &fakeLeads{linked: map[string]string{"visit-1": "lead-1"}}
	uc := NewUseCase(leads, noopLogger{})

	result, err := uc.Execute(context.Background(), cancellation("visit-1"))
	require.NoError(t, err)
	assert.Equal(t, ResultReverted, result)
	assert.Empty(t, leads.linked)
}

func TestExecute_NonCancellationTransitionsAreSkipped(t *testing.T) {
	cases := []struct {
		name   string
		before domain.VisitStatus
		after  domain.VisitStatus
	}{
		{"confirmation", domain.VisitScheduled, domain.VisitConfirmed},
		{"completion", domain.VisitConfirmed, domain.VisitCompleted},
		{"redelivered cancellation", domain.VisitCancelled, domain.VisitCancelled},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			leads := &fakeLeads{linked: map[string]string{"visit-1": "lead-1"}}
			uc := NewUseCase(leads, noopLogger{})

			result, err := uc.Execute(context.Background(), &domain.VisitEvent{
				VisitID:      "visit-1",
				BeforeStatus: tt.before,
				AfterStatus:  tt.after,
			})
			require.NoError(t, err)
			assert.Equal(t, ResultSkipped, result)
			assert.Zero(t, leads.calls, "repository must not be touched")
		})
	}
}

func TestExecute_NoLinkedLead(t *testing.T) {
	// Привязка уже снята или перезаписана новой бронью - условный UPDATE
	// не находит строк, повторная доставка безвредна
	leads := &fakeLeads{linked: map[string]string{}}
	uc := NewUseCase(leads, noopLogger{})

	result, err := uc.Execute(context.Background(), cancellation("visit-1"))
	require.NoError(t, err)
	assert.Equal(t, ResultNoLead, result)
}

func TestExecute_IdempotentOnRedelivery(t *testing.T) {
	leads := &fakeLeads{linked: map[string]string{"visit-1": "lead-1"}}
	uc := NewUseCase(leads, noopLogger{})

	first, err := uc.Execute(context.Background(), cancellation("visit-1"))
	require.NoError(t, err)
	assert.Equal(t, ResultReverted, first)

	second, err := uc.Execute(context.Background(), cancellation("visit-1"))
	require.NoError(t, err)
	assert.Equal(t, ResultNoLead, second)
}

func TestExecute_RepositoryError(t *testing.T) {
	leads := &fakeLeads{err: errors.New("connection reset")}
	uc := NewUseCase(leads, noopLogger{})

	_, err := uc.Execute(context.Background(), cancellation("visit-1"))
	assert.ErrorIs(t, err, ErrInternal)
}

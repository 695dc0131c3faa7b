package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitas-angelim/booking-service/internal/domain"
	"github.com/visitas-angelim/booking-service/internal/integrations/mailer"
)

type fakeRepo struct {
	pending []*domain.OutboxEmail
	sent    []int64
	failed  []int64
	listErr error
}

func (f *fakeRepo) ListPending(ctx context.Context, limit int) ([]*domain.OutboxEmail, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeRepo) MarkSent(ctx context.Context, id int64) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeRepo) MarkFailed(ctx context.Context, id int64, sendErr string, maxAttempts int) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeGateway struct {
	confirmations []mailer.VisitEmail
	reminders     []mailer.VisitEmail
	failFor       map[string]bool
}

func (f *fakeGateway) SendConfirmation(ctx context.Context, email mailer.VisitEmail) error {
	if f.failFor[email.ParentEmail] {
		return errors.New("smtp unavailable")
	}
	f.confirmations = append(f.confirmations, email)
	return nil
}

func (f *fakeGateway) SendReminder(ctx context.Context, email mailer.VisitEmail) error {
	if f.failFor[email.ParentEmail] {
		return errors.New("smtp unavailable")
	}
	f.reminders = append(f.reminders, email)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func email(id int64, kind domain.EmailKind, recipient string) *domain.OutboxEmail {
	return &domain.OutboxEmail{
		ID:         id,
		Kind:       kind,
		Recipient:  recipient,
		ParentName: "Maria Silva",
		UnitName:   "Escola Angelim - Centro",
		Status:     domain.EmailPending,
	}
}

func newTestWorker(repo *fakeRepo, gateway *fakeGateway) *Worker {
	return NewWorker(repo, gateway, nil, noopLogger{}, time.Second, 10, 3)
}

func TestDrain_SendsByKindAndMarksSent(t *testing.T) {
	repo := &fakeRepo{pending: []*domain.OutboxEmail{
		email(1, domain.EmailConfirmation, "a@example.com"),
		email(2, domain.EmailReminder, "b@example.com"),
	}}
	gateway := &fakeGateway{}

	newTestWorker(repo, gateway).Drain(context.Background())

	require.Len(t, gateway.confirmations, 1)
	assert.Equal(t, "a@example.com", gateway.confirmations[0].ParentEmail)
	require.Len(t, gateway.reminders, 1)
	assert.Equal(t, "b@example.com", gateway.reminders[0].ParentEmail)

	assert.Equal(t, []int64{1, 2}, repo.sent)
	assert.Empty(t, repo.failed)
}

func TestDrain_FailureIsIsolatedAndMarkedFailed(t *testing.T) {
	repo := &fakeRepo{pending: []*domain.OutboxEmail{
		email(1, domain.EmailConfirmation, "ok@example.com"),
		email(2, domain.EmailConfirmation, "bad@example.com"),
		email(3, domain.EmailConfirmation, "also-ok@example.com"),
	}}
	gateway := &fakeGateway{failFor: map[string]bool{"bad@example.com": true}}

	newTestWorker(repo, gateway).Drain(context.Background())

	assert.Equal(t, []int64{1, 3}, repo.sent)
	assert.Equal(t, []int64{2}, repo.failed)
}

func TestDrain_ListErrorStopsQuietly(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("connection refused")}
	gateway := &fakeGateway{}

	newTestWorker(repo, gateway).Drain(context.Background())

	assert.Empty(t, gateway.confirmations)
	assert.Empty(t, repo.sent)
}

func TestDrain_RespectsBatchSize(t *testing.T) {
	repo := &fakeRepo{}
	for i := int64(1); i <= 15; i++ {
		repo.pending = append(repo.pending, email(i, domain.EmailConfirmation, "x@example.com"))
	}
	gateway := &fakeGateway{}

	newTestWorker(repo, gateway).Drain(context.Background())

	assert.Len(t, repo.sent, 10)
}

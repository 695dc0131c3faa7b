// Package outbox воркер доставки писем из транзакционного outbox.
// Письмо попадает в email_outbox той же транзакцией, что и бронирование,
// поэтому подтверждение не теряется при падении процесса; доставка
// как минимум один раз, получатель переживет дубликат письма
package outbox

import (
	"context"
	"time"

	"github.com/visitas-angelim/booking-service/internal/domain"
	"github.com/visitas-angelim/booking-service/internal/integrations/mailer"
	"github.com/visitas-angelim/booking-service/pkg/metrics"
)

// OutboxRepository интерфейс репозитория email outbox
type OutboxRepository interface {
	ListPending(ctx context.Context, limit int) ([]*domain.OutboxEmail, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, sendErr string, maxAttempts int) error
}

// MailGateway интерфейс почтового шлюза
type MailGateway interface {
	SendConfirmation(ctx context.Context, email mailer.VisitEmail) error
	SendReminder(ctx context.Context, email mailer.VisitEmail) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker периодически вычитывает pending письма и отправляет их
type Worker struct {
	repo        OutboxRepository
	gateway     MailGateway
	metrics     *metrics.Metrics
	logger      Logger
	interval    time.Duration
	batchSize   int
	maxAttempts int
}

// NewWorker создает воркер outbox
func NewWorker(
	repo OutboxRepository,
	gateway MailGateway,
	m *metrics.Metrics,
	logger Logger,
	interval time.Duration,
	batchSize int,
	maxAttempts int,
) *Worker {
	return &Worker{
		repo:        repo,
		gateway:     gateway,
		metrics:     m,
		logger:      logger,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
	}
}

// Run крутит цикл опроса до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started: interval=%s, batch=%d", w.interval, w.batchSize)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain обрабатывает одну пачку pending писем
// Ошибка отправки одного письма не прерывает пачку
func (w *Worker) Drain(ctx context.Context) {
	emails, err := w.repo.ListPending(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("outbox: failed to list pending emails: %v", err)
		return
	}

	for _, email := range emails {
		if err := w.sendOne(ctx, email); err != nil {
			w.metrics.IncOutboxEmail("failed")
			w.logger.Warn("outbox: failed to send email id=%d to=%s: %v", email.ID, email.Recipient, err)

			if markErr := w.repo.MarkFailed(ctx, email.ID, err.Error(), w.maxAttempts); markErr != nil {
				w.logger.Error("outbox: failed to mark email id=%d failed: %v", email.ID, markErr)
			}
			continue
		}

		if err := w.repo.MarkSent(ctx, email.ID); err != nil {
			// Письмо уйдет повторно на следующем проходе
			w.logger.Error("outbox: failed to mark email id=%d sent: %v", email.ID, err)
			continue
		}

		w.metrics.IncOutboxEmail("sent")
		w.logger.Info("outbox: sent %s email id=%d to=%s", email.Kind, email.ID, email.Recipient)
	}
}

func (w *Worker) sendOne(ctx context.Context, email *domain.OutboxEmail) error {
	visitEmail := mailer.VisitEmail{
		ParentName:    email.ParentName,
		ParentEmail:   email.Recipient,
		ChildName:     email.ChildName,
		UnitName:      email.UnitName,
		VisitDateTime: email.VisitDateTime,
		SlotStart:     email.SlotStart,
		SlotEnd:       email.SlotEnd,
	}

	switch email.Kind {
	case domain.EmailReminder:
		return w.gateway.SendReminder(ctx, visitEmail)
	default:
		return w.gateway.SendConfirmation(ctx, visitEmail)
	}
}

// Package visitevents воркер доставки событий смены статуса визита.
// События пишутся в visit_events той же транзакцией, что и смена статуса,
// воркер доставляет их синхронизатору лидов как минимум один раз;
// идемпотентность обработки обеспечивает сам синхронизатор
package visitevents

import (
	"context"
	"time"

	"github.com/visitas-angelim/booking-service/internal/domain"
	syncLead "github.com/visitas-angelim/booking-service/internal/usecase/sync_lead"
	"github.com/visitas-angelim/booking-service/pkg/metrics"
)

// EventRepository интерфейс репозитория событий визитов
type EventRepository interface {
	ListUnprocessed(ctx context.Context, limit int) ([]*domain.VisitEvent, error)
	MarkProcessed(ctx context.Context, id int64) error
}

// SyncLeadUseCase интерфейс синхронизатора лидов
type SyncLeadUseCase interface {
	Execute(ctx context.Context, event *domain.VisitEvent) (syncLead.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker периодически вычитывает необработанные события и прогоняет
// их через синхронизатор
type Worker struct {
	repo      EventRepository
	useCase   SyncLeadUseCase
	metrics   *metrics.Metrics
	logger    Logger
	interval  time.Duration
	batchSize int
}

// NewWorker создает воркер событий визитов
func NewWorker(
	repo EventRepository,
	useCase SyncLeadUseCase,
	m *metrics.Metrics,
	logger Logger,
	interval time.Duration,
	batchSize int,
) *Worker {
	return &Worker{
		repo:      repo,
		useCase:   useCase,
		metrics:   m,
		logger:    logger,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run крутит цикл опроса до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("visit events worker started: interval=%s, batch=%d", w.interval, w.batchSize)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("visit events worker stopped")
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain обрабатывает одну пачку событий в порядке записи
// Упавшее событие не помечается processed и будет доставлено повторно
func (w *Worker) Drain(ctx context.Context) {
	events, err := w.repo.ListUnprocessed(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("visitevents: failed to list unprocessed events: %v", err)
		return
	}

	for _, event := range events {
		result, err := w.useCase.Execute(ctx, event)
		if err != nil {
			w.metrics.IncLeadSync("failed")
			w.logger.Error("visitevents: failed to process event id=%d visit_id=%s: %v", event.ID, event.VisitID, err)
			continue
		}

		if err := w.repo.MarkProcessed(ctx, event.ID); err != nil {
			w.logger.Error("visitevents: failed to mark event id=%d processed: %v", event.ID, err)
			continue
		}

		w.metrics.IncLeadSync(string(result))
	}
}

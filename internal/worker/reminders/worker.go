// Package reminders планировщик ежедневной рассылки напоминаний.
// Запускает прогон в заданный локальный час; повторный запуск за те же
// сутки безопасен, лишние напоминания допустимы
package reminders

import (
	"context"
	"time"

	sendReminders "github.com/visitas-angelim/booking-service/internal/usecase/send_reminders"
	"github.com/visitas-angelim/booking-service/pkg/metrics"
)

// SendRemindersUseCase интерфейс прогона напоминаний
type SendRemindersUseCase interface {
	Run(ctx context.Context) (*sendReminders.Report, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker ежедневный планировщик напоминаний
type Worker struct {
	useCase  SendRemindersUseCase
	metrics  *metrics.Metrics
	logger   Logger
	location *time.Location
	hour     int
}

// NewWorker создает планировщик напоминаний
// hour - локальный час запуска в location (0-23)
func NewWorker(
	useCase SendRemindersUseCase,
	m *metrics.Metrics,
	logger Logger,
	location *time.Location,
	hour int,
) *Worker {
	return &Worker{
		useCase:  useCase,
		metrics:  m,
		logger:   logger,
		location: location,
		hour:     hour,
	}
}

// nextRunAfter возвращает ближайший момент запуска строго после t
func (w *Worker) nextRunAfter(t time.Time) time.Time {
	local := t.In(w.location)
	next := time.Date(local.Year(), local.Month(), local.Day(), w.hour, 0, 0, 0, w.location)
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run спит до следующего часа запуска, выполняет прогон и повторяет
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("reminders worker started: hour=%02d:00 %s", w.hour, w.location)

	for {
		next := w.nextRunAfter(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Info("reminders worker stopped")
			return
		case <-timer.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	report, err := w.useCase.Run(ctx)
	if err != nil {
		w.logger.Error("reminders: run failed: %v", err)
		return
	}

	for i := 0; i < report.Sent; i++ {
		w.metrics.IncReminder("sent")
	}
	for i := 0; i < report.Failed; i++ {
		w.metrics.IncReminder("failed")
	}

	w.logger.Info("reminders: run finished: found=%d, sent=%d, failed=%d", report.Found, report.Sent, report.Failed)
}

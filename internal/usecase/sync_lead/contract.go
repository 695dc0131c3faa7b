package sync_lead

import "context"

// LeadRepository интерфейс репозитория лидов
type LeadRepository interface {
	UnlinkVisit(ctx context.Context, visitID string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

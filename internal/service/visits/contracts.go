package visits

import (
	"context"

	"github.com/visitas-angelim/booking-service/internal/domain"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Visit, error)
	ListWithFilter(ctx context.Context, filter domain.VisitsFilter) ([]*domain.Visit, error)
	UpdateStatus(ctx context.Context, id string, status domain.VisitStatus) error
}

// EventRepository интерфейс outbox событий визитов
type EventRepository interface {
	Append(ctx context.Context, event *domain.VisitEvent) (*domain.VisitEvent, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

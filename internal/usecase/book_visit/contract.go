package book_visit

import (
	"context"

	"github.com/visitas-angelim/booking-service/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error)
}

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error)
	CountActiveBySlot(ctx context.Context, slotID string) (int, error)
}

// LeadRepository интерфейс репозитория лидов
type LeadRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Lead, error)
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	LinkVisit(ctx context.Context, leadID, visitID string) error
}

// UnitRepository интерфейс репозитория юнитов
type UnitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
}

// OutboxRepository интерфейс email outbox
type OutboxRepository interface {
	Enqueue(ctx context.Context, email *domain.OutboxEmail) (*domain.OutboxEmail, error)
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

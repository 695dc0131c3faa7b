package slots

import (
	"context"
	"time"

	"github.com/visitas-angelim/booking-service/internal/domain"
)

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
	GetByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error)
	ListWithBookedCount(ctx context.Context, filter domain.SlotsFilter) ([]*domain.SlotAvailability, error)
	Update(ctx context.Context, slot *domain.AvailabilitySlot) error
	Delete(ctx context.Context, id string) error
}

// VisitRepository интерфейс репозитория визитов
// Нужен для защиты от удаления слота с активными визитами
type VisitRepository interface {
	CountActiveBySlot(ctx context.Context, slotID string) (int, error)
}

// UnitRepository интерфейс репозитория юнитов
type UnitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

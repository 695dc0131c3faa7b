package send_reminders

import (
	"context"
	"time"

	"github.com/visitas-angelim/booking-service/internal/domain"
	"github.com/visitas-angelim/booking-service/internal/integrations/mailer"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	ListForReminder(ctx context.Context, from, to time.Time) ([]*domain.Visit, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error)
}

// UnitRepository интерфейс репозитория юнитов
type UnitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
}

// MailGateway интерфейс почтового шлюза
type MailGateway interface {
	SendReminder(ctx context.Context, email mailer.VisitEmail) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

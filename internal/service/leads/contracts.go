package leads

import (
	"context"

	"github.com/visitas-angelim/booking-service/internal/domain"
)

// LeadRepository интерфейс репозитория лидов
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	Update(ctx context.Context, lead *domain.Lead) error
	ListWithFilter(ctx context.Context, filter domain.LeadsFilter) ([]*domain.Lead, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Package units тонкий сервис каталога юнитов школы
package units

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/visitas-angelim/booking-service/internal/domain"
	unitRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/unit"
)

var (
	// ErrUnitNotFound возвращается, когда юнит не найден
	ErrUnitNotFound = errors.New("units.service: unit not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("units.service: internal error")
)

// UnitRepository интерфейс репозитория юнитов
type UnitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
	List(ctx context.Context) ([]*domain.Unit, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// UnitResponse модель юнита для вызывающего кода
type UnitResponse struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// UnitListResponse список юнитов
type UnitListResponse struct {
	Units []*UnitResponse
	Total int
}

// Service сервис юнитов
type Service struct {
	unitRepo UnitRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса юнитов
func NewService(unitRepo UnitRepository, logger Logger) *Service {
	return &Service{
		unitRepo: unitRepo,
		logger:   logger,
	}
}

// GetByID получает юнит по slug-идентификатору
func (s *Service) GetByID(ctx context.Context, id string) (*UnitResponse, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		s.logger.Error("GetByID: repository error for unit id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return fromDomainUnit(unit), nil
}

// List получает все юниты
func (s *Service) List(ctx context.Context) (*UnitListResponse, error) {
	units, err := s.unitRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := &UnitListResponse{
		Units: make([]*UnitResponse, 0, len(units)),
		Total: len(units),
	}
	for _, u := range units {
		result.Units = append(result.Units, fromDomainUnit(u))
	}
	return result, nil
}

func fromDomainUnit(u *domain.Unit) *UnitResponse {
	return &UnitResponse{
		ID:          u.ID,
		Name:        u.Name,
		Description: u.Description,
		CreatedAt:   u.CreatedAt,
	}
}

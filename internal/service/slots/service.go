package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/visitas-angelim/booking-service/internal/domain"
	slotRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/slot"
	unitRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/unit"
	"github.com/visitas-angelim/booking-service/internal/service/slots/models"
	"github.com/visitas-angelim/booking-service/pkg/txmanager"
)

// Service сервис слотов доступности: операторский CRUD плюс публичная
// витрина свободных слотов для формы бронирования
type Service struct {
	slotRepo  SlotRepository
	visitRepo VisitRepository
	unitRepo  UnitRepository
	txManager TransactionManager
	clock     TimeProvider
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	visitRepo VisitRepository,
	unitRepo UnitRepository,
	txManager TransactionManager,
	clock TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		visitRepo: visitRepo,
		unitRepo:  unitRepo,
		txManager: txManager,
		clock:     clock,
		logger:    logger,
	}
}

// Create создает слот доступности
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	if req.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if _, err := s.unitRepo.GetByID(ctx, req.UnitID); err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			s.logger.Warn("Create: unit id=%s not found", req.UnitID)
			return nil, ErrUnitNotFound
		}
		s.logger.Error("Create: unit repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - unit repository error: %v", ErrInternal, err)
	}

	slot := &domain.AvailabilitySlot{
		ID:         uuid.NewString(),
		UnitID:     req.UnitID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Capacity:   req.Capacity,
		IsBookable: req.IsBookable,
		Tag:        req.Tag,
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created slot id=%s unit=%s start=%s", created.ID, created.UnitID, created.StartTime)
	return models.FromDomainSlot(created), nil
}

// Update обновляет операторские поля слота
// Уменьшение capacity допустимо и ниже числа уже забронированных визитов:
// существующие брони не трогаем, слот просто перестает принимать новые
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
	}

	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Update: slot id=%s not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Update: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if !slot.StartTime.Before(slot.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	if req.Capacity != nil {
		slot.Capacity = *req.Capacity
	}
	if req.IsBookable != nil {
		slot.IsBookable = *req.IsBookable
	}
	if req.Tag != nil {
		slot.Tag = req.Tag
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Update: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated slot id=%s", id)
	return models.FromDomainSlot(slot), nil
}

// Delete удаляет слот, если на него нет активных визитов
// Проверка и удаление выполняются одной сериализуемой транзакцией,
// чтобы параллельное бронирование не успело вклиниться между ними
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.slotRepo.GetByID(ctx, id); err != nil {
			return err
		}

		active, err := s.visitRepo.CountActiveBySlot(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrSlotHasActiveVisits
		}

		return s.slotRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Delete: slot id=%s not found", id)
			return ErrSlotNotFound
		}
		if errors.Is(err, ErrSlotHasActiveVisits) {
			s.logger.Warn("Delete: slot id=%s has active visits", id)
			return ErrSlotHasActiveVisits
		}
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			s.logger.Error("Delete: serialization retries exhausted for slot id=%s: %v", id, err)
			return ErrTxConflict
		}
		s.logger.Error("Delete: transaction error for slot id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - transaction error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted slot id=%s", id)
	return nil
}

// List получает слоты с загрузкой для операторского интерфейса
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	filter := domain.SlotsFilter{
		UnitID:       req.UnitID,
		From:         req.From,
		To:           req.To,
		OnlyBookable: req.OnlyBookable,
	}

	list, err := s.slotRepo.ListWithBookedCount(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailabilityList(list), nil
}

// ListAvailable публичная витрина слотов юнита для формы бронирования:
// только bookable, только будущие, без заполненных под завязку
func (s *Service) ListAvailable(ctx context.Context, req *models.AvailableSlotsRequest) (*models.SlotListResponse, error) {
	if req.UnitID == "" {
		return nil, fmt.Errorf("%w: unitId is required", ErrInvalidInput)
	}

	if _, err := s.unitRepo.GetByID(ctx, req.UnitID); err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		s.logger.Error("ListAvailable: unit repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - unit repository error: %v", ErrInternal, err)
	}

	now := s.clock.Now()
	from := now
	if req.From != nil && req.From.After(now) {
		from = *req.From
	}

	filter := domain.SlotsFilter{
		UnitID:       &req.UnitID,
		From:         &from,
		To:           req.To,
		OnlyBookable: true,
	}

	list, err := s.slotRepo.ListWithBookedCount(ctx, filter)
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}

	available := make([]*domain.SlotAvailability, 0, len(list))
	for _, a := range list {
		if a.IsFull() {
			continue
		}
		available = append(available, a)
	}

	return models.FromDomainAvailabilityList(available), nil
}

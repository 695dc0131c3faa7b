package visits

import (
	"context"
	"errors"
	"fmt"

	"github.com/visitas-angelim/booking-service/internal/domain"
	visitRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/visit"
	"github.com/visitas-angelim/booking-service/internal/service/visits/models"
	"github.com/visitas-angelim/booking-service/pkg/txmanager"
)

// Service операторский сервис работы с визитами
// Смена статуса - единственная мутация визита после создания; каждая
// смена пишет событие в visit_events той же транзакцией, обеспечивая
// синхронизатору лидов доставку как минимум один раз
type Service struct {
	visitRepo VisitRepository
	eventRepo EventRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса визитов
func NewService(
	visitRepo VisitRepository,
	eventRepo EventRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		visitRepo: visitRepo,
		eventRepo: eventRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetByID получает визит по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.VisitResponse, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			s.logger.Warn("GetByID: visit id=%s not found", id)
			return nil, ErrVisitNotFound
		}
		s.logger.Error("GetByID: repository error for visit id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainVisit(visit), nil
}

// List получает визиты с фильтрацией по юниту, статусу и периоду
func (s *Service) List(ctx context.Context, req *models.ListVisitsRequest) (*models.VisitListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	visits, err := s.visitRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d visits", len(visits))
	return models.FromDomainVisitList(visits), nil
}

// UpdateStatus меняет статус визита по машине состояний
// scheduled -> confirmed -> completed; scheduled|confirmed -> cancelled.
// Чтение, запись и событие выполняются одной транзакцией
func (s *Service) UpdateStatus(ctx context.Context, visitID string, req *models.UpdateStatusRequest) error {
	newStatus, err := models.ToDomainVisitStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for visit id=%s", req.Status, visitID)
		return ErrInvalidStatus
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		visit, err := s.visitRepo.GetByID(txCtx, visitID)
		if err != nil {
			if errors.Is(err, visitRepo.ErrVisitNotFound) {
				return ErrVisitNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get visit: %w", ErrInternal, err)
		}

		if !domain.CanTransition(visit.Status, newStatus) {
			if visit.IsTerminal() {
				s.logger.Warn("UpdateStatus: visit id=%s is already in terminal status=%s",
					visitID, visit.Status)
			} else {
				s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for visit id=%s",
					visit.Status, newStatus, visitID)
			}
			return ErrInvalidTransition
		}

		if err := s.visitRepo.UpdateStatus(txCtx, visitID, newStatus); err != nil {
			return fmt.Errorf("%w: UpdateStatus - update visit: %w", ErrInternal, err)
		}

		event := &domain.VisitEvent{
			VisitID:      visitID,
			BeforeStatus: visit.Status,
			AfterStatus:  newStatus,
		}
		if _, err := s.eventRepo.Append(txCtx, event); err != nil {
			return fmt.Errorf("%w: UpdateStatus - append event: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVisitNotFound) || errors.Is(err, ErrInvalidTransition) {
			return err
		}
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			s.logger.Error("UpdateStatus: serialization retries exhausted for visit id=%s: %v", visitID, err)
			return ErrTxConflict
		}
		s.logger.Error("UpdateStatus: failed for visit id=%s: %v", visitID, err)
		return err
	}

	s.logger.Info("UpdateStatus: visit id=%s moved to status=%s", visitID, newStatus)
	return nil
}

// Cancel отменяет визит (оператором или семьей)
// Частный случай UpdateStatus: переход в cancelled, с тем же событием
func (s *Service) Cancel(ctx context.Context, visitID string) error {
	return s.UpdateStatus(ctx, visitID, &models.UpdateStatusRequest{
		Status: string(domain.VisitCancelled),
	})
}

package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/visitas-angelim/booking-service/internal/domain"
	leadRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/lead"
	"github.com/visitas-angelim/booking-service/internal/service/leads/models"
)

// Service операторский сервис воронки лидов
// Лиды также создаются и обновляются движком бронирования (usecase/book_visit)
// и синхронизатором (usecase/sync_lead); здесь только ручное управление
type Service struct {
	leadRepo LeadRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса лидов
func NewService(leadRepo LeadRepository, logger Logger) *Service {
	return &Service{
		leadRepo: leadRepo,
		logger:   logger,
	}
}

// Create создает лид вручную
// Статус нового лида всегда new_lead; привязка визита появляется только
// через бронирование
func (s *Service) Create(ctx context.Context, req *models.CreateLeadRequest) (*models.LeadResponse, error) {
	if strings.TrimSpace(req.ParentName) == "" {
		return nil, fmt.Errorf("%w: parentName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ParentEmail) == "" || !strings.Contains(req.ParentEmail, "@") {
		return nil, fmt.Errorf("%w: parentEmail is required", ErrInvalidInput)
	}

	lead := &domain.Lead{
		ID:                   uuid.NewString(),
		ParentName:           req.ParentName,
		ParentEmail:          req.ParentEmail,
		ParentPhone:          req.ParentPhone,
		ChildName:            req.ChildName,
		ChildAge:             req.ChildAge,
		ChildGradeOfInterest: req.ChildGradeOfInterest,
		Source:               req.Source,
		Status:               domain.LeadNew,
		Notes:                req.Notes,
	}

	created, err := s.leadRepo.Create(ctx, lead)
	if err != nil {
		if errors.Is(err, leadRepo.ErrDuplicateEmail) {
			s.logger.Warn("Create: lead with email=%s already exists", req.ParentEmail)
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created lead id=%s", created.ID)
	return models.FromDomainLead(created), nil
}

// GetByID получает лид по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.LeadResponse, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			return nil, ErrLeadNotFound
		}
		s.logger.Error("GetByID: repository error for lead id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLead(lead), nil
}

// Update обновляет операторские поля лида
// visit_id намеренно не редактируется руками: привязкой владеют движок
// бронирования и синхронизатор
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateLeadRequest) (*models.LeadResponse, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			s.logger.Warn("Update: lead id=%s not found", id)
			return nil, ErrLeadNotFound
		}
		s.logger.Error("Update: repository error for lead id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.ParentName != nil {
		if strings.TrimSpace(*req.ParentName) == "" {
			return nil, fmt.Errorf("%w: parentName cannot be empty", ErrInvalidInput)
		}
		lead.ParentName = *req.ParentName
	}
	if req.ParentPhone != nil {
		lead.ParentPhone = req.ParentPhone
	}
	if req.ChildName != nil {
		lead.ChildName = req.ChildName
	}
	if req.ChildAge != nil {
		lead.ChildAge = req.ChildAge
	}
	if req.ChildGradeOfInterest != nil {
		lead.ChildGradeOfInterest = req.ChildGradeOfInterest
	}
	if req.Source != nil {
		lead.Source = req.Source
	}
	if req.Status != nil {
		status, err := models.ToDomainLeadStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for lead id=%s", *req.Status, id)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		lead.Status = status
	}
	if req.LastContactDate != nil {
		lead.LastContactDate = req.LastContactDate
	}
	if req.NextFollowUpDate != nil {
		lead.NextFollowUpDate = req.NextFollowUpDate
	}
	if req.Notes != nil {
		lead.Notes = req.Notes
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			return nil, ErrLeadNotFound
		}
		s.logger.Error("Update: repository error for lead id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated lead id=%s", id)
	return models.FromDomainLead(lead), nil
}

// List получает лиды воронки с фильтрацией по статусу и пагинацией
func (s *Service) List(ctx context.Context, req *models.ListLeadsRequest) (*models.LeadListResponse, error) {
	filter := domain.LeadsFilter{
		Limit:  req.Limit,
		Offset: req.Offset,
	}

	if req.Status != nil {
		status, err := models.ToDomainLeadStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status filter=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
		}
		filter.Status = &status
	}

	leads, err := s.leadRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLeadList(leads), nil
}

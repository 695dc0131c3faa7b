package book_visit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/visitas-angelim/booking-service/internal/domain"
	leadRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/lead"
	slotRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/slot"
	unitRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/unit"
	"github.com/visitas-angelim/booking-service/pkg/ptr"
	"github.com/visitas-angelim/booking-service/pkg/txmanager"
)

// Заметка, с которой создается автоматический лид (видна оператору в воронке)
const autoLeadNote = "Lead criado automaticamente via agendamento de visita"

// UseCase use case публичного бронирования визита
// Вся работа с БД идет в одной сериализуемой транзакции: проверка слота,
// подсчет занятых мест, создание визита и upsert лида либо фиксируются
// вместе, либо не фиксируются вовсе
type UseCase struct {
	slots  SlotRepository
	visits VisitRepository
	leads  LeadRepository
	units  UnitRepository
	outbox OutboxRepository
	txMgr  TransactionManager
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slots SlotRepository,
	visits VisitRepository,
	leads LeadRepository,
	units UnitRepository,
	outbox OutboxRepository,
	txMgr TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slots:  slots,
		visits: visits,
		leads:  leads,
		units:  units,
		outbox: outbox,
		txMgr:  txMgr,
		logger: logger,
	}
}

// Execute выполняет бронирование визита
// Два одновременных запроса на последнее место не могут пройти оба:
// чтение счетчика и запись визита - одна атомарная единица, конфликт
// сериализации откатывает и повторяет одну из транзакций
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookVisit: email=%s, unit=%s, slot=%s", req.ParentEmail, req.UnitID, req.SlotID)

	// 1. Валидация входных данных (до транзакции)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookVisit: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Visit

	err := uc.txMgr.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Читаем слот с блокировкой строки
		slot, err := uc.slots.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("BookVisit: slot id=%s not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("BookVisit: failed to get slot id=%s: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		// 3. Операторский гейт: проверяется раньше вместимости
		if !slot.IsBookable {
			uc.logger.Warn("BookVisit: slot id=%s is not bookable", req.SlotID)
			return ErrSlotNotBookable
		}

		// 4. Считаем занятые места в снапшоте этой же транзакции
		booked, err := uc.visits.CountActiveBySlot(txCtx, req.SlotID)
		if err != nil {
			uc.logger.Error("BookVisit: failed to count visits for slot id=%s: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to count visits: %w", ErrInternal, err)
		}

		if !slot.HasRoomFor(booked) {
			uc.logger.Warn("BookVisit: slot id=%s is full, %d/%d places taken", req.SlotID, booked, slot.Capacity)
			return ErrSlotFull
		}

		uc.logger.Info("BookVisit: slot id=%s has room, %d/%d places taken", req.SlotID, booked, slot.Capacity)

		// 5. Создаем визит со снапшотом времени слота
		// Перенос слота после бронирования не двигает подтвержденные визиты
		visit := &domain.Visit{
			ID:                   uuid.NewString(),
			ParentName:           req.ParentName,
			ParentEmail:          req.ParentEmail,
			ParentPhone:          req.ParentPhone,
			ChildName:            req.ChildName,
			ChildAge:             req.ChildAge,
			ChildGradeOfInterest: req.ChildGradeOfInterest,
			UnitID:               req.UnitID,
			SlotID:               req.SlotID,
			VisitDateTime:        slot.StartTime,
			Status:               domain.VisitScheduled,
		}

		created, err := uc.visits.Create(txCtx, visit)
		if err != nil {
			uc.logger.Error("BookVisit: failed to create visit: %v", err)
			return fmt.Errorf("%w: failed to create visit: %w", ErrInternal, err)
		}

		// 6. Upsert лида по email родителя
		if err := uc.upsertLead(txCtx, req, created.ID); err != nil {
			return err
		}

		// 7. Кладем письмо-подтверждение в outbox той же транзакцией
		// Отдельный воркер отправит его после коммита; результат отправки
		// никогда не влияет на ответ вызывающей стороне
		if err := uc.enqueueConfirmation(txCtx, req, created, slot); err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			uc.logger.Error("BookVisit: serialization retries exhausted for slot id=%s: %v", req.SlotID, err)
			return nil, ErrTxConflict
		}
		return nil, err
	}

	uc.logger.Info("BookVisit: successfully booked visit id=%s for slot id=%s", result.ID, result.SlotID)

	return &Response{
		VisitID:       result.ID,
		UnitID:        result.UnitID,
		SlotID:        result.SlotID,
		VisitDateTime: result.VisitDateTime,
		Status:        string(result.Status),
		CreatedAt:     result.CreatedAt,
	}, nil
}

// upsertLead создает лид, если семьи еще нет в воронке, либо переводит
// существующий лид в visit_scheduled.
// Новая бронь перезаписывает прежнюю привязку visit_id: свежий визит
// той же семьи вытесняет старый
func (uc *UseCase) upsertLead(ctx context.Context, req *Request, visitID string) error {
	existing, err := uc.leads.GetByEmail(ctx, req.ParentEmail)
	if err != nil && !errors.Is(err, leadRepo.ErrLeadNotFound) {
		uc.logger.Error("BookVisit: failed to look up lead by email: %v", err)
		return fmt.Errorf("%w: failed to look up lead: %w", ErrInternal, err)
	}

	if existing == nil {
		newLead := &domain.Lead{
			ID:                   uuid.NewString(),
			ParentName:           req.ParentName,
			ParentEmail:          req.ParentEmail,
			ParentPhone:          req.ParentPhone,
			ChildName:            req.ChildName,
			ChildAge:             req.ChildAge,
			ChildGradeOfInterest: req.ChildGradeOfInterest,
			Source:               ptr.Ptr(domain.LeadSourceWebsite),
			Status:               domain.LeadVisitScheduled,
			Notes:                ptr.Ptr(autoLeadNote),
			VisitID:              &visitID,
		}

		if _, err := uc.leads.Create(ctx, newLead); err != nil {
			uc.logger.Error("BookVisit: failed to create lead: %v", err)
			return fmt.Errorf("%w: failed to create lead: %w", ErrInternal, err)
		}

		uc.logger.Info("BookVisit: created lead id=%s for email=%s", newLead.ID, req.ParentEmail)
		return nil
	}

	if err := uc.leads.LinkVisit(ctx, existing.ID, visitID); err != nil {
		uc.logger.Error("BookVisit: failed to link visit to lead id=%s: %v", existing.ID, err)
		return fmt.Errorf("%w: failed to update lead: %w", ErrInternal, err)
	}

	uc.logger.Info("BookVisit: linked visit id=%s to existing lead id=%s", visitID, existing.ID)
	return nil
}

// enqueueConfirmation ставит письмо-подтверждение в outbox
// Имя юнита денормализуется в запись сразу; если юнит не найден,
// в письме показывается его идентификатор
func (uc *UseCase) enqueueConfirmation(ctx context.Context, req *Request, visit *domain.Visit, slot *domain.AvailabilitySlot) error {
	unitName := req.UnitID
	if u, err := uc.units.GetByID(ctx, req.UnitID); err == nil {
		unitName = u.Name
	} else if !errors.Is(err, unitRepo.ErrUnitNotFound) {
		uc.logger.Error("BookVisit: failed to get unit id=%s: %v", req.UnitID, err)
		return fmt.Errorf("%w: failed to get unit: %w", ErrInternal, err)
	}

	email := &domain.OutboxEmail{
		Kind:          domain.EmailConfirmation,
		VisitID:       visit.ID,
		Recipient:     req.ParentEmail,
		ParentName:    req.ParentName,
		ChildName:     req.ChildName,
		UnitName:      unitName,
		VisitDateTime: visit.VisitDateTime,
		SlotStart:     slot.StartTime,
		SlotEnd:       slot.EndTime,
	}

	if _, err := uc.outbox.Enqueue(ctx, email); err != nil {
		uc.logger.Error("BookVisit: failed to enqueue confirmation email: %v", err)
		return fmt.Errorf("%w: failed to enqueue confirmation: %w", ErrInternal, err)
	}

	return nil
}

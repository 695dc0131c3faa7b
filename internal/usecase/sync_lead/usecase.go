// Package sync_lead реактивный синхронизатор лидов.
// Реагирует на события смены статуса визита: при переходе в cancelled
// отвязывает визит от лида и возвращает лид в contacted. Все остальные
// переходы игнорируются - в частности, завершение визита не двигает
// воронку, решение об enrolled оператор принимает вручную
package sync_lead

import (
	"context"
	"fmt"

	"github.com/visitas-angelim/booking-service/internal/domain"
)

// Result результат обработки одного события
type Result string

const (
	ResultReverted Result = "reverted" // лид отвязан и возвращен в contacted
	ResultNoLead   Result = "no_lead"  // лид с такой привязкой не найден
	ResultSkipped  Result = "skipped"  // событие не является отменой
)

// UseCase синхронизатор состояния лида
type UseCase struct {
	leads  LeadRepository
	logger Logger
}

// NewUseCase создает новый экземпляр синхронизатора
func NewUseCase(leads LeadRepository, logger Logger) *UseCase {
	return &UseCase{
		leads:  leads,
		logger: logger,
	}
}

// Execute обрабатывает событие смены статуса визита
// Идемпотентен при повторной доставке: сравнение before/after отсекает
// повтор (у повтора before уже cancelled), а условный UPDATE по visit_id
// не находит строк, если привязка уже снята или перезаписана новой бронью
func (uc *UseCase) Execute(ctx context.Context, event *domain.VisitEvent) (Result, error) {
	if !event.IsCancellation() {
		return ResultSkipped, nil
	}

	affected, err := uc.leads.UnlinkVisit(ctx, event.VisitID)
	if err != nil {
		uc.logger.Error("SyncLead: failed to unlink visit id=%s: %v", event.VisitID, err)
		return "", fmt.Errorf("%w: failed to unlink visit: %v", ErrInternal, err)
	}

	if affected == 0 {
		uc.logger.Info("SyncLead: no lead linked to cancelled visit id=%s", event.VisitID)
		return ResultNoLead, nil
	}

	uc.logger.Info("SyncLead: reverted lead for cancelled visit id=%s", event.VisitID)
	return ResultReverted, nil
}

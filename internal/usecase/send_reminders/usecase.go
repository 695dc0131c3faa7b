package send_reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/visitas-angelim/booking-service/internal/domain"
	"github.com/visitas-angelim/booking-service/internal/integrations/mailer"
	unitRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/unit"
)

// Report итог одного запуска рассылки напоминаний
type Report struct {
	Found  int
	Sent   int
	Failed int
}

// UseCase рассылка напоминаний о завтрашних визитах
// Запускается раз в сутки; границы "завтра" считаются в настроенной
// таймзоне от инжектированных часов, wall-clock внутри логики не читается
type UseCase struct {
	visits   VisitRepository
	slots    SlotRepository
	units    UnitRepository
	gateway  MailGateway
	clock    TimeProvider
	location *time.Location
	logger   Logger
}

// NewUseCase создает новый экземпляр use case рассылки напоминаний
func NewUseCase(
	visits VisitRepository,
	slots SlotRepository,
	units UnitRepository,
	gateway MailGateway,
	clock TimeProvider,
	location *time.Location,
	logger Logger,
) *UseCase {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		visits:   visits,
		slots:    slots,
		units:    units,
		gateway:  gateway,
		clock:    clock,
		location: location,
		logger:   logger,
	}
}

// ReminderWindow возвращает окно [начало завтрашних суток, +24ч)
// для момента now в таймзоне loc
func ReminderWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	tomorrowStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return tomorrowStart, tomorrowStart.AddDate(0, 0, 1)
}

// Run выполняет один запуск рассылки
// Каждый визит обрабатывается независимо: пропавший слот или ошибка шлюза
// логируются и не прерывают остальных. Падает только сам запрос окна.
// Неотправленные напоминания не переотправляются на следующий день
func (uc *UseCase) Run(ctx context.Context) (*Report, error) {
	from, to := ReminderWindow(uc.clock.Now(), uc.location)

	visits, err := uc.visits.ListForReminder(ctx, from, to)
	if err != nil {
		uc.logger.Error("SendReminders: failed to query visits for [%s, %s): %v",
			from.Format(time.RFC3339), to.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	uc.logger.Info("SendReminders: found %d visits for tomorrow", len(visits))

	report := &Report{Found: len(visits)}

	for _, visit := range visits {
		if err := uc.sendOne(ctx, visit); err != nil {
			uc.logger.Error("SendReminders: failed to send reminder for visit id=%s: %v", visit.ID, err)
			report.Failed++
			continue
		}
		uc.logger.Info("SendReminders: sent reminder to %s for visit id=%s", visit.ParentEmail, visit.ID)
		report.Sent++
	}

	uc.logger.Info("SendReminders: run finished, sent=%d failed=%d", report.Sent, report.Failed)
	return report, nil
}

func (uc *UseCase) sendOne(ctx context.Context, visit *domain.Visit) error {
	slot, err := uc.slots.GetByID(ctx, visit.SlotID)
	if err != nil {
		return fmt.Errorf("slot id=%s: %w", visit.SlotID, err)
	}

	unitName := visit.UnitID
	if u, err := uc.units.GetByID(ctx, visit.UnitID); err == nil {
		unitName = u.Name
	} else if !errors.Is(err, unitRepo.ErrUnitNotFound) {
		return fmt.Errorf("unit id=%s: %w", visit.UnitID, err)
	}

	return uc.gateway.SendReminder(ctx, mailer.VisitEmail{
		ParentName:    visit.ParentName,
		ParentEmail:   visit.ParentEmail,
		ChildName:     visit.ChildName,
		UnitName:      unitName,
		VisitDateTime: visit.VisitDateTime,
		SlotStart:     slot.StartTime,
		SlotEnd:       slot.EndTime,
	})
}

package mailer

import (
	"context"

	"github.com/visitas-angelim/booking-service/pkg/ptr"
)

// LogGateway шлюз-заглушка для локальной разработки: пишет письма в лог
// вместо отправки. Выбирается конфигурацией (smtp.enabled = false)
type LogGateway struct {
	log Logger
}

// NewLogGateway создает лог-шлюз
func NewLogGateway(log Logger) *LogGateway {
	return &LogGateway{log: log}
}

// SendConfirmation логирует письмо-подтверждение
func (g *LogGateway) SendConfirmation(ctx context.Context, email VisitEmail) error {
	g.log.Info("mailer(log): confirmation to %s, unit=%s, child=%q, visit=%s",
		email.ParentEmail, email.UnitName, ptr.Deref(email.ChildName),
		email.VisitDateTime.Format("2006-01-02 15:04"))
	return nil
}

// SendReminder логирует письмо-напоминание
func (g *LogGateway) SendReminder(ctx context.Context, email VisitEmail) error {
	g.log.Info("mailer(log): reminder to %s, unit=%s, child=%q, visit=%s",
		email.ParentEmail, email.UnitName, ptr.Deref(email.ChildName),
		email.VisitDateTime.Format("2006-01-02 15:04"))
	return nil
}

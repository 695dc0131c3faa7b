package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPGateway почтовый шлюз поверх SMTP
// Письма собираются вручную: во всем пакете ретрива нет сторонней
// почтовой библиотеки, а MIME одного HTML-письма тривиален
type SMTPGateway struct {
	host     string
	port     int
	username string
	password string
	from     string
	log      Logger
}

// NewSMTPGateway создает SMTP шлюз
func NewSMTPGateway(host string, port int, username, password, from string, log Logger) *SMTPGateway {
	return &SMTPGateway{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		log:      log,
	}
}

// SendConfirmation отправляет письмо-подтверждение бронирования
func (g *SMTPGateway) SendConfirmation(ctx context.Context, email VisitEmail) error {
	return g.send(ctx, email, subjectConfirmation, renderConfirmationBody(email))
}

// SendReminder отправляет письмо-напоминание о завтрашнем визите
func (g *SMTPGateway) SendReminder(ctx context.Context, email VisitEmail) error {
	return g.send(ctx, email, subjectReminder, renderReminderBody(email))
}

func (g *SMTPGateway) send(ctx context.Context, email VisitEmail, subject, body string) error {
	if email.ParentEmail == "" {
		return ErrInvalidRecipient
	}

	// net/smtp не принимает контекст; отмену уважаем хотя бы до начала диалога
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	msg := buildMessage(g.from, email.ParentEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", g.host, g.port)
	auth := smtp.PlainAuth("", g.username, g.password, g.host)

	if err := smtp.SendMail(addr, auth, g.username, []string{email.ParentEmail}, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	g.log.Info("mailer: sent %q to %s", subject, email.ParentEmail)
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder

	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return []byte(b.String())
}

package mailer

import (
	"fmt"
	"strings"
	"time"
)

// Тексты писем отправляются родителям напрямую, поэтому остаются на pt-BR

const (
	subjectConfirmation = "Confirmação de Visita - Escola Angelim"
	subjectReminder     = "Lembrete: Sua visita é amanhã! - Escola Angelim"
)

var weekdaysPT = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

var monthsPT = map[time.Month]string{
	time.January:   "janeiro",
	time.February:  "fevereiro",
	time.March:     "março",
	time.April:     "abril",
	time.May:       "maio",
	time.June:      "junho",
	time.July:      "julho",
	time.August:    "agosto",
	time.September: "setembro",
	time.October:   "outubro",
	time.November:  "novembro",
	time.December:  "dezembro",
}

// formatDatePT форматирует дату в длинной бразильской форме,
// например "segunda-feira, 2 de março de 2026"
func formatDatePT(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d", weekdaysPT[t.Weekday()], t.Day(), monthsPT[t.Month()], t.Year())
}

func formatTimePT(t time.Time) string {
	return t.Format("15:04")
}

func renderConfirmationBody(email VisitEmail) string {
	var b strings.Builder

	b.WriteString("<h2>Visita Confirmada!</h2>")
	b.WriteString(fmt.Sprintf("<p>Olá, %s!</p>", email.ParentName))
	b.WriteString("<p>Sua visita à Escola Angelim foi confirmada com sucesso.</p>")
	b.WriteString("<h3>Detalhes da Visita:</h3><ul>")
	b.WriteString(fmt.Sprintf("<li><strong>Data:</strong> %s</li>", formatDatePT(email.VisitDateTime)))
	b.WriteString(fmt.Sprintf("<li><strong>Horário:</strong> %s</li>", formatTimePT(email.SlotStart)))
	b.WriteString(fmt.Sprintf("<li><strong>Unidade:</strong> %s</li>", email.UnitName))
	if email.ChildName != nil && *email.ChildName != "" {
		b.WriteString(fmt.Sprintf("<li><strong>Criança:</strong> %s</li>", *email.ChildName))
	}
	b.WriteString("</ul>")
	b.WriteString("<p>Estamos muito felizes em recebê-lo(a) em nossa escola!</p>")
	b.WriteString("<p>Atenciosamente,<br><strong>Equipe Escola Angelim</strong></p>")

	return wrapHTML(b.String())
}

func renderReminderBody(email VisitEmail) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<p>Olá, %s!</p>", email.ParentName))
	b.WriteString("<p>Este é um lembrete de que sua visita à Escola Angelim está agendada para <strong>amanhã</strong>!</p>")
	b.WriteString("<h3>Detalhes:</h3><ul>")
	b.WriteString(fmt.Sprintf("<li><strong>Data:</strong> %s</li>", formatDatePT(email.VisitDateTime)))
	b.WriteString(fmt.Sprintf("<li><strong>Horário:</strong> %s</li>", formatTimePT(email.SlotStart)))
	b.WriteString(fmt.Sprintf("<li><strong>Unidade:</strong> %s</li>", email.UnitName))
	b.WriteString("</ul>")
	b.WriteString("<p>Aguardamos você!</p>")
	b.WriteString("<p>Atenciosamente,<br><strong>Equipe Escola Angelim</strong></p>")

	return wrapHTML(b.String())
}

func wrapHTML(content string) string {
	return fmt.Sprintf(
		`<!DOCTYPE html><html><head><meta charset="utf-8"></head><body><div style="max-width:600px;margin:0 auto;padding:20px">%s</div></body></html>`,
		content,
	)
}

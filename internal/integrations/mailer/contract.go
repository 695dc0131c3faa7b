package mailer

import "time"

// VisitEmail данные письма о визите
// Все отображаемые поля денормализованы на стороне вызывающего кода
type VisitEmail struct {
	ParentName    string
	ParentEmail   string
	ChildName     *string
	UnitName      string
	VisitDateTime time.Time
	SlotStart     time.Time
	SlotEnd       time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package leads

import "errors"

var (
	// ErrLeadNotFound возвращается, когда лид не найден
	ErrLeadNotFound = errors.New("leads.service: lead not found")

	// ErrDuplicateEmail возвращается при создании лида с занятым email
	// Email - натуральный ключ дедупликации воронки
	ErrDuplicateEmail = errors.New("leads.service: lead with this email already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("leads.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("leads.service: internal error")
)

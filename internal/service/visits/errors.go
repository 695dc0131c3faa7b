package visits

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден
	ErrVisitNotFound = errors.New("visits.service: visit not found")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("visits.service: invalid visit status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	// cancelled и completed терминальны, из них переходов нет
	ErrInvalidTransition = errors.New("visits.service: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("visits.service: invalid input")

	// ErrTxConflict возвращается, когда конкурентные смены статуса
	// исчерпали повторы сериализуемой транзакции
	ErrTxConflict = errors.New("visits.service: transaction conflict")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("visits.service: internal error")
)

package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slots.service: slot not found")

	// ErrUnitNotFound возвращается, когда юнит слота не найден
	ErrUnitNotFound = errors.New("slots.service: unit not found")

	// ErrSlotHasActiveVisits возвращается при попытке удалить слот,
	// на который есть активные (неотмененные) визиты
	ErrSlotHasActiveVisits = errors.New("slots.service: slot has active visits")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slots.service: invalid input")

	// ErrTxConflict возвращается, когда удаление слота исчерпало повторы
	// сериализуемой транзакции из-за конкурентных бронирований
	ErrTxConflict = errors.New("slots.service: transaction conflict")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots.service: internal error")
)

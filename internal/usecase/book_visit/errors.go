package book_visit

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_visit: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("book_visit: slot not found")

	// ErrSlotNotBookable возвращается, когда слот закрыт для бронирования
	// Проверяется до вместимости: закрытый слот отклоняется даже пустым
	ErrSlotNotBookable = errors.New("book_visit: slot is not bookable")

	// ErrSlotFull возвращается, когда вместимость слота исчерпана
	ErrSlotFull = errors.New("book_visit: slot is at full capacity")

	// ErrTxConflict возвращается, когда повторы сериализуемой транзакции исчерпаны
	// Вызывающая сторона сама решает, повторять ли запрос целиком
	ErrTxConflict = errors.New("book_visit: transaction conflict, retries exhausted")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_visit: internal error")
)

package mailer

import "errors"

var (
	// ErrSendFailed возвращается при ошибке отправки письма через SMTP
	ErrSendFailed = errors.New("mailer: failed to send email")

	// ErrInvalidRecipient возвращается при пустом адресе получателя
	ErrInvalidRecipient = errors.New("mailer: invalid recipient")
)

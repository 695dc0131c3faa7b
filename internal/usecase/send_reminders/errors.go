package send_reminders

import "errors"

var (
	// ErrQueryFailed возвращается, когда не удалось получить визиты окна
	// Единственная ошибка, проваливающая весь запуск: сбои отправки
	// отдельных напоминаний изолируются и только логируются
	ErrQueryFailed = errors.New("send_reminders: failed to query visits")
)

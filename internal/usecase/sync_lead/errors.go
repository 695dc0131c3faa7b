package sync_lead

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках синхронизатора
	ErrInternal = errors.New("sync_lead: internal error")
)

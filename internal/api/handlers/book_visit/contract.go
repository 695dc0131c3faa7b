package book_visit

import (
	"context"

	bookVisit "github.com/visitas-angelim/booking-service/internal/usecase/book_visit"
)

type BookVisitUseCase interface {
	Execute(ctx context.Context, req *bookVisit.Request) (*bookVisit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

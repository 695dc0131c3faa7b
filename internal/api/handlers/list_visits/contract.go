package list_visits

import (
	"context"

	"github.com/visitas-angelim/booking-service/internal/service/visits/models"
)

type VisitService interface {
	List(ctx context.Context, req *models.ListVisitsRequest) (*models.VisitListResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_available_slots

import (
	"context"

	"github.com/visitas-angelim/booking-service/internal/service/slots/models"
)

type SlotService interface {
	ListAvailable(ctx context.Context, req *models.AvailableSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

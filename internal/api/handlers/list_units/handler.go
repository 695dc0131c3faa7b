package list_units

import (
	"context"
	"net/http"
	"time"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/units"
)

type UnitService interface {
	List(ctx context.Context) (*units.UnitListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}

// UnitResponse HTTP model юнита
type UnitResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UnitsListResponse HTTP model списка юнитов
type UnitsListResponse struct {
	Units []*UnitResponse `json:"units"`
	Total int             `json:"total"`
}

type Handler struct {
	service UnitService
	logger  Logger
}

func NewHandler(service UnitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/units
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /units - Failed to list units: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := &UnitsListResponse{
		Units: make([]*UnitResponse, 0, len(result.Units)),
		Total: result.Total,
	}
	for _, u := range result.Units {
		response.Units = append(response.Units, &UnitResponse{
			ID:          u.ID,
			Name:        u.Name,
			Description: u.Description,
			CreatedAt:   u.CreatedAt,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

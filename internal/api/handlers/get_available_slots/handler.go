package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/slots"
	"github.com/visitas-angelim/booking-service/internal/service/slots/models"
)

const (
	msgInvalidDateFilter = "filtro de data inválido, use RFC 3339"
	msgUnitNotFound      = "unidade não encontrada"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/units/{unitId}/available-slots?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	unitID := mux.Vars(r)["unitId"]

	req := &models.AvailableSlotsRequest{UnitID: unitID}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /units/{unitId}/available-slots - Invalid from filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		req.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /units/{unitId}/available-slots - Invalid to filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		req.To = &to
	}

	result, err := h.service.ListAvailable(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrUnitNotFound):
			h.logger.Warn("GET /units/{unitId}/available-slots - Unit not found: unit_id=%s", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, slots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDateFilter)

		default:
			h.logger.Error("GET /units/{unitId}/available-slots - Failed: unit_id=%s, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

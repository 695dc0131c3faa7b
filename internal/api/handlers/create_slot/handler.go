package create_slot

import (
	"errors"
	"net/http"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/slots"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidSlot        = "dados do horário inválidos"
	msgUnitNotFound       = "unidade não encontrada"
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

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid slot data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, slots.ErrUnitNotFound):
			h.logger.Warn("POST /slots - Unit not found: unit_id=%s", req.UnitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		default:
			h.logger.Error("POST /slots - Failed to create slot: unit_id=%s, error=%v", req.UnitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created: slot_id=%s, unit_id=%s", result.ID, result.UnitID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}

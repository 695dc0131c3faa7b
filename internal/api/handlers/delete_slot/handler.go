package delete_slot

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/slots"
)

const (
	msgSlotNotFound  = "horário não encontrado"
	msgSlotHasVisits = "horário possui visitas ativas e não pode ser removido"
	msgTxConflict    = "não foi possível remover o horário, tente novamente"
)

type SlotService interface {
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

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

// Handle DELETE /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	err := h.service.Delete(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{slotId} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrSlotHasActiveVisits):
			h.logger.Warn("DELETE /slots/{slotId} - Slot has active visits: slot_id=%s", slotID)
			handlers.RespondFailedPrecondition(w, msgSlotHasVisits)

		case errors.Is(err, slots.ErrTxConflict):
			h.logger.Warn("DELETE /slots/{slotId} - Concurrent booking conflict: slot_id=%s", slotID)
			handlers.RespondAborted(w, msgTxConflict)

		default:
			h.logger.Error("DELETE /slots/{slotId} - Failed: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{slotId} - Slot deleted: slot_id=%s", slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

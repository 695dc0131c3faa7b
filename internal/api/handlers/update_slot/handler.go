package update_slot

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/slots"
	"github.com/visitas-angelim/booking-service/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidSlot        = "dados do horário inválidos"
	msgSlotNotFound       = "horário não encontrado"
)

type SlotService interface {
	Update(ctx context.Context, id string, req *models.UpdateSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// UpdateSlotRequest HTTP request model, nil-поля не изменяются
type UpdateSlotRequest struct {
	StartTime  *time.Time `json:"startTime,omitempty"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Capacity   *int       `json:"capacity,omitempty"`
	IsBookable *bool      `json:"isBookable,omitempty"`
	Tag        *string    `json:"tag,omitempty"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID         string    `json:"id"`
	UnitID     string    `json:"unitId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Capacity   int       `json:"capacity"`
	IsBookable bool      `json:"isBookable"`
	Tag        *string   `json:"tag,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
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

// Handle PATCH /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{slotId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), slotID, &models.UpdateSlotRequest{
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Capacity:   req.Capacity,
		IsBookable: req.IsBookable,
		Tag:        req.Tag,
	})
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{slotId} - Invalid slot data: slot_id=%s, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{slotId} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("PATCH /slots/{slotId} - Failed: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{slotId} - Slot updated: slot_id=%s", slotID)
	handlers.RespondJSON(w, http.StatusOK, &SlotResponse{
		ID:         result.ID,
		UnitID:     result.UnitID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		Capacity:   result.Capacity,
		IsBookable: result.IsBookable,
		Tag:        result.Tag,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	})
}

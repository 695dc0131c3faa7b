package update_visit_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/api/middleware"
	"github.com/visitas-angelim/booking-service/internal/service/visits"
	"github.com/visitas-angelim/booking-service/internal/service/visits/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidStatus      = "status de visita inválido"
	msgInvalidTransition  = "transição de status não permitida"
	msgVisitNotFound      = "visita não encontrada"
	msgTxConflict         = "não foi possível atualizar a visita, tente novamente"
)

type VisitService interface {
	UpdateStatus(ctx context.Context, visitID string, req *models.UpdateStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type Handler struct {
	service VisitService
	logger  Logger
}

func NewHandler(service VisitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/visits/{visitId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	visitID := mux.Vars(r)["visitId"]

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /visits/{visitId}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.UpdateStatus(r.Context(), visitID, &models.UpdateStatusRequest{Status: req.Status})
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrInvalidStatus):
			h.logger.Warn("PATCH /visits/{visitId}/status - Invalid status: visit_id=%s, status=%s", visitID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, visits.ErrInvalidTransition):
			h.logger.Warn("PATCH /visits/{visitId}/status - Invalid transition: visit_id=%s, status=%s", visitID, req.Status)
			handlers.RespondFailedPrecondition(w, msgInvalidTransition)

		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("PATCH /visits/{visitId}/status - Visit not found: visit_id=%s", visitID)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, visits.ErrTxConflict):
			h.logger.Warn("PATCH /visits/{visitId}/status - Concurrent update conflict: visit_id=%s", visitID)
			handlers.RespondAborted(w, msgTxConflict)

		default:
			h.logger.Error("PATCH /visits/{visitId}/status - Failed: visit_id=%s, error=%v", visitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Смены статуса пишутся в лог вместе с оператором, который их выполнил
	h.logger.Info("PATCH /visits/{visitId}/status - Status updated: visit_id=%s, status=%s, operator=%s",
		visitID, req.Status, middleware.OperatorID(r.Context()))
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

package cancel_visit

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/api/middleware"
	"github.com/visitas-angelim/booking-service/internal/service/visits"
)

const (
	msgVisitNotFound     = "visita não encontrada"
	msgAlreadyFinalState = "visita já está em estado final"
	msgTxConflict        = "não foi possível cancelar a visita, tente novamente"
)

type VisitService interface {
	Cancel(ctx context.Context, visitID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
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

// Handle POST /api/v1/visits/{visitId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	visitID := mux.Vars(r)["visitId"]

	err := h.service.Cancel(r.Context(), visitID)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("POST /visits/{visitId}/cancel - Visit not found: visit_id=%s", visitID)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, visits.ErrInvalidTransition):
			h.logger.Warn("POST /visits/{visitId}/cancel - Already in final state: visit_id=%s", visitID)
			handlers.RespondFailedPrecondition(w, msgAlreadyFinalState)

		case errors.Is(err, visits.ErrTxConflict):
			h.logger.Warn("POST /visits/{visitId}/cancel - Concurrent update conflict: visit_id=%s", visitID)
			handlers.RespondAborted(w, msgTxConflict)

		default:
			h.logger.Error("POST /visits/{visitId}/cancel - Failed: visit_id=%s, error=%v", visitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Отмены пишутся в лог вместе с оператором, который их выполнил
	h.logger.Info("POST /visits/{visitId}/cancel - Visit cancelled: visit_id=%s, operator=%s",
		visitID, middleware.OperatorID(r.Context()))
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

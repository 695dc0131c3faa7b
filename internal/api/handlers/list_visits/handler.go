package list_visits

import (
	"errors"
	"net/http"
	"time"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/visits"
	"github.com/visitas-angelim/booking-service/internal/service/visits/models"
)

const (
	msgInvalidDateFilter   = "filtro de data inválido, use RFC 3339"
	msgInvalidStatusFilter = "filtro de status inválido"
)

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

// Handle GET /api/v1/visits?unitId=...&status=...&from=...&to=...&includeCancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListVisitsRequest{
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if raw := query.Get("unitId"); raw != "" {
		req.UnitID = &raw
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /visits - Invalid from filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		req.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /visits - Invalid to filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		req.To = &to
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrInvalidInput):
			h.logger.Warn("GET /visits - Invalid status filter: %s", query.Get("status"))
			handlers.RespondBadRequest(w, msgInvalidStatusFilter)

		default:
			h.logger.Error("GET /visits - Failed to list visits: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

package create_lead

import (
	"errors"
	"net/http"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/leads"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidLead        = "dados do lead inválidos"
	msgDuplicateEmail     = "já existe um lead com este e-mail"
)

type Handler struct {
	service LeadService
	logger  Logger
}

func NewHandler(service LeadService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/leads
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /leads - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrInvalidInput):
			h.logger.Warn("POST /leads - Invalid lead data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLead)

		case errors.Is(err, leads.ErrDuplicateEmail):
			h.logger.Warn("POST /leads - Duplicate email: email=%s", req.ParentEmail)
			handlers.RespondFailedPrecondition(w, msgDuplicateEmail)

		default:
			h.logger.Error("POST /leads - Failed to create lead: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /leads - Lead created: lead_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}

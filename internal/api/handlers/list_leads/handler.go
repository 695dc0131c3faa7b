package list_leads

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/leads"
	"github.com/visitas-angelim/booking-service/internal/service/leads/models"
)

const (
	msgInvalidStatusFilter = "filtro de status inválido"
	msgInvalidPagination   = "parâmetros de paginação inválidos"

	defaultLimit = 50
	maxLimit     = 200
)

type LeadService interface {
	List(ctx context.Context, req *models.ListLeadsRequest) (*models.LeadListResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LeadResponse HTTP model лида для операторского списка
type LeadResponse struct {
	ID                   string     `json:"id"`
	ParentName           string     `json:"parentName"`
	ParentEmail          string     `json:"parentEmail"`
	ParentPhone          *string    `json:"parentPhone,omitempty"`
	ChildName            *string    `json:"childName,omitempty"`
	ChildAge             *int       `json:"childAge,omitempty"`
	ChildGradeOfInterest *string    `json:"childGradeOfInterest,omitempty"`
	Source               *string    `json:"source,omitempty"`
	Status               string     `json:"status"`
	LastContactDate      *time.Time `json:"lastContactDate,omitempty"`
	NextFollowUpDate     *time.Time `json:"nextFollowUpDate,omitempty"`
	Notes                *string    `json:"notes,omitempty"`
	VisitID              *string    `json:"visitId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// LeadsListResponse HTTP model списка лидов
type LeadsListResponse struct {
	Leads []*LeadResponse `json:"leads"`
	Total int             `json:"total"`
}

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

// Handle GET /api/v1/leads?status=...&limit=...&offset=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListLeadsRequest{Limit: defaultLimit}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			h.logger.Warn("GET /leads - Invalid limit: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidPagination)
			return
		}
		req.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			h.logger.Warn("GET /leads - Invalid offset: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidPagination)
			return
		}
		req.Offset = offset
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrInvalidInput):
			h.logger.Warn("GET /leads - Invalid status filter: %s", query.Get("status"))
			handlers.RespondBadRequest(w, msgInvalidStatusFilter)

		default:
			h.logger.Error("GET /leads - Failed to list leads: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &LeadsListResponse{
		Leads: make([]*LeadResponse, 0, len(result.Leads)),
		Total: result.Total,
	}
	for _, l := range result.Leads {
		response.Leads = append(response.Leads, &LeadResponse{
			ID:                   l.ID,
			ParentName:           l.ParentName,
			ParentEmail:          l.ParentEmail,
			ParentPhone:          l.ParentPhone,
			ChildName:            l.ChildName,
			ChildAge:             l.ChildAge,
			ChildGradeOfInterest: l.ChildGradeOfInterest,
			Source:               l.Source,
			Status:               l.Status,
			LastContactDate:      l.LastContactDate,
			NextFollowUpDate:     l.NextFollowUpDate,
			Notes:                l.Notes,
			VisitID:              l.VisitID,
			CreatedAt:            l.CreatedAt,
			UpdatedAt:            l.UpdatedAt,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

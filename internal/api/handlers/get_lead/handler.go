package get_lead

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/leads"
	"github.com/visitas-angelim/booking-service/internal/service/leads/models"
)

const msgLeadNotFound = "lead não encontrado"

type LeadService interface {
	GetByID(ctx context.Context, id string) (*models.LeadResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LeadResponse HTTP response model
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

// Handle GET /api/v1/leads/{leadId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	leadID := mux.Vars(r)["leadId"]

	result, err := h.service.GetByID(r.Context(), leadID)
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrLeadNotFound):
			h.logger.Warn("GET /leads/{leadId} - Lead not found: lead_id=%s", leadID)
			handlers.RespondNotFound(w, msgLeadNotFound)

		default:
			h.logger.Error("GET /leads/{leadId} - Failed: lead_id=%s, error=%v", leadID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &LeadResponse{
		ID:                   result.ID,
		ParentName:           result.ParentName,
		ParentEmail:          result.ParentEmail,
		ParentPhone:          result.ParentPhone,
		ChildName:            result.ChildName,
		ChildAge:             result.ChildAge,
		ChildGradeOfInterest: result.ChildGradeOfInterest,
		Source:               result.Source,
		Status:               result.Status,
		LastContactDate:      result.LastContactDate,
		NextFollowUpDate:     result.NextFollowUpDate,
		Notes:                result.Notes,
		VisitID:              result.VisitID,
		CreatedAt:            result.CreatedAt,
		UpdatedAt:            result.UpdatedAt,
	})
}

package get_visit

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/visits"
	"github.com/visitas-angelim/booking-service/internal/service/visits/models"
)

const msgVisitNotFound = "visita não encontrada"

type VisitService interface {
	GetByID(ctx context.Context, id string) (*models.VisitResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// VisitResponse HTTP model визита
type VisitResponse struct {
	ID                   string    `json:"id"`
	ParentName           string    `json:"parentName"`
	ParentEmail          string    `json:"parentEmail"`
	ParentPhone          *string   `json:"parentPhone,omitempty"`
	ChildName            *string   `json:"childName,omitempty"`
	ChildAge             *int      `json:"childAge,omitempty"`
	ChildGradeOfInterest *string   `json:"childGradeOfInterest,omitempty"`
	UnitID               string    `json:"unitId"`
	SlotID               string    `json:"slotId"`
	VisitDateTime        time.Time `json:"visitDateTime"`
	Status               string    `json:"status"`
	CanBeCancelled       bool      `json:"canBeCancelled"`
	Notes                *string   `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
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

// Handle GET /api/v1/visits/{visitId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	visitID := mux.Vars(r)["visitId"]

	result, err := h.service.GetByID(r.Context(), visitID)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("GET /visits/{visitId} - Visit not found: visit_id=%s", visitID)
			handlers.RespondNotFound(w, msgVisitNotFound)

		default:
			h.logger.Error("GET /visits/{visitId} - Failed: visit_id=%s, error=%v", visitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &VisitResponse{
		ID:                   result.ID,
		ParentName:           result.ParentName,
		ParentEmail:          result.ParentEmail,
		ParentPhone:          result.ParentPhone,
		ChildName:            result.ChildName,
		ChildAge:             result.ChildAge,
		ChildGradeOfInterest: result.ChildGradeOfInterest,
		UnitID:               result.UnitID,
		SlotID:               result.SlotID,
		VisitDateTime:        result.VisitDateTime,
		Status:               result.Status,
		CanBeCancelled:       result.CanBeCancelled,
		Notes:                result.Notes,
		CreatedAt:            result.CreatedAt,
	})
}

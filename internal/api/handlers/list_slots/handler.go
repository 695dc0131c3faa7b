package list_slots

import (
	"context"
	"net/http"
	"time"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	"github.com/visitas-angelim/booking-service/internal/service/slots/models"
)

const msgInvalidDateFilter = "filtro de data inválido, use RFC 3339"

type SlotService interface {
	List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SlotResponse HTTP model операторского слота с загрузкой
type SlotResponse struct {
	ID          string    `json:"id"`
	UnitID      string    `json:"unitId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Capacity    int       `json:"capacity"`
	IsBookable  bool      `json:"isBookable"`
	Tag         *string   `json:"tag,omitempty"`
	BookedCount int       `json:"bookedCount"`
	SpotsLeft   int       `json:"spotsLeft"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SlotsListResponse HTTP model списка слотов
type SlotsListResponse struct {
	Slots []*SlotResponse `json:"slots"`
	Total int             `json:"total"`
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

// Handle GET /api/v1/slots?unitId=...&from=...&to=...&onlyBookable=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListSlotsRequest{
		OnlyBookable: query.Get("onlyBookable") == "true",
	}

	if raw := query.Get("unitId"); raw != "" {
		req.UnitID = &raw
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid from filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		req.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid to filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		req.To = &to
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /slots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := &SlotsListResponse{
		Slots: make([]*SlotResponse, 0, len(result.Slots)),
		Total: result.Total,
	}
	for _, s := range result.Slots {
		response.Slots = append(response.Slots, &SlotResponse{
			ID:          s.ID,
			UnitID:      s.UnitID,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Capacity:    s.Capacity,
			IsBookable:  s.IsBookable,
			Tag:         s.Tag,
			BookedCount: s.BookedCount,
			SpotsLeft:   s.SpotsLeft,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

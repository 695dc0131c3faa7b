package book_visit

import (
	"errors"
	"net/http"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	bookVisit "github.com/visitas-angelim/booking-service/internal/usecase/book_visit"
	"github.com/visitas-angelim/booking-service/pkg/metrics"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidInput       = "dados obrigatórios ausentes ou inválidos"
	msgSlotNotFound       = "horário de visita não encontrado"
	msgSlotNotBookable    = "este horário não está aberto para agendamento"
	msgSlotFull           = "este horário já está lotado, escolha outro"
	msgTxConflict         = "não foi possível concluir o agendamento, tente novamente"
)

type Handler struct {
	useCase BookVisitUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase BookVisitUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/visits/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /visits/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookVisit.ErrInvalidInput):
			h.logger.Warn("POST /visits/book - Invalid input: %v", err)
			h.metrics.IncBooking("rejected")
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookVisit.ErrSlotNotFound):
			h.logger.Warn("POST /visits/book - Slot not found: slot_id=%s", req.SlotID)
			h.metrics.IncBooking("rejected")
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookVisit.ErrSlotNotBookable):
			h.logger.Warn("POST /visits/book - Slot not bookable: slot_id=%s", req.SlotID)
			h.metrics.IncBooking("rejected")
			handlers.RespondFailedPrecondition(w, msgSlotNotBookable)

		case errors.Is(err, bookVisit.ErrSlotFull):
			h.logger.Warn("POST /visits/book - Slot full: slot_id=%s", req.SlotID)
			h.metrics.IncBooking("rejected")
			handlers.RespondResourceExhausted(w, msgSlotFull)

		case errors.Is(err, bookVisit.ErrTxConflict):
			h.logger.Warn("POST /visits/book - Transaction conflict: slot_id=%s", req.SlotID)
			h.metrics.IncBooking("failed")
			handlers.RespondAborted(w, msgTxConflict)

		default:
			h.logger.Error("POST /visits/book - Failed to book visit: slot_id=%s, error=%v", req.SlotID, err)
			h.metrics.IncBooking("failed")
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncBooking("booked")
	h.logger.Info("POST /visits/book - Visit booked: visit_id=%s, slot_id=%s", result.VisitID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

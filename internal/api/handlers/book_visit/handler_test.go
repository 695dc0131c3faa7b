package book_visit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
	bookVisit "github.com/visitas-angelim/booking-service/internal/usecase/book_visit"
)

type fakeUseCase struct {
	resp *bookVisit.Response
	err  error
	got  *bookVisit.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *bookVisit.Request) (*bookVisit.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/visits/book", &buf)
	rec := httptest.NewRecorder()

	h := NewHandler(uc, nil, noopLogger{})
	h.Handle(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var envelope handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"parentName":  "Maria Silva",
		"parentEmail": "maria@example.com",
		"unitId":      "angelim-centro",
		"slotId":      "slot-1",
	}
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &bookVisit.Response{
		VisitID:       "visit-1",
		UnitID:        "angelim-centro",
		SlotID:        "slot-1",
		VisitDateTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Status:        "scheduled",
	}}

	rec := doRequest(t, uc, validBody())

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp BookVisitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "visit-1", resp.VisitID)
	assert.Equal(t, "scheduled", resp.Status)

	require.NotNil(t, uc.got)
	assert.Equal(t, "maria@example.com", uc.got.ParentEmail)
}

func TestHandle_MalformedBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handlers.CodeInvalidArgument, decodeError(t, rec).Error.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", bookVisit.ErrInvalidInput, http.StatusBadRequest, handlers.CodeInvalidArgument},
		{"slot not found", bookVisit.ErrSlotNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{"slot not bookable", bookVisit.ErrSlotNotBookable, http.StatusUnprocessableEntity, handlers.CodeFailedPrecondition},
		{"slot full", bookVisit.ErrSlotFull, http.StatusConflict, handlers.CodeResourceExhausted},
		{"tx conflict", bookVisit.ErrTxConflict, http.StatusConflict, handlers.CodeAborted},
		{"internal", bookVisit.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, validBody())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Error.Code)
		})
	}
}

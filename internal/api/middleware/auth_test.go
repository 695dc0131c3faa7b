package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
)

type noopLogger struct{}

func (noopLogger) Warn(string, ...interface{}) {}

func TestOperatorAuth_PassesOperatorIDThroughContext(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = OperatorID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/visits", nil)
	req.Header.Set(OperatorIDHeader, "op-42")
	rec := httptest.NewRecorder()

	OperatorAuth(noopLogger{})(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "op-42", seen)
}

func TestOperatorAuth_RejectsMissingHeader(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/visits", nil)
	rec := httptest.NewRecorder()

	OperatorAuth(noopLogger{})(next).ServeHTTP(rec, req)

	assert.False(t, called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.CodeUnauthenticated, resp.Error.Code)
}

func TestOperatorAuth_RejectsBlankHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/visits", nil)
	req.Header.Set(OperatorIDHeader, "   ")
	rec := httptest.NewRecorder()

	OperatorAuth(noopLogger{})(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOperatorID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", OperatorID(req.Context()))
}

// Package handlers общие помощники HTTP слоя: декодирование JSON и
// единый конверт ошибок со стабильным машинным кодом
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Стабильные коды ошибок API; фронтенд ветвится по коду, не по тексту
const (
	CodeInvalidArgument    = "invalid_argument"
	CodeNotFound           = "not_found"
	CodeFailedPrecondition = "failed_precondition"
	CodeResourceExhausted  = "resource_exhausted"
	CodeAborted            = "aborted"
	CodeUnauthenticated    = "unauthenticated"
	CodeInternal           = "internal"
)

// ErrorBody тело ошибки в конверте
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse конверт ошибки API
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrEmptyBody возвращается при пустом теле запроса
var ErrEmptyBody = errors.New("handlers: empty request body")

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// RespondJSON пишет успешный JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ошибку в стандартном конверте
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// RespondBadRequest 400 invalid_argument
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeInvalidArgument, message)
}

// RespondNotFound 404 not_found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondFailedPrecondition 422 failed_precondition
func RespondFailedPrecondition(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, CodeFailedPrecondition, message)
}

// RespondResourceExhausted 409 resource_exhausted
func RespondResourceExhausted(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeResourceExhausted, message)
}

// RespondAborted 409 aborted: транзакция не прошла после ретраев,
// клиенту безопасно повторить запрос
func RespondAborted(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeAborted, message)
}

// RespondUnauthorized 401 unauthenticated
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthenticated, message)
}

// RespondInternalError 500 internal без деталей наружу
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/visitas-angelim/booking-service/internal/api/handlers"
)

// OperatorIDHeader заголовок с идентификатором оператора
// Полноценная аутентификация живет на внешнем шлюзе; здесь только
// проверка, что личность оператора вообще передана
const OperatorIDHeader = "X-Operator-ID"

type operatorCtxKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// OperatorAuth middleware операторских маршрутов: требует непустой
// X-Operator-ID и кладет его в контекст запроса
func OperatorAuth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operatorID := strings.TrimSpace(r.Header.Get(OperatorIDHeader))
			if operatorID == "" {
				logger.Warn("%s %s - missing %s header", r.Method, r.URL.Path, OperatorIDHeader)
				handlers.RespondUnauthorized(w, "operator identity required")
				return
			}

			ctx := context.WithValue(r.Context(), operatorCtxKey{}, operatorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperatorID достает идентификатор оператора из контекста
func OperatorID(ctx context.Context) string {
	id, _ := ctx.Value(operatorCtxKey{}).(string)
	return id
}

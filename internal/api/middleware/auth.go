package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
)

type ctxKey string

const userIDKey ctxKey = "userID"

const (
	headerUserID     = "X-User-ID"
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
)

// Auth проверяет заголовок X-User-ID и кладет ID пользователя в контекст
// Сервис работает за API gateway, который отвечает за аутентификацию
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(headerUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

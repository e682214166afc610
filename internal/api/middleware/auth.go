// Package middleware миддлвари HTTP-слоя: аутентификация и метрики.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

const userIDHeader = "X-User-ID"

type contextKey string

const userIDContextKey contextKey = "userID"

// Auth проверяет наличие заголовка X-User-ID и кладет ID пользователя
// в контекст запроса. Аутентификацию выполняет API-шлюз, сервис
// доверяет заголовку.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUserID := r.Header.Get(userIDHeader)
		if rawUserID == "" {
			respondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil || userID <= 0 {
			respondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
}

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
)

// BearerTokenMiddleware создает middleware для проверки статического bearer токена.
// Пустой token отключает проверку.
func BearerTokenMiddleware(logger *slog.Logger, token string) func(http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(r.Context(), "Missing Authorization header", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "missing token")
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.WarnContext(r.Context(), "Invalid Authorization header format")
				writeError(w, http.StatusUnauthorized, "invalid token format")
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), expected) != 1 {
				logger.WarnContext(r.Context(), "Invalid bearer token", "remote_addr", r.RemoteAddr)
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

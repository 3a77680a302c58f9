// Файл: internal/api/middleware.go
package api

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
)

// AuthMiddleware проверяет токен API в заголовке Authorization (Bearer)
// или X-Api-Token. Пустой токен в конфигурации закрывает API полностью.
func AuthMiddleware(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secretKey == "" {
				http.Error(w, "Service Unavailable: API token is not configured", http.StatusServiceUnavailable)
				return
			}

			token := r.Header.Get("X-Api-Token")
			if token == "" {
				token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}
			if token == "" {
				http.Error(w, "Unauthorized: Missing API token", http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(secretKey)) != 1 {
				log.Printf("AuthMiddleware: неверный токен API от %s", r.RemoteAddr)
				http.Error(w, "Unauthorized: Invalid API token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

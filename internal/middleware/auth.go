// Package middleware содержит HTTP middleware заглушки административного API.
package middleware

import (
	"context"
	"crypto/hmac"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

const adminIDKey contextKey = "adminID"

// AuthMiddleware проверяет bearer-токен администратора.
// Учётные данные выдаёт и прикрепляет внешний HTTP-адаптер клиента,
// заглушке достаточно сверить токен.
type AuthMiddleware struct {
	token   string
	adminID string
}

// NewAuthMiddleware создаёт middleware с указанным токеном.
// Пустой токен отключает проверку: так заглушку удобно гонять локально.
func NewAuthMiddleware(token, adminID string) *AuthMiddleware {
	if adminID == "" {
		adminID = "admin"
	}
	return &AuthMiddleware{
		token:   token,
		adminID: adminID,
	}
}

// Middleware проверяет заголовок Authorization и кладёт идентификатор
// администратора в контекст запроса.
func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.token != "" {
			header := r.Header.Get("Authorization")
			got, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || !hmac.Equal([]byte(got), []byte(a.token)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid or missing token"})
				return
			}
		}

		ctx := context.WithValue(r.Context(), adminIDKey, a.adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminIDFromContext извлекает идентификатор администратора из контекста запроса.
func GetAdminIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(adminIDKey).(string)
	return id, ok
}

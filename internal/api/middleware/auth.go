package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/portico-living/court-booking-service/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

// Auth извлекает аутентифицированного пользователя из заголовков запроса.
// Аутентификация выполняется снаружи (API gateway жилого комплекса); сервис
// доверяет заголовкам и только проверяет их форму. Неизвестная роль
// приводится к resident, а не отклоняется.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(headerUserID)
		if userIDStr == "" {
			respondUnauthorized(w, "missing X-User-ID header")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			respondUnauthorized(w, "invalid X-User-ID header")
			return
		}

		role := domain.RoleResident
		if r.Header.Get(headerUserRole) == string(domain.RoleAdmin) {
			role = domain.RoleAdmin
		}

		identity := domain.Identity{UserID: userID, Role: role}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity возвращает аутентифицированного пользователя из контекста
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

// respondUnauthorized локальный ответ 401, чтобы не тянуть пакет handlers
// (он импортирует middleware — был бы цикл)
func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
}

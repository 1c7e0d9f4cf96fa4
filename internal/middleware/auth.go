package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jfuentes/recipebox/internal/logger"
	"github.com/jfuentes/recipebox/internal/service"
)

type contextKey string

const UserIDKey contextKey = "user_id"

type AuthMiddleware struct {
	tokens *service.TokenService
	log    *logger.Logger
}

func NewAuthMiddleware(tokens *service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		log:    logger.New("auth-middleware"),
	}
}

func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		token := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = authHeader[7:]
		} else if strings.HasPrefix(authHeader, "Token ") {
			token = authHeader[6:]
		}

		user, err := m.tokens.Resolve(r.Context(), token)
		if err != nil {
			m.log.Debug("Rejected token: %v", err)
			http.Error(w, "Invalid or unknown token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"produce-backend/internal/services"
	"produce-backend/internal/session"
	"produce-backend/pkg/utils"
)

// SessionResolver maps a bearer token to a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

type AuthMiddleware struct {
	resolver SessionResolver
}

func NewAuthMiddleware(resolver SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate is a middleware that resolves the bearer token to a session
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(w, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		s, err := m.resolver.Resolve(r.Context(), parts[1])
		if errors.Is(err, services.ErrInvalidSession) {
			utils.Error(w, http.StatusUnauthorized, "Session expired. Please log in again.")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusServiceUnavailable, "Session store unavailable")
			return
		}

		if h := holderFrom(r.Context()); h != nil {
			h.s = s
		}
		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
	})
}

// SessionFromRequest returns the session attached by Authenticate
func SessionFromRequest(r *http.Request) (*session.Session, bool) {
	return session.FromContext(r.Context())
}

type sessionHolderKey struct{}

// sessionHolder lets outer middleware see the session resolved further in.
type sessionHolder struct {
	s *session.Session
}

func withSessionHolder(ctx context.Context, h *sessionHolder) context.Context {
	return context.WithValue(ctx, sessionHolderKey{}, h)
}

func holderFrom(ctx context.Context) *sessionHolder {
	h, _ := ctx.Value(sessionHolderKey{}).(*sessionHolder)
	return h
}

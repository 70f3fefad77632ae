// Package session holds the caller's upstream credentials. A session is
// created on login and dropped on logout or when the upstream API answers 401.
package session

import (
	"context"
	"errors"
	"time"

	"produce-backend/internal/models"
	"produce-backend/internal/timeutil"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Session is the upstream bearer token and user for one login.
type Session struct {
	ID        string              `json:"id"`
	Token     string              `json:"token"`
	User      models.UpstreamUser `json:"user"`
	CreatedAt time.Time           `json:"created_at"`
}

func New(token string, user models.UpstreamUser) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: timeutil.Now(),
	}
}

// Store persists sessions between requests.
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type ctxKey struct{}

// WithSession attaches s to ctx
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the request's session, if any
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

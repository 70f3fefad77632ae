package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"produce-backend/internal/auth"
	"produce-backend/internal/cache"
	"produce-backend/internal/config"
	"produce-backend/internal/session"
	"produce-backend/internal/upstream"
)

var (
	ErrInvalidSession     = errors.New("session expired or invalid")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService turns upstream logins into local sessions and hands out
// session-bound upstream clients.
type AuthService struct {
	cfg   *config.Config
	store session.Store
	jwt   *auth.JWTManager
	opts  []upstream.Option
}

func NewAuthService(cfg *config.Config, store session.Store, jwt *auth.JWTManager, opts ...upstream.Option) *AuthService {
	return &AuthService{cfg: cfg, store: store, jwt: jwt, opts: opts}
}

// Login authenticates upstream and returns a signed token for the new session.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, *session.Session, error) {
	res, err := upstream.NewClient(a.cfg, nil, a.opts...).Login(ctx, email, password)
	if errors.Is(err, upstream.ErrUnauthorized) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	s := session.New(res.Token, res.User)
	if err := a.store.Save(ctx, s, a.cfg.SessionTTL()); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	token, err := a.jwt.GenerateToken(s)
	if err != nil {
		a.store.Delete(ctx, s.ID)
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	log.Printf("[Auth] Login: %s (%s)", res.User.Name, res.User.Role)
	return token, s, nil
}

// Logout ends the session here and, best effort, upstream.
func (a *AuthService) Logout(ctx context.Context, s *session.Session) error {
	if err := a.Client(s).Logout(ctx); err != nil && !errors.Is(err, upstream.ErrUnauthorized) {
		log.Printf("[Auth] Upstream logout failed for %s: %v", s.User.Name, err)
	}
	a.Invalidate(ctx, s)
	return nil
}

// Resolve maps a bearer token to its live session.
func (a *AuthService) Resolve(ctx context.Context, token string) (*session.Session, error) {
	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}
	s, err := a.store.Get(ctx, claims.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Invalidate drops the session and its cached rows.
func (a *AuthService) Invalidate(ctx context.Context, s *session.Session) {
	if err := a.store.Delete(ctx, s.ID); err != nil {
		log.Printf("[Auth] Failed to delete session %s: %v", s.ID, err)
	}
	cache.InvalidateSessionRows(ctx, s.ID)
}

// Client is an upstream client for s that clears s on 401.
func (a *AuthService) Client(s *session.Session) *upstream.Client {
	opts := append([]upstream.Option{upstream.WithUnauthorizedHook(a.Invalidate)}, a.opts...)
	return upstream.NewClient(a.cfg, s, opts...)
}

// Source adapts Client to the report service.
func (a *AuthService) Source(s *session.Session) RowSource {
	return a.Client(s)
}

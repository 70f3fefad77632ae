package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"produce-backend/internal/models"
	"produce-backend/internal/services"
	"produce-backend/internal/session"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	sessions map[string]*session.Session
	err      error
}

func (f fakeResolver) Resolve(ctx context.Context, token string) (*session.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[token]
	if !ok {
		return nil, services.ErrInvalidSession
	}
	return s, nil
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	s, ok := SessionFromRequest(r)
	if !ok {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}
	w.Write([]byte(s.User.Name))
}

func TestAuthenticate(t *testing.T) {
	s := session.New("up", models.UpstreamUser{Name: "Nimal"})
	m := NewAuthMiddleware(fakeResolver{sessions: map[string]*session.Session{"good": s}})
	h := m.Authenticate(http.HandlerFunc(echoUser))

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Token good", http.StatusUnauthorized},
		{"Bearer bad", http.StatusUnauthorized},
		{"Bearer good", http.StatusOK},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/reports/sales", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, c.status, rec.Code, c.header)
		if c.status == http.StatusOK {
			assert.Equal(t, "Nimal", rec.Body.String())
		}
	}
}

func TestAuthenticateStoreFailure(t *testing.T) {
	m := NewAuthMiddleware(fakeResolver{err: errors.New("redis down")})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	m.Authenticate(http.HandlerFunc(echoUser)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAPILoggingRecordsUserAndStatus(t *testing.T) {
	var mu sync.Mutex
	var lines []string

	m := &APILoggingMiddleware{
		logChan: make(chan RequestLog, 10),
		done:    make(chan struct{}),
		printf: func(format string, v ...any) {
			mu.Lock()
			lines = append(lines, fmt.Sprintf(format, v...))
			mu.Unlock()
		},
	}
	go m.asyncLogWriter()

	s := session.New("up", models.UpstreamUser{Name: "Nimal"})
	auth := NewAuthMiddleware(fakeResolver{sessions: map[string]*session.Session{"good": s}})
	h := m.Handler(auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/reports/sales?date=2025-03-14", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	m.Close()

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "GET /api/reports/sales 418")
	assert.Contains(t, lines[0], "user=Nimal")
}

func TestPanicRecovery(t *testing.T) {
	h := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestRouteLabelUsesTemplate(t *testing.T) {
	var label string
	r := mux.NewRouter()
	r.HandleFunc("/api/reports/customer-bill/{bill}", func(w http.ResponseWriter, req *http.Request) {
		label = routeLabel(req)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/reports/customer-bill/B-77", nil))
	assert.Equal(t, "/api/reports/customer-bill/{bill}", label)

	assert.Equal(t, "unmatched", routeLabel(httptest.NewRequest(http.MethodGet, "/", nil)))
}

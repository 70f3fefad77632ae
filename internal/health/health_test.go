package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckBasicFollowsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	h := NewHealthChecker(nil, srv.URL)
	h.redisCheck = func() bool { return false }

	s := h.CheckBasic(context.Background())
	assert.Equal(t, StatusHealthy, s.Status)
	assert.Equal(t, StatusHealthy, s.Upstream.Status)
	assert.Equal(t, StatusDisabled, s.Redis.Status)
	assert.Equal(t, StatusDisabled, s.Database.Status)
	assert.Nil(t, s.Host)
}

func TestCheckBasicUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	h := NewHealthChecker(nil, url)
	h.redisCheck = func() bool { return true }

	s := h.CheckBasic(context.Background())
	assert.Equal(t, StatusUnhealthy, s.Status)
	assert.NotEmpty(t, s.Upstream.Error)
	assert.Equal(t, StatusHealthy, s.Redis.Status)
}

func TestCheckDetailedHasHostStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	h := NewHealthChecker(nil, srv.URL)
	h.redisCheck = func() bool { return false }
	s := h.CheckDetailed(context.Background())
	assert.NotNil(t, s.Host)
}

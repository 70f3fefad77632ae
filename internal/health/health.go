package health

import (
	"context"
	"net/http"
	"strings"
	"time"

	"produce-backend/internal/cache"

	"github.com/dustin/go-humanize"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

// HealthChecker probes the upstream API and the optional stores. Only the
// upstream API decides readiness; Redis and Postgres degrade gracefully.
type HealthChecker struct {
	db          *pgxpool.Pool
	upstreamURL string
	client      *http.Client
	redisCheck  func() bool
	started     time.Time
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Upstream ComponentHealth `json:"upstream"`
	Redis    ComponentHealth `json:"redis"`
	Database ComponentHealth `json:"database"`
	Host     *HostStats      `json:"host,omitempty"`
	Uptime   string          `json:"uptime,omitempty"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskFree      string  `json:"disk_free"`
}

// NewHealthChecker: db may be nil when the audit database is disabled.
func NewHealthChecker(db *pgxpool.Pool, upstreamURL string) *HealthChecker {
	return &HealthChecker{
		db:          db,
		upstreamURL: upstreamURL,
		client:      &http.Client{Timeout: 3 * time.Second},
		redisCheck:  cache.IsHealthy,
		started:     time.Now(),
	}
}

func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	up := h.checkUpstream(ctx)

	status := StatusHealthy
	if up.Status != StatusHealthy {
		status = StatusUnhealthy
	}

	return HealthStatus{
		Status:   status,
		Upstream: up,
		Redis:    h.checkRedis(),
		Database: h.checkDatabase(ctx),
	}
}

// CheckDetailed adds host resource usage.
func (h *HealthChecker) CheckDetailed(ctx context.Context) HealthStatus {
	s := h.CheckBasic(ctx)
	s.Host = hostStats()
	s.Uptime = strings.TrimSpace(humanize.RelTime(h.started, time.Now(), "", ""))
	return s
}

// checkUpstream: any HTTP answer means the API is reachable.
func (h *HealthChecker) checkUpstream(ctx context.Context) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.upstreamURL, nil)
	if err != nil {
		return ComponentHealth{Status: StatusUnhealthy, Error: err.Error()}
	}
	resp, err := h.client.Do(req)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return ComponentHealth{Status: StatusUnhealthy, ResponseTime: elapsed, Error: err.Error()}
	}
	resp.Body.Close()
	return ComponentHealth{Status: StatusHealthy, ResponseTime: elapsed}
}

func (h *HealthChecker) checkRedis() ComponentHealth {
	start := time.Now()
	if !h.redisCheck() {
		return ComponentHealth{Status: StatusDisabled}
	}
	return ComponentHealth{Status: StatusHealthy, ResponseTime: time.Since(start).Milliseconds()}
}

func (h *HealthChecker) checkDatabase(ctx context.Context) ComponentHealth {
	if h.db == nil {
		return ComponentHealth{Status: StatusDisabled}
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{
			Status:       StatusUnhealthy,
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ComponentHealth{
		Status:       StatusHealthy,
		ResponseTime: responseTime,
	}
}

func hostStats() *HostStats {
	stats := &HostStats{}

	if cpuPercents, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(cpuPercents) > 0 {
		stats.CPUPercent = cpuPercents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = memStats.UsedPercent
		stats.MemoryUsed = humanize.Bytes(memStats.Used)
		stats.MemoryTotal = humanize.Bytes(memStats.Total)
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = diskStats.UsedPercent
		stats.DiskFree = humanize.Bytes(diskStats.Free)
	}
	return stats
}

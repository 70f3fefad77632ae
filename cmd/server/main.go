package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"produce-backend/internal/auth"
	"produce-backend/internal/cache"
	"produce-backend/internal/config"
	"produce-backend/internal/database"
	"produce-backend/internal/db"
	"produce-backend/internal/handlers"
	"produce-backend/internal/health"
	h "produce-backend/internal/http"
	"produce-backend/internal/middleware"
	"produce-backend/internal/models"
	"produce-backend/internal/repositories"
	"produce-backend/internal/services"
	"produce-backend/internal/session"
	"produce-backend/internal/timeutil"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the config file")
	migrationsDir := flag.String("migrations", "migrations", "directory holding the SQL migrations")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	timeutil.SetZone(cfg.Business.Timezone)

	defaultLayout, err := models.ParseLayout(cfg.Business.Layout)
	if err != nil {
		log.Fatalf("Invalid business.layout: %v", err)
	}

	// Sessions live in Redis when it is reachable, in memory otherwise
	var store session.Store
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (sessions kept in memory, row cache off)", err)
		store = session.NewMemoryStore()
	} else {
		log.Println("[Redis] Cache connected successfully")
		store = session.NewRedisStore(cache.GetClient())
	}
	defer cache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pool, logs := openReportLog(ctx, cfg, *migrationsDir)
	archive, err := services.NewArchiveServiceFromConfig(ctx, cfg)
	cancel()
	if err != nil {
		log.Printf("[Archive] Disabled: %v", err)
		archive = nil
	}
	if pool != nil {
		defer pool.Close()
	}

	printer := services.NewPrinterService(cfg.Printer.URL, cfg.Printer.Copies, cfg.PrinterTimeout())
	if !printer.Enabled() {
		log.Println("[Printer] No print server configured, thermal printing disabled")
	}

	authService := services.NewAuthService(cfg, store, auth.NewJWTManager(cfg))
	reportService := services.NewReportService(authService.Source, logs, archive, printer, services.Business{
		Name:    cfg.Business.Name,
		Address: cfg.Business.Address,
		Phone:   cfg.Business.Phone,
	}, cfg.RowCacheTTL())

	apiLogging := middleware.NewAPILoggingMiddleware()
	defer apiLogging.Close()

	router := h.NewRouter(h.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Report:  handlers.NewReportHandler(reportService, defaultLayout),
		Printer: handlers.NewPrinterHandler(reportService, defaultLayout),
		Health:  handlers.NewHealthHandler(health.NewHealthChecker(pool, cfg.Upstream.BaseURL)),
	}, middleware.NewAuthMiddleware(authService), apiLogging)

	corsMiddleware := middleware.NewCORS(cfg)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           middleware.PanicRecovery(corsMiddleware(router)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s (upstream: %s)", server.Addr, cfg.Upstream.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// openReportLog connects the audit database and applies migrations. A nil
// store disables the audit log without affecting report generation.
func openReportLog(ctx context.Context, cfg *config.Config, migrationsDir string) (*pgxpool.Pool, services.ReportLogStore) {
	if !cfg.Database.Enabled {
		log.Println("[DB] Report log disabled (no database configured)")
		return nil, nil
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Printf("[DB] Report log disabled: %v", err)
		return nil, nil
	}
	log.Printf("Connected to database: %s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	log.Println("Running database migrations...")
	if err := database.NewMigrator(pool, migrationsDir).RunMigrations(ctx); err != nil {
		log.Printf("[DB] Migrations failed, report log disabled: %v", err)
		pool.Close()
		return nil, nil
	}
	return pool, repositories.NewReportLogRepository(pool)
}

package http

import (
	"produce-backend/internal/handlers"
	"produce-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Report  *handlers.ReportHandler
	Printer *handlers.PrinterHandler
	Health  *handlers.HealthHandler
}

func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware, apiLogging *middleware.APILoggingMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	if apiLogging != nil {
		r.Use(apiLogging.Handler)
	}

	// Health and metrics (no auth)
	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")

	authAPI := r.PathPrefix("/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/logout", h.Auth.Logout).Methods("POST")
	authAPI.HandleFunc("/me", h.Auth.Me).Methods("GET")

	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/customer-bill/{bill}", h.Report.CustomerBill).Methods("GET")
	reportsAPI.HandleFunc("/supplier-bill/{code}", h.Report.SupplierBill).Methods("GET")
	reportsAPI.HandleFunc("/sales", h.Report.Sales).Methods("GET")
	reportsAPI.HandleFunc("/logs", h.Report.Logs).Methods("GET")

	printAPI := r.PathPrefix("/api/print").Subrouter()
	printAPI.Use(authMiddleware.Authenticate)
	printAPI.HandleFunc("/customer-bill/{bill}", h.Printer.PrintCustomerBill).Methods("POST")
	printAPI.HandleFunc("/supplier-bill/{code}", h.Printer.PrintSupplierBill).Methods("POST")

	return r
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"produce-backend/internal/middleware"
	"produce-backend/internal/models"
	"produce-backend/internal/services"
	"produce-backend/internal/timeutil"

	"github.com/gorilla/mux"
)

type PrinterHandler struct {
	Reports       *services.ReportService
	DefaultLayout models.Layout
}

func NewPrinterHandler(rs *services.ReportService, defaultLayout models.Layout) *PrinterHandler {
	return &PrinterHandler{Reports: rs, DefaultLayout: defaultLayout}
}

// PrintRequest is the optional body of a print call. Empty fields fall back
// to the configured defaults.
type PrintRequest struct {
	Size       string `json:"size"`
	Loan       bool   `json:"loan"`
	Settlement string `json:"settlement"`
	Date       string `json:"date"`
	Copies     int    `json:"copies"`
}

func decodePrintRequest(r *http.Request) (PrintRequest, error) {
	var req PrintRequest
	if r.ContentLength == 0 {
		return req, nil
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return req, err
}

func (h *PrinterHandler) layout(size string) (models.Layout, error) {
	if size == "" {
		return h.DefaultLayout, nil
	}
	return models.ParseLayout(size)
}

// PrintCustomerBill handles POST /api/print/customer-bill/{bill}
func (h *PrinterHandler) PrintCustomerBill(w http.ResponseWriter, r *http.Request) {
	req, err := decodePrintRequest(r)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	layout, err := h.layout(req.Size)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	s, _ := middleware.SessionFromRequest(r)
	report, err := h.Reports.CustomerBill(ctx, s, mux.Vars(r)["bill"], models.CustomerMode(layout, req.Loan))
	if err != nil {
		writeError(w, err)
		return
	}
	h.print(ctx, w, r, report, req.Copies)
}

// PrintSupplierBill handles POST /api/print/supplier-bill/{code}
func (h *PrinterHandler) PrintSupplierBill(w http.ResponseWriter, r *http.Request) {
	req, err := decodePrintRequest(r)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	layout, err := h.layout(req.Size)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	settlement, err := models.ParseSettlement(req.Settlement)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	s, _ := middleware.SessionFromRequest(r)
	report, err := h.Reports.SupplierBill(ctx, s, mux.Vars(r)["code"], date, models.SupplierMode(layout, settlement))
	if err != nil {
		writeError(w, err)
		return
	}
	h.print(ctx, w, r, report, req.Copies)
}

func (h *PrinterHandler) print(ctx context.Context, w http.ResponseWriter, r *http.Request, report *services.Report, copies int) {
	s, _ := middleware.SessionFromRequest(r)
	if err := h.Reports.Print(ctx, s, report, copies); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Printed successfully",
	})
}

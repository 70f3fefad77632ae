package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"produce-backend/internal/export"
	"produce-backend/internal/receipt"
	"produce-backend/internal/services"
	"produce-backend/internal/upstream"
	"produce-backend/pkg/utils"
)

// writeError maps service errors onto HTTP answers.
func writeError(w http.ResponseWriter, err error) {
	var ve *upstream.ValidationError
	var se *upstream.StatusError
	var pe *services.PrintRejectedError

	switch {
	case errors.Is(err, receipt.ErrEmptyReport):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, upstream.ErrUnauthorized), errors.Is(err, services.ErrInvalidSession):
		utils.Error(w, http.StatusUnauthorized, "Session expired. Please log in again.")
	case errors.As(err, &ve):
		utils.JSON(w, http.StatusUnprocessableEntity, ve)
	case errors.Is(err, services.ErrPrinterUnavailable):
		utils.Error(w, http.StatusServiceUnavailable, services.ErrPrinterUnavailable.Error())
	case errors.As(err, &pe):
		log.Printf("[Printer] %v", err)
		utils.Error(w, http.StatusBadGateway, "Print server rejected the job: "+pe.Message)
	case errors.Is(err, services.ErrUnknownFormat):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &se):
		log.Printf("[Handler] Upstream error: %v", err)
		status := http.StatusBadGateway
		if se.Status == http.StatusNotFound {
			status = http.StatusNotFound
		}
		utils.Error(w, status, fmt.Sprintf("Upstream API returned %d", se.Status))
	default:
		log.Printf("[Handler] %v", err)
		utils.Error(w, http.StatusBadGateway, "Could not load data from the trading API")
	}
}

func writeFile(w http.ResponseWriter, f *export.File) {
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", f.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	w.Write(f.Data)
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

func queryBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.URL.Query().Get(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

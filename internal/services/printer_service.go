package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"produce-backend/internal/metrics"
)

// ErrPrinterUnavailable means the LAN print server could not be reached.
var ErrPrinterUnavailable = errors.New("printer unavailable: check that the print server is running and on the same network")

// PrintRejectedError is a print job the server received but refused.
type PrintRejectedError struct {
	Message string
}

func (e *PrintRejectedError) Error() string {
	return "print server rejected the job: " + e.Message
}

type PrinterService struct {
	client  *http.Client
	baseURL string
	copies  int
}

type PrintTextRequest struct {
	Text   string `json:"text"`
	Copies int    `json:"copies"`
	Cut    bool   `json:"cut"`
}

type PrintResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewPrinterService(baseURL string, copies int, timeout time.Duration) *PrinterService {
	if copies < 1 {
		copies = 1
	}
	return &PrinterService{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		copies:  copies,
	}
}

// Enabled reports whether a print server is configured
func (s *PrinterService) Enabled() bool {
	return s != nil && s.baseURL != ""
}

// PrintText sends a fixed-width receipt. copies < 1 uses the configured default.
func (s *PrinterService) PrintText(ctx context.Context, text string, copies int) error {
	if !s.Enabled() {
		metrics.PrintJobs.WithLabelValues("unavailable").Inc()
		return ErrPrinterUnavailable
	}
	if copies < 1 {
		copies = s.copies
	}

	err := s.sendPrintRequest(ctx, "/print-text", PrintTextRequest{Text: text, Copies: copies, Cut: true})
	switch {
	case err == nil:
		metrics.PrintJobs.WithLabelValues("ok").Inc()
	case errors.Is(err, ErrPrinterUnavailable):
		metrics.PrintJobs.WithLabelValues("unavailable").Inc()
	default:
		metrics.PrintJobs.WithLabelValues("failed").Inc()
	}
	return err
}

func (s *PrinterService) sendPrintRequest(ctx context.Context, endpoint string, req PrintTextRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal print request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build print request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrinterUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: print server returned %d", ErrPrinterUnavailable, resp.StatusCode)
	}

	var printResp PrintResponse
	if err := json.NewDecoder(resp.Body).Decode(&printResp); err != nil {
		return fmt.Errorf("failed to decode print response: %w", err)
	}

	if !printResp.Success {
		return &PrintRejectedError{Message: printResp.Message}
	}

	return nil
}

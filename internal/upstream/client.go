// Package upstream is the client for the remote trading REST API. Every call
// carries the caller's session token; a 401 clears the session.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"produce-backend/internal/config"
	"produce-backend/internal/metrics"
	"produce-backend/internal/models"
	"produce-backend/internal/session"
	"produce-backend/internal/timeutil"
)

const maxErrorBody = 512

type Paths struct {
	Login        string
	Logout       string
	CustomerBill string
	SupplierBill string
	SalesReport  string
}

// UnauthorizedHook runs once when the upstream API answers 401.
type UnauthorizedHook func(ctx context.Context, s *session.Session)

type Client struct {
	baseURL        string
	paths          Paths
	httpClient     *http.Client
	session        *session.Session
	onUnauthorized UnauthorizedHook
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithUnauthorizedHook(h UnauthorizedHook) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

// NewClient binds a client to one session. s may be nil for Login.
func NewClient(cfg *config.Config, s *session.Session, opts ...Option) *Client {
	p := cfg.Upstream.Paths
	c := &Client{
		baseURL: strings.TrimRight(cfg.Upstream.BaseURL, "/"),
		paths: Paths{
			Login:        p.Login,
			Logout:       p.Logout,
			CustomerBill: p.CustomerBill,
			SupplierBill: p.SupplierBill,
			SalesReport:  p.SalesReport,
		},
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout()},
		session:    s,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoginResult is the upstream answer to a successful login.
type LoginResult struct {
	Token string
	User  models.UpstreamUser
}

type loginResponse struct {
	Token       string              `json:"token"`
	AccessToken string              `json:"access_token"`
	User        models.UpstreamUser `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, "login", http.MethodPost, c.paths.Login, nil, body, &resp); err != nil {
		return nil, err
	}
	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return nil, errors.New("upstream login returned no token")
	}
	return &LoginResult{Token: token, User: resp.User}, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, c.paths.Logout, nil, nil, nil)
}

// CustomerBill fetches the rows of one customer bill.
func (c *Client) CustomerBill(ctx context.Context, billNo string) ([]models.APIRow, error) {
	return c.rows(ctx, "customer_bill", c.paths.CustomerBill+"/"+url.PathEscape(billNo), nil)
}

// SupplierBill fetches one supplier's rows for a trading day.
func (c *Client) SupplierBill(ctx context.Context, code string, date time.Time) ([]models.APIRow, error) {
	q := url.Values{}
	if !date.IsZero() {
		q.Set("date", timeutil.FormatDate(date))
	}
	return c.rows(ctx, "supplier_bill", c.paths.SupplierBill+"/"+url.PathEscape(code), q)
}

// ReportQuery narrows the sales report on the server side.
type ReportQuery struct {
	Date         time.Time
	CustomerCode string
	SupplierCode string
}

func (q ReportQuery) Values() url.Values {
	v := url.Values{}
	if !q.Date.IsZero() {
		v.Set("date", timeutil.FormatDate(q.Date))
	}
	if q.CustomerCode != "" {
		v.Set("customer_code", q.CustomerCode)
	}
	if q.SupplierCode != "" {
		v.Set("supplier_code", q.SupplierCode)
	}
	return v
}

func (c *Client) SalesReport(ctx context.Context, q ReportQuery) ([]models.APIRow, error) {
	return c.rows(ctx, "sales_report", c.paths.SalesReport, q.Values())
}

// rows accepts either a bare array or {"data": [...]}.
func (c *Client) rows(ctx context.Context, endpoint, path string, q url.Values) ([]models.APIRow, error) {
	var raw json.RawMessage
	if err := c.do(ctx, endpoint, http.MethodGet, path, q, nil, &raw); err != nil {
		return nil, err
	}
	return decodeRows(raw)
}

func decodeRows(raw json.RawMessage) ([]models.APIRow, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []models.APIRow{}, nil
	}

	var rows []models.APIRow
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("decode rows: %w", err)
		}
		return rows, nil
	}

	var wrapped struct {
		Data []models.APIRow `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	if wrapped.Data == nil {
		return []models.APIRow{}, nil
	}
	return wrapped.Data, nil
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, q url.Values, in, out any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "network_error").Inc()
		return fmt.Errorf("upstream %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.UpstreamRequests.WithLabelValues(endpoint, "unauthorized").Inc()
		log.Printf("[Upstream] %s returned 401, clearing session", endpoint)
		if c.onUnauthorized != nil && c.session != nil {
			c.onUnauthorized(ctx, c.session)
		}
		return ErrUnauthorized

	case resp.StatusCode == http.StatusUnprocessableEntity:
		metrics.UpstreamRequests.WithLabelValues(endpoint, "validation").Inc()
		var vb validationBody
		if err := json.NewDecoder(resp.Body).Decode(&vb); err != nil {
			return &ValidationError{Message: "The given data was invalid."}
		}
		return vb.toError()

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		metrics.UpstreamRequests.WithLabelValues(endpoint, "status_error").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Endpoint: endpoint, Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	metrics.UpstreamRequests.WithLabelValues(endpoint, "ok").Inc()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

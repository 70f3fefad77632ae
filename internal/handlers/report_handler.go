package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"produce-backend/internal/export"
	"produce-backend/internal/middleware"
	"produce-backend/internal/models"
	"produce-backend/internal/receipt"
	"produce-backend/internal/services"
	"produce-backend/internal/timeutil"
	"produce-backend/internal/upstream"
	"produce-backend/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const fetchTimeout = 30 * time.Second

type ReportHandler struct {
	Service       *services.ReportService
	DefaultLayout models.Layout
}

func NewReportHandler(s *services.ReportService, defaultLayout models.Layout) *ReportHandler {
	return &ReportHandler{Service: s, DefaultLayout: defaultLayout}
}

// CustomerBill handles GET /api/reports/customer-bill/{bill}
// Query params: size=3inch|4inch, loan=1, format=html|print|text|xlsx|csv|pdf, export=line|item
func (h *ReportHandler) CustomerBill(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.layout(w, r)
	if !ok {
		return
	}
	mode := models.CustomerMode(layout, queryBool(r, "loan"))

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	s, _ := middleware.SessionFromRequest(r)
	report, err := h.Service.CustomerBill(ctx, s, mux.Vars(r)["bill"], mode)
	if err != nil {
		writeError(w, err)
		return
	}
	h.respond(ctx, w, r, report, "html")
}

// SupplierBill handles GET /api/reports/supplier-bill/{code}
// Query params: date=YYYY-MM-DD, size, settlement=none|advance|commission, format, export
func (h *ReportHandler) SupplierBill(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.layout(w, r)
	if !ok {
		return
	}
	settlement, err := models.ParseSettlement(r.URL.Query().Get("settlement"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := timeutil.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	s, _ := middleware.SessionFromRequest(r)
	report, err := h.Service.SupplierBill(ctx, s, mux.Vars(r)["code"], date, models.SupplierMode(layout, settlement))
	if err != nil {
		writeError(w, err)
		return
	}
	h.respond(ctx, w, r, report, "html")
}

// Sales handles GET /api/reports/sales
// Query params: date, customer_code, supplier_code, item, bill_no, format=json|xlsx|csv|pdf, export
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := timeutil.ParseDate(q.Get("date"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	query := upstream.ReportQuery{
		Date:         date,
		CustomerCode: strings.TrimSpace(q.Get("customer_code")),
		SupplierCode: strings.TrimSpace(q.Get("supplier_code")),
	}
	filter := receipt.Filter{
		CustomerCode: query.CustomerCode,
		SupplierCode: query.SupplierCode,
		Item:         strings.TrimSpace(q.Get("item")),
		BillNo:       strings.TrimSpace(q.Get("bill_no")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	s, _ := middleware.SessionFromRequest(r)
	report, err := h.Service.Sales(ctx, s, query, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	h.respond(ctx, w, r, report, "json")
}

// Logs handles GET /api/reports/logs?kind=&limit=
func (h *ReportHandler) Logs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.Service.RecentLogs(r.Context(), r.URL.Query().Get("kind"), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load report logs")
		return
	}
	utils.JSON(w, http.StatusOK, logs)
}

func (h *ReportHandler) layout(w http.ResponseWriter, r *http.Request) (models.Layout, bool) {
	size := r.URL.Query().Get("size")
	if size == "" {
		return h.DefaultLayout, true
	}
	layout, err := models.ParseLayout(size)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return layout, true
}

func (h *ReportHandler) respond(ctx context.Context, w http.ResponseWriter, r *http.Request, report *services.Report, defaultFormat string) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = defaultFormat
	}

	switch format {
	case "json":
		utils.JSON(w, http.StatusOK, newReportView(report))
	case "html":
		html, err := h.Service.RenderHTML(report)
		if err != nil {
			writeError(w, err)
			return
		}
		writeHTML(w, html)
	case "print":
		page, err := h.Service.RenderPrintPage(report)
		if err != nil {
			writeError(w, err)
			return
		}
		writeHTML(w, page)
	case "text":
		text, err := h.Service.RenderText(report)
		if err != nil {
			writeError(w, err)
			return
		}
		writeText(w, text)
	default:
		by, err := export.ParseMode(r.URL.Query().Get("export"))
		if err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		s, _ := middleware.SessionFromRequest(r)
		file, err := h.Service.Export(ctx, s, report, format, by)
		if err != nil {
			writeError(w, err)
			return
		}
		writeFile(w, file)
	}
}

type reportLineView struct {
	Date         string          `json:"date"`
	BillNo       string          `json:"bill_no"`
	Item         string          `json:"item"`
	CustomerCode string          `json:"customer_code"`
	SupplierCode string          `json:"supplier_code"`
	Packs        int64           `json:"packs"`
	Weight       decimal.Decimal `json:"weight"`
	Price        decimal.Decimal `json:"price_per_kg"`
	Value        decimal.Decimal `json:"value"`
}

type reportView struct {
	Title  string                `json:"title"`
	Date   string                `json:"date"`
	Mode   models.ReportMode     `json:"mode"`
	Lines  []reportLineView      `json:"lines"`
	Items  []models.ItemSubtotal `json:"items"`
	Totals models.ReportTotals   `json:"totals"`
	Net    receipt.Net           `json:"net"`
}

func newReportView(r *services.Report) reportView {
	v := reportView{
		Title:  r.Title(),
		Date:   timeutil.FormatDate(r.Date),
		Mode:   r.Meta.Mode,
		Lines:  make([]reportLineView, 0, len(r.Agg.Lines)),
		Items:  r.Agg.PerItem,
		Totals: r.Agg.Totals,
		Net:    r.Net,
	}
	for _, l := range r.Agg.Lines {
		price, value := l.UnitPrice, l.Value()
		if r.Meta.Mode.IsSupplier() {
			price, value = l.SupplierPrice, l.SupplierValue()
		}
		v.Lines = append(v.Lines, reportLineView{
			Date:         timeutil.FormatDate(l.Date),
			BillNo:       l.BillNo,
			Item:         l.ItemName,
			CustomerCode: l.CustomerCode,
			SupplierCode: l.SupplierCode,
			Packs:        l.Packs,
			Weight:       l.Weight,
			Price:        price,
			Value:        value,
		})
	}
	return v
}

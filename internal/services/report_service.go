package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"produce-backend/internal/cache"
	"produce-backend/internal/export"
	"produce-backend/internal/metrics"
	"produce-backend/internal/models"
	"produce-backend/internal/receipt"
	"produce-backend/internal/session"
	"produce-backend/internal/timeutil"
	"produce-backend/internal/upstream"
)

// Kind names the three report families.
type Kind string

const (
	KindCustomerBill Kind = "customer_bill"
	KindSupplierBill Kind = "supplier_bill"
	KindSales        Kind = "sales"
)

// RowSource fetches transaction rows for one session.
type RowSource interface {
	CustomerBill(ctx context.Context, billNo string) ([]models.APIRow, error)
	SupplierBill(ctx context.Context, code string, date time.Time) ([]models.APIRow, error)
	SalesReport(ctx context.Context, q upstream.ReportQuery) ([]models.APIRow, error)
}

// SourceFactory binds a RowSource to a session.
type SourceFactory func(s *session.Session) RowSource

// ReportLogStore is the audit trail. Nil disables auditing.
type ReportLogStore interface {
	Create(ctx context.Context, entry *models.ReportLog) error
	ListRecent(ctx context.Context, kind string, limit int) ([]*models.ReportLog, error)
}

// Business is the letterhead printed on every bill.
type Business struct {
	Name    string
	Address string
	Phone   string
}

// Report is one fetched, filtered and aggregated snapshot.
type Report struct {
	Kind Kind
	Ref  string
	Date time.Time
	Agg  receipt.Aggregation
	Net  receipt.Net
	Meta receipt.Meta
}

func (r *Report) Title() string {
	switch r.Kind {
	case KindCustomerBill:
		return "Customer Bill " + r.Ref
	case KindSupplierBill:
		return "Supplier Bill " + r.Ref
	}
	return "Sales Report " + timeutil.FormatDate(r.Date)
}

func (r *Report) filenameHint() string {
	if r.Ref == "" {
		return string(r.Kind)
	}
	return string(r.Kind) + "_" + r.Ref
}

type ReportService struct {
	source   SourceFactory
	logs     ReportLogStore
	archive  *ArchiveService
	printer  *PrinterService
	business Business
	rowTTL   time.Duration
}

func NewReportService(source SourceFactory, logs ReportLogStore, archive *ArchiveService, printer *PrinterService, business Business, rowTTL time.Duration) *ReportService {
	return &ReportService{
		source:   source,
		logs:     logs,
		archive:  archive,
		printer:  printer,
		business: business,
		rowTTL:   rowTTL,
	}
}

// CustomerBill loads one customer bill.
func (s *ReportService) CustomerBill(ctx context.Context, sess *session.Session, billNo string, mode models.ReportMode) (*Report, error) {
	lines, err := s.lines(ctx, sess, KindCustomerBill, url.Values{"bill": {billNo}}, func(src RowSource) ([]models.APIRow, error) {
		return src.CustomerBill(ctx, billNo)
	})
	if err != nil {
		return nil, err
	}
	return s.build(KindCustomerBill, billNo, time.Time{}, lines, mode), nil
}

// SupplierBill loads a supplier's settlement for one day.
func (s *ReportService) SupplierBill(ctx context.Context, sess *session.Session, code string, date time.Time, mode models.ReportMode) (*Report, error) {
	q := url.Values{"code": {code}, "date": {timeutil.FormatDate(date)}}
	lines, err := s.lines(ctx, sess, KindSupplierBill, q, func(src RowSource) ([]models.APIRow, error) {
		return src.SupplierBill(ctx, code, date)
	})
	if err != nil {
		return nil, err
	}
	return s.build(KindSupplierBill, code, date, lines, mode), nil
}

// Sales loads the day's sales report and narrows it with f.
func (s *ReportService) Sales(ctx context.Context, sess *session.Session, q upstream.ReportQuery, f receipt.Filter) (*Report, error) {
	lines, err := s.lines(ctx, sess, KindSales, q.Values(), func(src RowSource) ([]models.APIRow, error) {
		return src.SalesReport(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	lines = f.Apply(lines)
	return s.build(KindSales, "", q.Date, lines, models.CustomerMode(models.Layout4Inch, false)), nil
}

func (s *ReportService) build(kind Kind, ref string, date time.Time, lines []models.TransactionLine, mode models.ReportMode) *Report {
	agg := receipt.Aggregate(lines)
	r := &Report{
		Kind: kind,
		Ref:  ref,
		Date: date,
		Agg:  agg,
		Net:  receipt.ComputeNet(agg.Totals, mode),
		Meta: receipt.Meta{
			BusinessName:    s.business.Name,
			BusinessAddress: s.business.Address,
			BusinessPhone:   s.business.Phone,
			Mode:            mode,
		},
	}
	if kind == KindCustomerBill {
		r.Meta.BillNo = ref
	}

	if len(lines) > 0 {
		first := lines[0]
		if mode.IsSupplier() {
			r.Meta.CounterpartyName, r.Meta.CounterpartyCode = first.SupplierName, first.SupplierCode
		} else if kind == KindCustomerBill {
			r.Meta.CounterpartyName, r.Meta.CounterpartyCode = first.CustomerName, first.CustomerCode
		}
		if r.Date.IsZero() {
			r.Date = first.Date
		}
	}
	if r.Date.IsZero() {
		r.Date = timeutil.Now()
	}
	r.Meta.Date = r.Date
	return r
}

// lines returns coerced transaction lines, from the row cache when possible.
func (s *ReportService) lines(ctx context.Context, sess *session.Session, kind Kind, q url.Values, fetch func(RowSource) ([]models.APIRow, error)) ([]models.TransactionLine, error) {
	key := cache.RowsKey(sess.ID, string(kind), q.Encode())
	if data, ok := cache.GetCached(ctx, key); ok {
		var lines []models.TransactionLine
		if err := json.Unmarshal(data, &lines); err == nil {
			metrics.RowCacheHits.WithLabelValues("hit").Inc()
			return lines, nil
		}
	}
	metrics.RowCacheHits.WithLabelValues("miss").Inc()

	rows, err := fetch(s.source(sess))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}

	lines := receipt.LinesFromRows(rows, func(c receipt.Coercion) {
		metrics.NumericCoercions.WithLabelValues(c.Field).Inc()
		receipt.LogCoercion(c)
	})

	if data, err := json.Marshal(lines); err == nil {
		cache.SetCached(ctx, key, data, s.rowTTL)
	}
	return lines, nil
}

// RenderHTML returns the receipt fragment.
func (s *ReportService) RenderHTML(r *Report) (string, error) {
	html, err := receipt.RenderReceipt(r.Agg, r.Net, r.Meta)
	if err == nil {
		s.observe(r, "html")
	}
	return html, err
}

// RenderPrintPage returns a standalone page that opens the print dialog.
func (s *ReportService) RenderPrintPage(r *Report) (string, error) {
	fragment, err := receipt.RenderReceipt(r.Agg, r.Net, r.Meta)
	if err != nil {
		return "", err
	}
	s.observe(r, "print")
	return receipt.RenderPrintPage(r.Title(), fragment)
}

// RenderText returns the fixed-width thermal receipt.
func (s *ReportService) RenderText(r *Report) (string, error) {
	text, err := receipt.RenderText(r.Agg, r.Net, r.Meta)
	if err == nil {
		s.observe(r, "text")
	}
	return text, err
}

var ErrUnknownFormat = errors.New("unknown export format")

// Export builds a download, archives it and records it.
func (s *ReportService) Export(ctx context.Context, sess *session.Session, r *Report, format string, by export.Mode) (*export.File, error) {
	if r.Agg.Empty() {
		return nil, receipt.ErrEmptyReport
	}

	table := export.BuildTable(r.Title(), r.Agg, r.Meta.Mode, by)
	name := func(ext string) string { return export.Filename(r.filenameHint(), r.Date, ext) }

	var (
		file *export.File
		err  error
	)
	switch format {
	case "xlsx":
		file, err = export.Sheet(table, name("xlsx"))
	case "csv":
		file, err = export.CSV(table, name("csv"))
	case "pdf":
		file, err = export.PDF(table, name("pdf"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	s.observe(r, format)

	var archiveKey *string
	if key, err := s.archive.Store(ctx, string(r.Kind), file); err != nil {
		log.Printf("[Report] Archive failed for %s: %v", file.Name, err)
	} else if key != "" {
		archiveKey = &key
	}

	s.record(ctx, sess, r, format, archiveKey)
	return file, nil
}

// Print sends the thermal receipt to the LAN print server.
func (s *ReportService) Print(ctx context.Context, sess *session.Session, r *Report, copies int) error {
	text, err := s.RenderText(r)
	if err != nil {
		return err
	}
	if err := s.printer.PrintText(ctx, text, copies); err != nil {
		return err
	}
	s.record(ctx, sess, r, "thermal", nil)
	return nil
}

// RecentLogs lists audit entries, newest first.
func (s *ReportService) RecentLogs(ctx context.Context, kind string, limit int) ([]*models.ReportLog, error) {
	if s.logs == nil {
		return []*models.ReportLog{}, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.logs.ListRecent(ctx, kind, limit)
}

func (s *ReportService) observe(r *Report, format string) {
	metrics.ReportsRendered.WithLabelValues(string(r.Kind), format).Inc()
	metrics.ReportLines.Observe(float64(len(r.Agg.Lines)))
}

// record writes the audit entry. Failures are logged, never returned.
func (s *ReportService) record(ctx context.Context, sess *session.Session, r *Report, format string, archiveKey *string) {
	if s.logs == nil {
		return
	}
	entry := &models.ReportLog{
		Kind:       string(r.Kind),
		Format:     format,
		Reference:  r.Ref,
		LineCount:  len(r.Agg.Lines),
		GrandTotal: r.Agg.Totals.GrandTotal,
		ArchiveKey: archiveKey,
	}
	if r.Meta.Mode.IsSupplier() && r.Net.NetPayable != nil {
		entry.GrandTotal = *r.Net.NetPayable
	}
	if sess != nil {
		entry.UserName = sess.User.Name
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		log.Printf("[Report] Failed to record %s %s: %v", r.Kind, format, err)
	}
}

// Package export serialises aggregated reports into downloadable files:
// xlsx workbooks, CSV and PDF tables. Every format shares one row table
// with a single header row and a single totals row.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"produce-backend/internal/models"
	"produce-backend/internal/receipt"

	"github.com/shopspring/decimal"
)

// Mode selects one row per transaction line or one row per item.
type Mode string

const (
	ByLine Mode = "line"
	ByItem Mode = "item"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ByLine:
		return ByLine, nil
	case ByItem:
		return ByItem, nil
	}
	return "", fmt.Errorf("unknown export mode %q", s)
}

// Table is the rectangular form of a report.
type Table struct {
	Title  string
	Header []string
	Rows   [][]any
	Totals []any
}

// RowCount counts header, data and totals rows.
func (t Table) RowCount() int {
	return len(t.Rows) + 2
}

// File is a generated download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv"
	ContentTypePDF  = "application/pdf"
)

// BuildTable lays out an aggregation. Packs are integers, weights numbers and
// money two-decimal strings.
func BuildTable(title string, agg receipt.Aggregation, mode models.ReportMode, by Mode) Table {
	if by == ByItem {
		return itemTable(title, agg, mode)
	}
	return lineTable(title, agg, mode)
}

func lineTable(title string, agg receipt.Aggregation, mode models.ReportMode) Table {
	t := Table{
		Title:  title,
		Header: []string{"Date", "Bill No", "Item", "Customer", "Supplier", "Packs", "Weight (kg)", "Price/kg", "Value"},
		Rows:   make([][]any, 0, len(agg.Lines)),
	}
	if mode.IsSupplier() {
		t.Header[7] = "Supplier Price/kg"
		t.Header = append(t.Header, "Commission")
	}

	for _, l := range agg.Lines {
		price, value := l.UnitPrice, l.Value()
		if mode.IsSupplier() {
			price, value = l.SupplierPrice, l.SupplierValue()
		}
		row := []any{
			dateCell(l.Date),
			l.BillNo,
			l.ItemName,
			l.CustomerCode,
			l.SupplierCode,
			l.Packs,
			weightCell(l.Weight),
			receipt.FormatPlain(price),
			receipt.FormatPlain(value),
		}
		if mode.IsSupplier() {
			row = append(row, receipt.FormatPlain(l.Commission))
		}
		t.Rows = append(t.Rows, row)
	}

	tot := agg.Totals
	t.Totals = []any{"TOTAL", "", "", "", "", tot.Packs, weightCell(tot.Weight), "", receipt.FormatPlain(receipt.SalesFor(tot, mode))}
	if mode.IsSupplier() {
		t.Totals = append(t.Totals, receipt.FormatPlain(tot.Commission))
	}
	return t
}

func itemTable(title string, agg receipt.Aggregation, mode models.ReportMode) Table {
	t := Table{
		Title:  title,
		Header: []string{"Item", "Packs", "Weight (kg)", "Value"},
		Rows:   make([][]any, 0, len(agg.PerItem)),
	}
	for _, it := range agg.PerItem {
		value := it.Value
		if mode.IsSupplier() {
			value = it.SupplierValue
		}
		t.Rows = append(t.Rows, []any{it.ItemName, it.Packs, weightCell(it.Weight), receipt.FormatPlain(value)})
	}
	tot := agg.Totals
	t.Totals = []any{"TOTAL", tot.Packs, weightCell(tot.Weight), receipt.FormatPlain(receipt.SalesFor(tot, mode))}
	return t
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename builds "<hint>_<YYYY-MM-DD>.<ext>" with the report date token.
func Filename(hint string, date time.Time, ext string) string {
	hint = strings.Trim(unsafeName.ReplaceAllString(hint, "_"), "_")
	if hint == "" {
		hint = "report"
	}
	return fmt.Sprintf("%s_%s.%s", hint, date.Format("2006-01-02"), ext)
}

func dateCell(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func weightCell(w decimal.Decimal) float64 {
	return w.Round(3).InexactFloat64()
}

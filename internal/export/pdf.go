package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
)

// PDF writes the table as an A4 document. Wide tables switch to landscape.
// Core fonts cannot draw Sinhala, so only the English header is used.
func PDF(t Table, name string) (*File, error) {
	orientation := "P"
	if len(t.Header) > 5 {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(t.Header))

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range t.Header {
			pdf.CellFormat(colW, 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetHeaderFunc(func() {
		if t.Title != "" {
			pdf.SetFont("Arial", "B", 13)
			pdf.CellFormat(0, 8, tr(t.Title), "", 1, "C", false, 0, "")
			pdf.Ln(2)
		}
		header()
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "", 9)
	for _, r := range t.Rows {
		writeRow(pdf, tr, r, colW)
	}
	pdf.SetFont("Arial", "B", 9)
	writeRow(pdf, tr, t.Totals, colW)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return &File{Name: name, ContentType: ContentTypePDF, Data: buf.Bytes()}, nil
}

func writeRow(pdf *gofpdf.Fpdf, tr func(string) string, r []any, colW float64) {
	for i, v := range r {
		align := "L"
		switch x := v.(type) {
		case int64, float64:
			align = "R"
		case string:
			if i > 0 && looksNumeric(x) {
				align = "R"
			}
		}
		pdf.CellFormat(colW, 6, tr(fmt.Sprint(v)), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && c != '.' && c != '-' {
			return false
		}
	}
	return true
}

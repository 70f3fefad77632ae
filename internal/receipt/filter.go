package receipt

import (
	"strings"

	"produce-backend/internal/models"
)

// Filter narrows a fetched line list before aggregation. Codes and bill
// numbers match exactly (case-insensitive); Item matches as a substring.
type Filter struct {
	CustomerCode string
	SupplierCode string
	Item         string
	BillNo       string
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}

func (f Filter) Match(l models.TransactionLine) bool {
	if f.CustomerCode != "" && !strings.EqualFold(strings.TrimSpace(f.CustomerCode), l.CustomerCode) {
		return false
	}
	if f.SupplierCode != "" && !strings.EqualFold(strings.TrimSpace(f.SupplierCode), l.SupplierCode) {
		return false
	}
	if f.BillNo != "" && !strings.EqualFold(strings.TrimSpace(f.BillNo), l.BillNo) {
		return false
	}
	if f.Item != "" {
		needle := strings.ToLower(strings.TrimSpace(f.Item))
		if !strings.Contains(strings.ToLower(l.ItemName), needle) {
			return false
		}
	}
	return true
}

// Apply returns the matching lines in their original order.
func (f Filter) Apply(lines []models.TransactionLine) []models.TransactionLine {
	if f.IsZero() {
		return lines
	}
	out := make([]models.TransactionLine, 0, len(lines))
	for _, l := range lines {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	return out
}

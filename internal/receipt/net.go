package receipt

import (
	"produce-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Net holds the settlement lines of a bill. A nil field is not printed.
type Net struct {
	Remaining     *decimal.Decimal `json:"remaining,omitempty"`
	TotalWithLoan *decimal.Decimal `json:"total_with_loan,omitempty"`
	NetPayable    *decimal.Decimal `json:"net_payable,omitempty"`
}

// ComputeNet derives the settlement amounts for the given mode.
//
// Customer bills show the change owed, |given - grand total|, and only when
// something was given. Supplier bills deduct either the advance or the
// commission from supplier sales, never both.
func ComputeNet(t models.ReportTotals, mode models.ReportMode) Net {
	var n Net
	if mode.IsSupplier() {
		payable := t.SupplierSales
		switch mode.Settlement {
		case models.SettlementAdvance:
			payable = payable.Sub(t.Advance)
		case models.SettlementCommission:
			payable = payable.Sub(t.Commission)
		}
		payable = payable.Round(2)
		n.NetPayable = &payable
		return n
	}

	if t.Given.GreaterThan(decimal.Zero) {
		remaining := t.Given.Sub(t.GrandTotal).Abs().Round(2)
		n.Remaining = &remaining
	}
	if mode.WithLoan {
		total := t.GrandTotal.Add(t.PriorLoan).Round(2)
		n.TotalWithLoan = &total
	}
	return n
}

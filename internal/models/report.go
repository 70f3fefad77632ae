package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ItemSubtotal accumulates all lines of one item on a report.
type ItemSubtotal struct {
	ItemName      string          `json:"item_name"`
	Packs         int64           `json:"packs"`
	Weight        decimal.Decimal `json:"weight"`
	Value         decimal.Decimal `json:"value"`
	SupplierValue decimal.Decimal `json:"supplier_value"`
	Lines         int             `json:"lines"`
}

// ReportTotals is the grand aggregate of one receipt or report.
type ReportTotals struct {
	Packs         int64           `json:"packs"`
	Weight        decimal.Decimal `json:"weight"`
	Sales         decimal.Decimal `json:"sales"`
	SupplierSales decimal.Decimal `json:"supplier_sales"`
	PackCost      decimal.Decimal `json:"pack_cost"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Commission    decimal.Decimal `json:"commission"`
	Advance       decimal.Decimal `json:"advance"`
	PriorLoan     decimal.Decimal `json:"prior_loan"`
	Given         decimal.Decimal `json:"given"`
}

type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceSupplier Audience = "supplier"
)

// Settlement selects which deduction a supplier bill nets off.
type Settlement string

const (
	SettlementNone       Settlement = "none"
	SettlementAdvance    Settlement = "advance"
	SettlementCommission Settlement = "commission"
)

// Layout is the paper width of a thermal receipt.
type Layout string

const (
	Layout3Inch Layout = "3inch"
	Layout4Inch Layout = "4inch"
)

// ParseLayout accepts "3inch", "4inch" and the "3mm"/"4mm" spelling used by
// supplier receipts. Empty input means 3inch.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "3", "3inch", "3in", "3mm":
		return Layout3Inch, nil
	case "4", "4inch", "4in", "4mm":
		return Layout4Inch, nil
	}
	return "", fmt.Errorf("unknown receipt size %q", s)
}

// ParseSettlement maps a query value to a Settlement. Empty input means none.
func ParseSettlement(s string) (Settlement, error) {
	switch Settlement(strings.ToLower(strings.TrimSpace(s))) {
	case "", SettlementNone:
		return SettlementNone, nil
	case SettlementAdvance:
		return SettlementAdvance, nil
	case SettlementCommission:
		return SettlementCommission, nil
	}
	return "", fmt.Errorf("unknown settlement %q", s)
}

// ReportMode is the explicit configuration of one receipt variant.
type ReportMode struct {
	Audience   Audience   `json:"audience"`
	Settlement Settlement `json:"settlement"`
	WithLoan   bool       `json:"with_loan"`
	Layout     Layout     `json:"layout"`
}

func CustomerMode(layout Layout, withLoan bool) ReportMode {
	return ReportMode{Audience: AudienceCustomer, Settlement: SettlementNone, WithLoan: withLoan, Layout: layout}
}

func SupplierMode(layout Layout, settlement Settlement) ReportMode {
	return ReportMode{Audience: AudienceSupplier, Settlement: settlement, Layout: layout}
}

// IsSupplier reports whether values should be priced at the supplier rate.
func (m ReportMode) IsSupplier() bool {
	return m.Audience == AudienceSupplier
}

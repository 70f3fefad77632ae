// Package receipt turns transaction lines into bills: it consolidates lines
// per item, derives totals and settlement balances, and renders the result as
// print-ready markup or fixed-column text for thermal printers.
package receipt

import (
	"strings"

	"produce-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregation is the output of Aggregate. PerItem keeps first-seen order.
type Aggregation struct {
	Lines   []models.TransactionLine `json:"lines"`
	PerItem []models.ItemSubtotal    `json:"per_item"`
	Totals  models.ReportTotals      `json:"totals"`
}

// Empty reports whether there is nothing to render.
func (a Aggregation) Empty() bool {
	return len(a.Lines) == 0
}

// Aggregate folds lines into per-item subtotals and grand totals.
//
// Line values are recomputed from weight and price. Given, advance and prior
// loan are bill-level amounts repeated on every row of a bill, so the first
// non-zero value is taken instead of a sum. Business rules such as
// non-negative weight are the upstream API's concern and are not checked.
func Aggregate(lines []models.TransactionLine) Aggregation {
	agg := Aggregation{
		Lines:   lines,
		PerItem: []models.ItemSubtotal{},
	}
	index := make(map[string]int)
	t := &agg.Totals

	for _, l := range lines {
		value := l.Value()
		supplierValue := l.SupplierValue()

		key := strings.TrimSpace(l.ItemName)
		i, ok := index[key]
		if !ok {
			i = len(agg.PerItem)
			index[key] = i
			agg.PerItem = append(agg.PerItem, models.ItemSubtotal{ItemName: key})
		}
		sub := &agg.PerItem[i]
		sub.Packs += l.Packs
		sub.Weight = sub.Weight.Add(l.Weight)
		sub.Value = sub.Value.Add(value)
		sub.SupplierValue = sub.SupplierValue.Add(supplierValue)
		sub.Lines++

		t.Packs += l.Packs
		t.Weight = t.Weight.Add(l.Weight)
		t.Sales = t.Sales.Add(value)
		t.SupplierSales = t.SupplierSales.Add(supplierValue)
		t.PackCost = t.PackCost.Add(l.PackCost)
		t.Commission = t.Commission.Add(l.Commission)
		t.Given = firstNonZero(t.Given, l.GivenAmount)
		t.Advance = firstNonZero(t.Advance, l.AdvanceAmount)
		t.PriorLoan = firstNonZero(t.PriorLoan, l.PriorLoan)
	}

	t.GrandTotal = t.Sales.Add(t.PackCost)
	return agg
}

func firstNonZero(current, next decimal.Decimal) decimal.Decimal {
	if !current.IsZero() {
		return current
	}
	return next
}

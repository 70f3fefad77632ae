package receipt

import (
	"log"

	"produce-backend/internal/models"

	"github.com/shopspring/decimal"
)

// CoerceMissingNumeric is substituted for numeric fields that are missing or
// unreadable in upstream rows. Rows are never rejected for bad numbers.
var CoerceMissingNumeric = decimal.Zero

// Coercion describes one field whose upstream value could not be used as
// sent. Used is the value taken instead.
type Coercion struct {
	BillNo string
	Item   string
	Field  string
	Raw    string
	Used   string
}

// CoercionHook is told about every coercion. A nil hook logs.
type CoercionHook func(Coercion)

// LogCoercion is the default hook.
func LogCoercion(c Coercion) {
	log.Printf("[Coerce] bill=%s item=%q field=%s raw=%q used %s",
		c.BillNo, c.Item, c.Field, c.Raw, c.Used)
}

// LinesFromRows converts upstream rows into transaction lines. Required
// fields (packs, weight, price_per_kg) coerce when absent or unreadable, and
// fractional packs are cut to whole packs and reported;
// optional fields coerce silently when absent and are reported only when
// present but unreadable. Upstream totals are ignored: line values are
// always recomputed from weight and price.
func LinesFromRows(rows []models.APIRow, hook CoercionHook) []models.TransactionLine {
	if hook == nil {
		hook = LogCoercion
	}
	lines := make([]models.TransactionLine, 0, len(rows))
	for _, row := range rows {
		c := coercer{bill: row.BillNo.String(), item: row.Name(), hook: hook}

		date := row.Date.Time
		if date.IsZero() {
			date = row.CreatedAt.Time
		}

		lines = append(lines, models.TransactionLine{
			ItemName:      row.Name(),
			Packs:         c.packs(row.Packs),
			Weight:        c.required("weight", row.Weight),
			UnitPrice:     c.required("price_per_kg", row.PricePerKg),
			SupplierPrice: c.optional("SupplierPricePerKg", row.SupplierPricePerKg),
			PackCost:      c.optional("pack_due", row.PackDue),
			CustomerCode:  row.CustomerCode.String(),
			CustomerName:  row.CustomerName.String(),
			SupplierCode:  row.SupplierCode.String(),
			SupplierName:  row.SupplierName.String(),
			Commission:    c.optional("commission_amount", row.CommissionAmount),
			GivenAmount:   c.optional("given_amount", row.GivenAmount),
			AdvanceAmount: c.optional("advance_amount", row.AdvanceAmount),
			PriorLoan:     c.optional("loan_amount", row.LoanAmount),
			BillNo:        row.BillNo.String(),
			Date:          date,
		})
	}
	return lines
}

type coercer struct {
	bill string
	item string
	hook CoercionHook
}

func (c coercer) required(field string, n models.Numeric) decimal.Decimal {
	if n.Valid {
		return n.Value
	}
	c.report(field, n.Raw, CoerceMissingNumeric)
	return CoerceMissingNumeric
}

func (c coercer) packs(n models.Numeric) int64 {
	v := c.required("packs", n)
	if !v.IsInteger() {
		c.report("packs", n.Raw, v.Truncate(0))
	}
	return v.IntPart()
}

func (c coercer) optional(field string, n models.Numeric) decimal.Decimal {
	if n.Valid {
		return n.Value
	}
	if n.Present && n.Raw != "null" && n.Raw != "" {
		c.report(field, n.Raw, CoerceMissingNumeric)
	}
	return CoerceMissingNumeric
}

func (c coercer) report(field, raw string, used decimal.Decimal) {
	c.hook(Coercion{BillNo: c.bill, Item: c.item, Field: field, Raw: raw, Used: used.String()})
}

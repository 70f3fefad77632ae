package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLine is one row of a goods transaction as it appears on a bill.
// Money and weight fields are already coerced: a missing upstream value is zero.
type TransactionLine struct {
	ItemName      string          `json:"item_name"`
	Packs         int64           `json:"packs"`
	Weight        decimal.Decimal `json:"weight"`
	UnitPrice     decimal.Decimal `json:"price_per_kg"`
	SupplierPrice decimal.Decimal `json:"supplier_price_per_kg"`
	PackCost      decimal.Decimal `json:"pack_due"`
	CustomerCode  string          `json:"customer_code,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	SupplierCode  string          `json:"supplier_code,omitempty"`
	SupplierName  string          `json:"supplier_name,omitempty"`
	Commission    decimal.Decimal `json:"commission_amount"`
	GivenAmount   decimal.Decimal `json:"given_amount"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
	PriorLoan     decimal.Decimal `json:"loan_amount"`
	BillNo        string          `json:"bill_no,omitempty"`
	Date          time.Time       `json:"date"`
}

// Value is weight × customer price, rounded to cents.
func (l TransactionLine) Value() decimal.Decimal {
	return l.Weight.Mul(l.UnitPrice).Round(2)
}

// SupplierValue is weight × supplier price, rounded to cents.
func (l TransactionLine) SupplierValue() decimal.Decimal {
	return l.Weight.Mul(l.SupplierPrice).Round(2)
}

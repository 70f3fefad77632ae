package models

// APIRow is one pre-joined transaction row as returned by the report
// endpoints of the upstream API. Field names follow the upstream payload,
// including its mixed casing.
type APIRow struct {
	ItemName           Text      `json:"item_name"`
	ItemCode           Text      `json:"item_code"`
	Packs              Numeric   `json:"packs"`
	Weight             Numeric   `json:"weight"`
	PricePerKg         Numeric   `json:"price_per_kg"`
	SupplierPricePerKg Numeric   `json:"SupplierPricePerKg"`
	SupplierTotal      Numeric   `json:"SupplierTotal"`
	Total              Numeric   `json:"total"`
	PackDue            Numeric   `json:"pack_due"`
	CommissionAmount   Numeric   `json:"commission_amount"`
	CustomerCode       Text      `json:"customer_code"`
	CustomerName       Text      `json:"customer_name"`
	SupplierCode       Text      `json:"supplier_code"`
	SupplierName       Text      `json:"supplier_name"`
	GivenAmount        Numeric   `json:"given_amount"`
	AdvanceAmount      Numeric   `json:"advance_amount"`
	LoanAmount         Numeric   `json:"loan_amount"`
	BillNo             Text      `json:"bill_no"`
	Date               Timestamp `json:"Date"`
	CreatedAt          Timestamp `json:"created_at"`
}

// Name returns the item name, falling back to the item code.
func (r APIRow) Name() string {
	if r.ItemName != "" {
		return r.ItemName.String()
	}
	return r.ItemCode.String()
}

// UpstreamUser is the user record returned by the upstream login endpoint.
type UpstreamUser struct {
	ID    Text   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

package receipt

import "produce-backend/internal/models"

// PaperSpec is the physical geometry of a receipt layout.
type PaperSpec struct {
	BodyWidth string // CSS width of the printable body
	FontSize  string
	Columns   int // characters per line on the thermal printer
}

var paperSpecs = map[models.Layout]PaperSpec{
	models.Layout3Inch: {BodyWidth: "72mm", FontSize: "11px", Columns: 42},
	models.Layout4Inch: {BodyWidth: "104mm", FontSize: "13px", Columns: 56},
}

// Paper returns the geometry for a layout, defaulting to 3inch.
func Paper(l models.Layout) PaperSpec {
	if spec, ok := paperSpecs[l]; ok {
		return spec
	}
	return paperSpecs[models.Layout3Inch]
}

// Label is a bilingual caption. Sinhala first, English second.
type Label struct {
	Si string
	En string
}

func (l Label) String() string {
	return l.Si + " / " + l.En
}

var (
	LabelBillNo        = Label{"බිල් අංකය", "Bill No"}
	LabelDate          = Label{"දිනය", "Date"}
	LabelCustomer      = Label{"ගැනුම්කරු", "Customer"}
	LabelSupplier      = Label{"සැපයුම්කරු", "Supplier"}
	LabelItem          = Label{"භාණ්ඩය", "Item"}
	LabelPacks         = Label{"මලු", "Packs"}
	LabelWeight        = Label{"බර", "Weight"}
	LabelPrice         = Label{"මිල", "Price"}
	LabelValue         = Label{"වටිනාකම", "Value"}
	LabelItemSummary   = Label{"භාණ්ඩ සාරාංශය", "Item Summary"}
	LabelSales         = Label{"මුළු විකුණුම්", "Sales"}
	LabelPackCost      = Label{"මලු ගාස්තු", "Pack Cost"}
	LabelGrandTotal    = Label{"මුළු එකතුව", "Total"}
	LabelGiven         = Label{"ලබාදුන් මුදල", "Given"}
	LabelRemaining     = Label{"ඉතිරි මුදල", "Remaining"}
	LabelPriorLoan     = Label{"පෙර ණය", "Prior Loan"}
	LabelTotalWithLoan = Label{"ණය සමඟ එකතුව", "Total + Loan"}
	LabelAdvance       = Label{"අත්තිකාරම්", "Advance"}
	LabelCommission    = Label{"කොමිස්", "Commission"}
	LabelNetPayable    = Label{"ගෙවිය යුතු මුදල", "Net Payable"}
	LabelThankYou      = Label{"ස්තූතියි", "Thank you"}
)

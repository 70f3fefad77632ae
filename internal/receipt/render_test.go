package receipt

import (
	"strings"
	"testing"
	"time"

	"produce-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerBill() []models.TransactionLine {
	a := line("Leeks", 2, "20.5", "150")
	a.SupplierCode = "S07"
	a.GivenAmount = dec("5000")
	b := line("Carrot", 1, "10", "200")
	b.SupplierCode = "S02"
	b.GivenAmount = dec("5000")
	b.PackCost = dec("50")
	return []models.TransactionLine{a, b}
}

func testMeta(mode models.ReportMode) Meta {
	return Meta{
		BusinessName:     "Sunil Traders",
		BillNo:           "B-1042",
		CounterpartyName: "Kamal",
		CounterpartyCode: "C15",
		Date:             time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Mode:             mode,
	}
}

func TestRenderReceiptCustomer(t *testing.T) {
	mode := models.CustomerMode(models.Layout3Inch, false)
	agg := Aggregate(customerBill())
	html, err := RenderReceipt(agg, ComputeNet(agg.Totals, mode), testMeta(mode))
	require.NoError(t, err)

	assert.Contains(t, html, "width:72mm")
	assert.Contains(t, html, "B-1042")
	assert.Contains(t, html, "2025-03-14 09:30 AM")
	assert.Contains(t, html, LabelCustomer.Si)
	assert.Contains(t, html, "Leeks (2)")
	assert.Contains(t, html, "S07 3,075.00")
	assert.Contains(t, html, "S02 2,000.00")
	assert.Contains(t, html, "5,075.00")
	assert.Contains(t, html, LabelPackCost.En)
	assert.Contains(t, html, "5,125.00")
	assert.Contains(t, html, LabelRemaining.En)
	assert.NotContains(t, html, LabelNetPayable.En)

	// lines keep input order
	assert.Less(t, strings.Index(html, "Leeks (2)"), strings.Index(html, "Carrot (1)"))
}

func TestRenderReceiptOmitsRemainingWhenNothingGiven(t *testing.T) {
	lines := customerBill()
	for i := range lines {
		lines[i].GivenAmount = dec("0")
	}
	mode := models.CustomerMode(models.Layout4Inch, false)
	agg := Aggregate(lines)
	html, err := RenderReceipt(agg, ComputeNet(agg.Totals, mode), testMeta(mode))
	require.NoError(t, err)

	assert.Contains(t, html, "width:104mm")
	assert.NotContains(t, html, LabelRemaining.En)
	assert.NotContains(t, html, LabelGiven.En)
}

func TestRenderReceiptSupplierAdvance(t *testing.T) {
	l := line("Pumpkin", 4, "100", "60")
	l.SupplierPrice = dec("50")
	l.CustomerCode = "C15"
	l.AdvanceAmount = dec("1200")
	mode := models.SupplierMode(models.Layout3Inch, models.SettlementAdvance)
	agg := Aggregate([]models.TransactionLine{l})

	html, err := RenderReceipt(agg, ComputeNet(agg.Totals, mode), testMeta(mode))
	require.NoError(t, err)

	assert.Contains(t, html, LabelSupplier.En)
	assert.Contains(t, html, "C15 5,000.00")
	assert.Contains(t, html, LabelAdvance.En)
	assert.Contains(t, html, "3,800.00")
	assert.NotContains(t, html, LabelCommission.En)
}

func TestRenderReceiptEscapesUpstreamText(t *testing.T) {
	l := line("<script>alert(1)</script>", 1, "1", "1")
	mode := models.CustomerMode(models.Layout3Inch, false)
	agg := Aggregate([]models.TransactionLine{l})
	html, err := RenderReceipt(agg, ComputeNet(agg.Totals, mode), testMeta(mode))
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestRenderReceiptEmpty(t *testing.T) {
	mode := models.CustomerMode(models.Layout3Inch, false)
	html, err := RenderReceipt(Aggregate(nil), Net{}, testMeta(mode))
	assert.ErrorIs(t, err, ErrEmptyReport)
	assert.Empty(t, html)
}

func TestRenderPrintPage(t *testing.T) {
	page, err := RenderPrintPage("Bill B-1042", "<div>bill</div>")
	require.NoError(t, err)
	assert.Contains(t, page, "<title>Bill B-1042</title>")
	assert.Contains(t, page, "<div>bill</div>")
	assert.Contains(t, page, "window.print()")
}

package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"produce-backend/internal/models"
	"produce-backend/internal/receipt"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleLines() []models.TransactionLine {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	return []models.TransactionLine{
		{ItemName: "Leeks", Packs: 2, Weight: d("20.5"), UnitPrice: d("150"), SupplierPrice: d("140"), CustomerCode: "C1", SupplierCode: "S1", BillNo: "10", Date: day, Commission: d("20")},
		{ItemName: "Carrot", Packs: 1, Weight: d("10"), UnitPrice: d("200"), SupplierPrice: d("180"), CustomerCode: "C2", SupplierCode: "S1", BillNo: "11", Date: day},
		{ItemName: "Leeks", Packs: 3, Weight: d("30.25"), UnitPrice: d("160"), SupplierPrice: d("150"), CustomerCode: "C3", SupplierCode: "S1", BillNo: "12", Date: day},
	}
}

func TestBuildTableShapes(t *testing.T) {
	agg := receipt.Aggregate(sampleLines())
	mode := models.CustomerMode(models.Layout3Inch, false)

	byLine := BuildTable("Sales", agg, mode, ByLine)
	assert.Len(t, byLine.Rows, 3)
	assert.Equal(t, 5, byLine.RowCount())
	assert.Equal(t, "3075.00", byLine.Rows[0][8])
	assert.Equal(t, "TOTAL", byLine.Totals[0])
	assert.Equal(t, "9915.00", byLine.Totals[8])

	byItem := BuildTable("Sales", agg, mode, ByItem)
	require.Len(t, byItem.Rows, 2)
	assert.Equal(t, []any{"Leeks", int64(5), 50.75, "7915.00"}, byItem.Rows[0])
	assert.Equal(t, []any{"TOTAL", int64(6), 60.75, "9915.00"}, byItem.Totals)
}

func TestBuildTableSupplierUsesSupplierPrices(t *testing.T) {
	agg := receipt.Aggregate(sampleLines())
	mode := models.SupplierMode(models.Layout4Inch, models.SettlementCommission)

	tbl := BuildTable("Supplier", agg, mode, ByLine)
	assert.Equal(t, "Commission", tbl.Header[len(tbl.Header)-1])
	assert.Equal(t, "140.00", tbl.Rows[0][7])
	assert.Equal(t, "2870.00", tbl.Rows[0][8])
	assert.Equal(t, "20.00", tbl.Totals[9])
}

func TestSheetHasHeaderRowsAndTotals(t *testing.T) {
	agg := receipt.Aggregate(sampleLines())
	mode := models.CustomerMode(models.Layout3Inch, false)

	for _, by := range []Mode{ByLine, ByItem} {
		tbl := BuildTable("Sales", agg, mode, by)
		file, err := Sheet(tbl, "sales.xlsx")
		require.NoError(t, err)
		assert.Equal(t, ContentTypeXLSX, file.ContentType)

		wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
		require.NoError(t, err)
		rows, err := wb.GetRows(sheetName)
		require.NoError(t, err)
		require.NoError(t, wb.Close())

		want := len(agg.Lines) + 2
		if by == ByItem {
			want = len(agg.PerItem) + 2
		}
		require.Len(t, rows, want, "mode %s", by)
		assert.Equal(t, tbl.Header[0], rows[0][0])
		assert.Equal(t, "TOTAL", rows[len(rows)-1][0])
	}
}

func TestCSV(t *testing.T) {
	agg := receipt.Aggregate(sampleLines())
	tbl := BuildTable("Sales", agg, models.CustomerMode(models.Layout3Inch, false), ByItem)

	file, err := CSV(tbl, "sales.csv")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Item", "Packs", "Weight (kg)", "Value"}, records[0])
	assert.Equal(t, []string{"Carrot", "1", "10", "2000.00"}, records[2])
	assert.Equal(t, "TOTAL", records[3][0])
}

func TestPDF(t *testing.T) {
	agg := receipt.Aggregate(sampleLines())
	tbl := BuildTable("Sales", agg, models.CustomerMode(models.Layout3Inch, false), ByLine)

	file, err := PDF(tbl, "sales.pdf")
	require.NoError(t, err)
	assert.Equal(t, ContentTypePDF, file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
}

func TestFilename(t *testing.T) {
	day := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, "sales_report_2025-03-14.xlsx", Filename("sales report", day, "xlsx"))
	assert.Equal(t, "bill_B-12_2025-03-14.csv", Filename("bill/B-12", day, "csv"))
	assert.Equal(t, "report_2025-03-14.pdf", Filename("  ", day, "pdf"))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ByLine, m)

	m, err = ParseMode("ITEM")
	require.NoError(t, err)
	assert.Equal(t, ByItem, m)

	_, err = ParseMode("daily")
	assert.Error(t, err)
}

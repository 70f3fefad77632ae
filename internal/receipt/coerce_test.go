package receipt

import (
	"encoding/json"
	"testing"

	"produce-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamRows = `[
  {"item_name": "Leeks", "packs": "2", "weight": 20.5, "price_per_kg": "150.00",
   "SupplierPricePerKg": 140, "SupplierTotal": 99999, "supplier_code": "S07",
   "customer_code": 15, "given_amount": "5,000", "bill_no": "B-1", "Date": "2025-03-14"},
  {"item_name": "Carrot", "packs": null, "weight": "", "price_per_kg": "abc",
   "commission_amount": "n/a", "bill_no": "B-1", "created_at": "2025-03-14T09:30:00.000000Z"},
  {"item_code": "CAB", "packs": 1, "weight": 3, "price_per_kg": 90}
]`

func TestLinesFromRowsCoercesAndReports(t *testing.T) {
	var rows []models.APIRow
	require.NoError(t, json.Unmarshal([]byte(upstreamRows), &rows))

	var seen []Coercion
	lines := LinesFromRows(rows, func(c Coercion) { seen = append(seen, c) })
	require.Len(t, lines, 3)

	first := lines[0]
	assert.Equal(t, "Leeks", first.ItemName)
	assert.Equal(t, int64(2), first.Packs)
	assert.True(t, first.Weight.Equal(dec("20.5")))
	assert.True(t, first.UnitPrice.Equal(dec("150")))
	assert.True(t, first.SupplierPrice.Equal(dec("140")))
	assert.True(t, first.GivenAmount.Equal(dec("5000")))
	assert.Equal(t, "15", first.CustomerCode)
	assert.Equal(t, 2025, first.Date.Year())
	// upstream SupplierTotal is ignored
	assert.True(t, first.SupplierValue().Equal(dec("2870")))

	second := lines[1]
	assert.Equal(t, int64(0), second.Packs)
	assert.True(t, second.Weight.IsZero())
	assert.True(t, second.UnitPrice.IsZero())
	assert.True(t, second.Commission.IsZero())
	assert.Equal(t, 9, second.Date.Hour())

	assert.Equal(t, "CAB", lines[2].ItemName)

	fields := make([]string, 0, len(seen))
	for _, c := range seen {
		fields = append(fields, c.Field)
	}
	assert.ElementsMatch(t, []string{"packs", "weight", "price_per_kg", "commission_amount"}, fields)
	for _, c := range seen {
		assert.Equal(t, "B-1", c.BillNo)
	}
}

func TestLinesFromRowsMissingRequiredField(t *testing.T) {
	var rows []models.APIRow
	require.NoError(t, json.Unmarshal([]byte(`[{"item_name":"Leeks","weight":1,"price_per_kg":2}]`), &rows))

	var seen []Coercion
	lines := LinesFromRows(rows, func(c Coercion) { seen = append(seen, c) })
	require.Len(t, seen, 1)
	assert.Equal(t, "packs", seen[0].Field)
	assert.Equal(t, int64(0), lines[0].Packs)
}

func TestLinesFromRowsReportsFractionalPacks(t *testing.T) {
	var rows []models.APIRow
	require.NoError(t, json.Unmarshal([]byte(`[{"item_name":"Leeks","packs":"2.5","weight":1,"price_per_kg":2,"bill_no":"B-7"}]`), &rows))

	var seen []Coercion
	lines := LinesFromRows(rows, func(c Coercion) { seen = append(seen, c) })
	require.Len(t, seen, 1)
	assert.Equal(t, "packs", seen[0].Field)
	assert.Equal(t, "2.5", seen[0].Raw)
	assert.Equal(t, "2", seen[0].Used)
	assert.Equal(t, "B-7", seen[0].BillNo)
	assert.Equal(t, int64(2), lines[0].Packs)
}

func TestLinesFromRowsWholePacksNotReported(t *testing.T) {
	var rows []models.APIRow
	require.NoError(t, json.Unmarshal([]byte(`[{"item_name":"Leeks","packs":"3.0","weight":1,"price_per_kg":2}]`), &rows))

	var seen []Coercion
	lines := LinesFromRows(rows, func(c Coercion) { seen = append(seen, c) })
	assert.Empty(t, seen)
	assert.Equal(t, int64(3), lines[0].Packs)
}

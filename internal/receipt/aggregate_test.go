package receipt

import (
	"testing"

	"produce-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(item string, packs int64, weight, price string) models.TransactionLine {
	return models.TransactionLine{
		ItemName:  item,
		Packs:     packs,
		Weight:    dec(weight),
		UnitPrice: dec(price),
	}
}

func TestLineValueIsRoundedProduct(t *testing.T) {
	cases := []struct {
		weight, price, want string
	}{
		{"10", "120", "1200"},
		{"12.345", "99.99", "1234.38"},
		{"0.333", "3.33", "1.11"},
		{"0", "250", "0"},
		{"7.5", "0", "0"},
	}
	for _, c := range cases {
		l := line("x", 1, c.weight, c.price)
		assert.True(t, l.Value().Equal(dec(c.want)), "%s x %s = %s, got %s", c.weight, c.price, c.want, l.Value())
		assert.True(t, l.Value().Equal(dec(c.weight).Mul(dec(c.price)).Round(2)))
	}
}

func TestAggregateConsolidatesByItemInFirstSeenOrder(t *testing.T) {
	lines := []models.TransactionLine{
		line("Leeks", 2, "20.5", "150"),
		line("Carrot", 1, "10", "200"),
		line("Leeks", 3, "30.25", "160"),
		line("Beans", 1, "5.125", "400"),
	}

	agg := Aggregate(lines)

	require.Len(t, agg.PerItem, 3)
	assert.Equal(t, "Leeks", agg.PerItem[0].ItemName)
	assert.Equal(t, "Carrot", agg.PerItem[1].ItemName)
	assert.Equal(t, "Beans", agg.PerItem[2].ItemName)

	assert.Equal(t, int64(5), agg.PerItem[0].Packs)
	assert.True(t, agg.PerItem[0].Weight.Equal(dec("50.75")))
	assert.Equal(t, 2, agg.PerItem[0].Lines)

	assert.Equal(t, int64(7), agg.Totals.Packs)
	// 3075 + 2000 + 4840 + 2050
	assert.True(t, agg.Totals.Sales.Equal(dec("11965")), agg.Totals.Sales.String())
	assert.True(t, agg.Totals.GrandTotal.Equal(agg.Totals.Sales))
}

func TestAggregateSubtotalsSumToLineTotals(t *testing.T) {
	lines := []models.TransactionLine{
		line("A", 1, "1.001", "10"),
		line("B", 4, "2.5", "11"),
		line("A", 2, "3.333", "12"),
		line("C", 0, "0.125", "13"),
		line("B", 1, "9.999", "14"),
	}
	agg := Aggregate(lines)

	var weight decimal.Decimal
	var packs int64
	for _, it := range agg.PerItem {
		weight = weight.Add(it.Weight)
		packs += it.Packs
	}
	var lineWeight decimal.Decimal
	var linePacks int64
	for _, l := range lines {
		lineWeight = lineWeight.Add(l.Weight)
		linePacks += l.Packs
	}
	assert.True(t, weight.Equal(lineWeight))
	assert.True(t, weight.Equal(agg.Totals.Weight))
	assert.Equal(t, linePacks, packs)
	assert.Equal(t, linePacks, agg.Totals.Packs)
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)

	assert.True(t, agg.Empty())
	assert.NotNil(t, agg.PerItem)
	assert.Empty(t, agg.PerItem)
	assert.Equal(t, int64(0), agg.Totals.Packs)
	assert.True(t, agg.Totals.Sales.IsZero())
	assert.True(t, agg.Totals.GrandTotal.IsZero())
	assert.True(t, agg.Totals.Commission.IsZero())
}

func TestAggregateIsIdempotent(t *testing.T) {
	lines := []models.TransactionLine{
		line("Cabbage", 3, "45.5", "80"),
		line("Tomato", 2, "12.75", "310.5"),
	}
	lines[0].PackCost = dec("60")
	lines[1].Commission = dec("25.5")

	first := Aggregate(lines)
	second := Aggregate(lines)
	assert.Equal(t, first.Totals, second.Totals)
	assert.Equal(t, first.PerItem, second.PerItem)
}

func TestAggregateBillLevelAmountsAreNotSummed(t *testing.T) {
	a := line("Leeks", 1, "10", "100")
	b := line("Carrot", 1, "10", "50")
	for _, l := range []*models.TransactionLine{&a, &b} {
		l.GivenAmount = dec("2000")
		l.AdvanceAmount = dec("300")
		l.PriorLoan = dec("450")
	}
	a.PackCost = dec("40")
	b.PackCost = dec("20")

	agg := Aggregate([]models.TransactionLine{a, b})
	assert.True(t, agg.Totals.Given.Equal(dec("2000")))
	assert.True(t, agg.Totals.Advance.Equal(dec("300")))
	assert.True(t, agg.Totals.PriorLoan.Equal(dec("450")))
	assert.True(t, agg.Totals.PackCost.Equal(dec("60")))
	assert.True(t, agg.Totals.GrandTotal.Equal(dec("1560")))
}

func TestAggregateDoesNotRejectNegativeWeight(t *testing.T) {
	agg := Aggregate([]models.TransactionLine{line("Returned", 1, "-2", "100")})
	assert.True(t, agg.Totals.Sales.Equal(dec("-200")))
}

func TestAggregateSupplierSales(t *testing.T) {
	l := line("Pumpkin", 4, "100", "60")
	l.SupplierPrice = dec("50")
	agg := Aggregate([]models.TransactionLine{l})
	assert.True(t, agg.Totals.SupplierSales.Equal(dec("5000")))
	assert.True(t, agg.PerItem[0].SupplierValue.Equal(dec("5000")))
}

package receipt

import (
	"testing"

	"produce-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFilterApply(t *testing.T) {
	a := line("Green Beans", 1, "1", "1")
	a.CustomerCode, a.SupplierCode, a.BillNo = "C1", "S1", "B1"
	b := line("Beetroot", 1, "1", "1")
	b.CustomerCode, b.SupplierCode, b.BillNo = "C2", "S1", "B2"
	c := line("Cabbage", 1, "1", "1")
	c.CustomerCode, c.SupplierCode, c.BillNo = "C1", "S2", "B3"
	lines := []models.TransactionLine{a, b, c}

	assert.Len(t, Filter{}.Apply(lines), 3)
	assert.Equal(t, []models.TransactionLine{a, c}, Filter{CustomerCode: "c1"}.Apply(lines))
	assert.Equal(t, []models.TransactionLine{a, b}, Filter{SupplierCode: "S1"}.Apply(lines))
	assert.Equal(t, []models.TransactionLine{a, b}, Filter{Item: "be"}.Apply(lines))
	assert.Equal(t, []models.TransactionLine{c}, Filter{BillNo: "B3"}.Apply(lines))
	assert.Empty(t, Filter{CustomerCode: "C2", SupplierCode: "S2"}.Apply(lines))
}

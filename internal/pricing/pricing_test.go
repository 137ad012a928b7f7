package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FransManlangit/jicus-pos/internal/cart"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTotals_SingleLine(t *testing.T) {
	calc := NewCalculator(dec("0.05"))

	lines := []cart.Line{
		{ProductID: "p1", Name: "Burger", UnitPrice: dec("100.00"), Quantity: 2},
	}

	totals := calc.Totals(lines)
	assert.True(t, totals.ItemsPrice.Equal(dec("200.00")), "items = %s", totals.ItemsPrice)
	assert.True(t, totals.TaxPrice.Equal(dec("10.00")), "tax = %s", totals.TaxPrice)
	assert.True(t, totals.TotalPrice.Equal(dec("210.00")), "total = %s", totals.TotalPrice)
}

func TestTotals_SumsAllLines(t *testing.T) {
	calc := NewCalculator(dec("0.05"))

	lines := []cart.Line{
		{ProductID: "p1", UnitPrice: dec("19.99"), Quantity: 3},
		{ProductID: "p2", UnitPrice: dec("5.25"), Quantity: 1},
	}

	items := calc.ItemsPrice(lines)
	assert.True(t, items.Equal(dec("65.22")), "items = %s", items)
}

func TestTotals_EmptyCart(t *testing.T) {
	calc := NewCalculator(dec("0.05"))

	totals := calc.Totals(nil)
	assert.True(t, totals.ItemsPrice.IsZero())
	assert.True(t, totals.TaxPrice.IsZero())
	assert.True(t, totals.TotalPrice.IsZero())
}

func TestTaxPrice_RoundsHalfUp(t *testing.T) {
	calc := NewCalculator(dec("0.05"))

	// 10.10 * 0.05 = 0.505, half-up to 0.51
	tax := calc.TaxPrice(dec("10.10"))
	assert.True(t, tax.Equal(dec("0.51")), "tax = %s", tax)
}

func TestTaxPrice_IdempotentAcrossReads(t *testing.T) {
	calc := NewCalculator(dec("0.05"))
	lines := []cart.Line{
		{ProductID: "p1", UnitPrice: dec("33.33"), Quantity: 3},
	}

	first := calc.Totals(lines)
	for i := 0; i < 100; i++ {
		again := calc.Totals(lines)
		require.True(t, again.TaxPrice.Equal(first.TaxPrice))
		require.True(t, again.TotalPrice.Equal(first.TotalPrice))
	}
}

func TestTotals_RateIsInjected(t *testing.T) {
	// earlier deployments ran at 0.12
	calc := NewCalculator(dec("0.12"))
	lines := []cart.Line{
		{ProductID: "p1", UnitPrice: dec("100.00"), Quantity: 1},
	}

	totals := calc.Totals(lines)
	assert.True(t, totals.TaxPrice.Equal(dec("12.00")), "tax = %s", totals.TaxPrice)
	assert.True(t, totals.TotalPrice.Equal(dec("112.00")), "total = %s", totals.TotalPrice)
}

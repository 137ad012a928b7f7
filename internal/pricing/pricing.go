package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/FransManlangit/jicus-pos/internal/cart"
)

// Totals is derived from the cart on every read, never cached, so it can
// never disagree with the latest cart mutation.
type Totals struct {
	ItemsPrice decimal.Decimal
	TaxPrice   decimal.Decimal
	TotalPrice decimal.Decimal
}

// Calculator computes order totals. The tax rate comes from configuration;
// it has changed between deployments before and must not be compiled in.
type Calculator struct {
	taxRate decimal.Decimal
}

func NewCalculator(taxRate decimal.Decimal) *Calculator {
	return &Calculator{taxRate: taxRate}
}

func (c *Calculator) ItemsPrice(lines []cart.Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// TaxPrice rounds half-up to 2 decimal places, once. Repeated reads of an
// unchanged cart always produce the same value.
func (c *Calculator) TaxPrice(itemsPrice decimal.Decimal) decimal.Decimal {
	return itemsPrice.Mul(c.taxRate).Round(2)
}

func (c *Calculator) TotalPrice(itemsPrice, taxPrice decimal.Decimal) decimal.Decimal {
	return itemsPrice.Add(taxPrice).Round(2)
}

func (c *Calculator) Totals(lines []cart.Line) Totals {
	items := c.ItemsPrice(lines)
	tax := c.TaxPrice(items)
	return Totals{
		ItemsPrice: items,
		TaxPrice:   tax,
		TotalPrice: c.TotalPrice(items, tax),
	}
}

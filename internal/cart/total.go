package cart

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

// CalcTotal returns the sum of Price * Quantity over items, and exactly 0 for
// an empty cart. The sum is accumulated in decimal so the result does not
// depend on item order.
func CalcTotal(items []types.LineItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromFloat(item.Quantity))
		total = total.Add(line)
	}
	return total.InexactFloat64()
}

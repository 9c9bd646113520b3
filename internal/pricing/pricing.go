// Package pricing derives money amounts from cart lines. Every amount is a
// whole number of Rupiah; there is no fractional unit.
package pricing

import (
	"storefront/internal/model"
)

// Merge returns the canonical view of lines: one entry per product ID with
// quantities summed. The first occurrence of a product fixes its position,
// name, price and image. Merge never mutates its input and is idempotent.
func Merge(lines []model.CartLine) []model.CartLine {
	if len(lines) == 0 {
		return []model.CartLine{}
	}

	index := make(map[int64]int, len(lines))
	merged := make([]model.CartLine, 0, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	return merged
}

// Subtotal returns the sum of price*quantity over the merged view of lines.
func Subtotal(lines []model.CartLine) int64 {
	var subtotal int64
	for _, line := range Merge(lines) {
		subtotal += line.Price * int64(line.Quantity)
	}
	return subtotal
}

// Total returns the subtotal plus the flat price of method. A nil method
// contributes nothing.
func Total(lines []model.CartLine, method *model.ShippingMethod) int64 {
	var shipping int64
	if method != nil {
		shipping = method.Price
	}
	return TotalWithShipping(lines, shipping)
}

// TotalWithShipping returns the subtotal plus shippingPrice.
func TotalWithShipping(lines []model.CartLine, shippingPrice int64) int64 {
	return Subtotal(lines) + shippingPrice
}

// ItemCount returns the number of units across all lines.
func ItemCount(lines []model.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// Summarize builds the checkout money breakdown for lines and method.
func Summarize(lines []model.CartLine, method *model.ShippingMethod) model.CheckoutSummary {
	var shipping int64
	if method != nil {
		shipping = method.Price
	}
	total := TotalWithShipping(lines, shipping)

	return model.CheckoutSummary{
		ItemCount:      ItemCount(lines),
		Subtotal:       Subtotal(lines),
		Shipping:       shipping,
		Total:          total,
		FormattedTotal: FormatRupiah(total),
	}
}

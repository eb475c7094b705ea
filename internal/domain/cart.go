package domain

// CartLine is a single cart entry: a product reference and a quantity.
// Lines are unique per product ID and quantity is always at least 1.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// PriceLookup resolves a product ID to its effective sale price. The second
// return value reports whether the product is known.
type PriceLookup func(productID int64) (float64, bool)

// FindLine returns the index of the line for the given product, or -1.
func FindLine(lines []CartLine, productID int64) int {
	for i := range lines {
		if lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// SetQuantity returns the lines with the given product's quantity replaced.
// Quantities below 1 are clamped to 1: decrementing never removes a line,
// removal is a separate explicit action. If the product has no line this is a
// no-op; insertion happens only through AddLine.
func SetQuantity(lines []CartLine, productID int64, quantity int) []CartLine {
	i := FindLine(lines, productID)
	if i < 0 {
		return lines
	}
	if quantity < 1 {
		quantity = 1
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	out[i].Quantity = quantity
	return out
}

// AddLine merges the quantity into an existing line for the product, or
// appends a new line. Quantities below 1 are treated as 1.
func AddLine(lines []CartLine, productID int64, quantity int) []CartLine {
	if quantity < 1 {
		quantity = 1
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	if i := FindLine(out, productID); i >= 0 {
		out[i].Quantity += quantity
		return out
	}
	return append(out, CartLine{ProductID: productID, Quantity: quantity})
}

// RemoveLine returns the lines without the given product. An absent product
// is a no-op, not an error.
func RemoveLine(lines []CartLine, productID int64) []CartLine {
	out := make([]CartLine, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	return out
}

// Subtotal sums effective price times quantity across all lines. Lines whose
// product the lookup no longer knows contribute nothing.
func Subtotal(lines []CartLine, lookup PriceLookup) float64 {
	var total float64
	for _, l := range lines {
		if price, ok := lookup(l.ProductID); ok {
			total += price * float64(l.Quantity)
		}
	}
	return total
}

// Shipping returns the flat fee for a non-empty cart and zero otherwise.
// The flat fee is a placeholder policy, not a shipping calculator; the fee
// itself comes from configuration.
func Shipping(lines []CartLine, flatFee float64) float64 {
	if len(lines) == 0 {
		return 0
	}
	return flatFee
}

// Total is the subtotal plus shipping.
func Total(lines []CartLine, lookup PriceLookup, flatFee float64) float64 {
	return Subtotal(lines, lookup) + Shipping(lines, flatFee)
}

// CartItemCount returns the summed quantity across all lines.
func CartItemCount(lines []CartLine) int {
	var n int
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

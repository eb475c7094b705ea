package domain

// WishlistEntry is a snapshot of a product taken when it was wishlisted.
// It is deliberately not a live reference: later changes to the catalog
// product do not propagate here.
type WishlistEntry struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Image         string  `json:"image"`
	InStock       bool    `json:"in_stock"`
}

// originalPriceMarkup inflates the list price into the crossed-out
// "original" price shown next to wishlist entries.
const originalPriceMarkup = 1.2

// NewWishlistEntry captures the product fields a wishlist entry keeps.
func NewWishlistEntry(p Product) WishlistEntry {
	return WishlistEntry{
		ProductID:     p.ID,
		Name:          p.Title,
		Brand:         p.Brand,
		Price:         p.Price,
		OriginalPrice: p.Price * originalPriceMarkup,
		Image:         p.PrimaryImage(),
		InStock:       p.InStock(),
	}
}

// WishlistContains reports whether the entries include the given product.
func WishlistContains(entries []WishlistEntry, productID int64) bool {
	for _, e := range entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// RemoveWishlistEntry returns the entries without the given product.
func RemoveWishlistEntry(entries []WishlistEntry, productID int64) []WishlistEntry {
	out := make([]WishlistEntry, 0, len(entries))
	for _, e := range entries {
		if e.ProductID != productID {
			out = append(out, e)
		}
	}
	return out
}

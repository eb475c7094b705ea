package domain

// Product represents a catalog product as served by the upstream product API.
// Products are read-only once fetched and are identified by ID.
type Product struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

// EffectivePrice returns the sale price after applying an active discount.
// The result is intentionally unrounded: rounding happens at presentation
// time only, so repeated derivations never compound rounding error.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPercentage > 0 {
		return p.Price * (1 - p.DiscountPercentage/100)
	}
	return p.Price
}

// InStock reports whether the product has remaining stock.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// PrimaryImage returns the first gallery image, falling back to the thumbnail.
func (p Product) PrimaryImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return p.Thumbnail
}

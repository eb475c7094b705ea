package domain

import (
	"sort"
	"strings"
)

// CategoryRollup is a derived per-category summary. It is recomputed on
// demand from the product set and never persisted.
type CategoryRollup struct {
	Name                string `json:"name"`
	RepresentativeImage string `json:"representative_image"`
	ProductCount        int    `json:"product_count"`
}

// BuildRollups aggregates the product set into per-category rollups.
// Each rollup counts the category's products and keeps the first-seen
// thumbnail as its representative image. Products with an empty category are
// excluded. The result is sorted ascending by name, case-insensitively.
func BuildRollups(products []Product) []CategoryRollup {
	byName := make(map[string]*CategoryRollup)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		r, ok := byName[p.Category]
		if !ok {
			byName[p.Category] = &CategoryRollup{
				Name:                p.Category,
				RepresentativeImage: p.Thumbnail,
				ProductCount:        1,
			}
			continue
		}
		r.ProductCount++
		if r.RepresentativeImage == "" {
			r.RepresentativeImage = p.Thumbnail
		}
	}

	rollups := make([]CategoryRollup, 0, len(byName))
	for _, r := range byName {
		rollups = append(rollups, *r)
	}
	sort.Slice(rollups, func(i, j int) bool {
		a, b := strings.ToLower(rollups[i].Name), strings.ToLower(rollups[j].Name)
		if a == b {
			return rollups[i].Name < rollups[j].Name
		}
		return a < b
	})
	return rollups
}

// FilterProducts narrows the product set by an optional exact category and an
// optional free-text query. The category match is case-sensitive; the query
// matches case-insensitively as a substring of title or brand. Both filters
// compose with logical AND and the original relative order is preserved.
func FilterProducts(products []Product, category, query string) []Product {
	out := make([]Product, 0, len(products))

	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesQuery reports whether the lowercased query is a substring of the
// product's title or brand. Missing fields behave as empty strings.
func matchesQuery(p Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Brand), q)
}

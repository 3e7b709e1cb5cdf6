package domain

import "strings"

// FilterAll is the wire value that clears a category or material dimension.
const FilterAll = "all"

// Product is a read-only catalog record. The storefront only reads products;
// catalog management lives elsewhere.
type Product struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Material    string  `json:"material"`
	Price       float64 `json:"price"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

// FilterEngine owns the active filter criteria for a catalog view. Each
// setter replaces exactly one dimension and leaves the others untouched, so
// the visibility decision for one dimension never depends on another.
type FilterEngine struct {
	category   string
	material   string
	maxPrice   *float64
	searchTerm string
}

// NewFilterEngine creates an engine with no active filters: every product is
// visible.
func NewFilterEngine() *FilterEngine {
	return &FilterEngine{}
}

// SetCategory replaces the category dimension. Empty or "all" clears it.
func (e *FilterEngine) SetCategory(v string) {
	e.category = normalizeDimension(v)
}

// SetMaterial replaces the material dimension. Empty or "all" clears it.
func (e *FilterEngine) SetMaterial(v string) {
	e.material = normalizeDimension(v)
}

// SetMaxPrice replaces the price ceiling. Nil clears it.
func (e *FilterEngine) SetMaxPrice(v *float64) {
	e.maxPrice = v
}

// SetSearchTerm replaces the search term. Empty clears it.
func (e *FilterEngine) SetSearchTerm(v string) {
	e.searchTerm = strings.TrimSpace(v)
}

// IsVisible reports whether the product passes every active filter. It is a
// pure conjunction of four independent predicates; evaluation order does not
// affect the result.
func (e *FilterEngine) IsVisible(p Product) bool {
	if e.category != "" && !strings.EqualFold(p.Category, e.category) {
		return false
	}
	if e.material != "" && !strings.EqualFold(p.Material, e.material) {
		return false
	}
	if e.maxPrice != nil && p.Price > *e.maxPrice {
		return false
	}
	if e.searchTerm != "" && !containsFold(p.Title, e.searchTerm) && !containsFold(p.Description, e.searchTerm) {
		return false
	}
	return true
}

// VisibleCount returns how many products pass the active filters. Used for
// the results counter.
func (e *FilterEngine) VisibleCount(products []Product) int {
	var n int
	for _, p := range products {
		if e.IsVisible(p) {
			n++
		}
	}
	return n
}

// Apply returns the products that pass the active filters, in input order.
func (e *FilterEngine) Apply(products []Product) []Product {
	visible := make([]Product, 0, len(products))
	for _, p := range products {
		if e.IsVisible(p) {
			visible = append(visible, p)
		}
	}
	return visible
}

func normalizeDimension(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, FilterAll) {
		return ""
	}
	return v
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

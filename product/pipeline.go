package product

import (
	"cmp"
	"slices"
	"strings"
)

// AllCategories is the category selector value that disables category filtering.
const AllCategories = "All"

// SortDir is the price sort direction.
type SortDir string

const (
	// SortAsc orders products from cheapest to most expensive.
	SortAsc SortDir = "asc"

	// SortDesc orders products from most expensive to cheapest.
	SortDesc SortDir = "desc"
)

// Toggle returns the opposite direction.
func (d SortDir) Toggle() SortDir {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// Valid reports whether d is one of the defined directions.
func (d SortDir) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// Params are the user-controlled inputs of the pipeline.
//
// The zero value is usable: an empty Category means [AllCategories] and an
// empty SortDir means [SortAsc].
type Params struct {
	SearchTerm string
	Category   string
	SortDir    SortDir
}

// ClearedParams returns the parameters after a clear-filters action.
func ClearedParams() Params {
	return Params{
		SearchTerm: "",
		Category:   AllCategories,
		SortDir:    SortAsc,
	}
}

// Normalize fills in defaults for empty fields.
func (p Params) Normalize() Params {
	if p.Category == "" {
		p.Category = AllCategories
	}
	if !p.SortDir.Valid() {
		p.SortDir = SortAsc
	}
	return p
}

// Apply filters and then sorts products according to params.
// The input slice is never modified.
func Apply(products []Product, params Params) []Product {
	params = params.Normalize()
	return SortByPrice(Filter(products, params.SearchTerm, params.Category), params.SortDir)
}

// Filter returns the products whose name contains term (case-insensitive)
// and whose category matches. Original order is preserved.
func Filter(products []Product, term, category string) []Product {
	if category == "" {
		category = AllCategories
	}
	needle := strings.ToLower(term)

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if category != AllCategories && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// SortByPrice returns a copy of products ordered by price.
// The sort is stable: equal prices keep their original relative order.
func SortByPrice(products []Product, dir SortDir) []Product {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []Product{}
	}

	slices.SortStableFunc(sorted, func(a, b Product) int {
		if dir == SortDesc {
			return cmp.Compare(b.Price, a.Price)
		}
		return cmp.Compare(a.Price, b.Price)
	})
	return sorted
}

// Categories returns "All" followed by the distinct categories of products
// in first-seen order.
func Categories(products []Product) []string {
	categories := []string{AllCategories}
	seen := map[string]struct{}{AllCategories: {}}

	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

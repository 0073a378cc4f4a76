// Package product defines the product record served by the catalog API and
// the pure data pipeline applied to it before rendering.
//
// The pipeline is a sequence of pure functions. Each step returns a new
// slice and never mutates its input:
//
//	visible := product.Apply(all, product.Params{
//	    SearchTerm: "widget",
//	    Category:   "Tools",
//	    SortDir:    product.SortDesc,
//	})
//
// [Decode] normalises the two response shapes the API is known to produce
// (a bare array, or an envelope with a "data" field) into a flat list.
package product

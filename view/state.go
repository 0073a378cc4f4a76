package view

import (
	"slices"
	"time"

	"github.com/jpalmerr/productboard/product"
)

// FetchFailedMessage is the user-visible text for any product fetch failure.
const FetchFailedMessage = "Failed to load products"

// State is the complete, immutable UI state of the dashboard.
//
// Fields are unexported; use the accessor methods to read them and [Reduce]
// to derive a new State.
type State struct {
	products    []product.Product
	params      product.Params
	status      FetchStatus
	err         string
	lastUpdated time.Time
	refreshing  bool
	health      HealthStatus
}

// Initial returns the state of a freshly mounted view: loading, health
// checking, filters cleared.
func Initial() State {
	return State{
		products: []product.Product{},
		params:   product.ClearedParams(),
		status:   FetchLoading,
		health:   HealthChecking,
	}
}

// Products returns a copy of the full, unfiltered product list.
func (s State) Products() []product.Product {
	return slices.Clone(s.products)
}

// Params returns the current filter and sort parameters.
func (s State) Params() product.Params {
	return s.params
}

// WithParams returns a copy of s that filters and sorts with p.
//
// Each dashboard client keeps its own params over the shared product list
// and fetch state; WithParams combines the two for rendering.
func (s State) WithParams(p product.Params) State {
	s.params = p.Normalize()
	return s
}

// Status returns the fetch status.
func (s State) Status() FetchStatus {
	return s.status
}

// Err returns the error message; empty unless Status is [FetchError].
func (s State) Err() string {
	return s.err
}

// LastUpdated returns when the product list was last fetched successfully.
// The zero time means it never was.
func (s State) LastUpdated() time.Time {
	return s.lastUpdated
}

// Refreshing reports whether a fetch is in flight.
func (s State) Refreshing() bool {
	return s.refreshing
}

// Health returns the API health indicator state.
func (s State) Health() HealthStatus {
	return s.health
}

// Visible returns the filtered and sorted products for the current params.
func (s State) Visible() []product.Product {
	return product.Apply(s.products, s.params)
}

// Categories returns the category selector options.
func (s State) Categories() []string {
	return product.Categories(s.products)
}

// ExportCSV serialises the visible products. The boolean is false when
// nothing is visible and no file should be produced.
func (s State) ExportCSV() ([]byte, bool) {
	return product.ExportCSV(s.Visible())
}

package view

import (
	"slices"

	"github.com/jpalmerr/productboard/product"
)

// Reduce returns the state that results from applying action to s.
// s itself is left untouched. Unknown actions return s unchanged.
func Reduce(s State, action Action) State {
	next := s

	switch a := action.(type) {
	case FetchStarted:
		next.refreshing = true
		next.err = ""
		if next.status == FetchError {
			next.status = FetchReady
		}

	case FetchSucceeded:
		next.products = slices.Clone(a.Products)
		if next.products == nil {
			next.products = []product.Product{}
		}
		next.status = FetchReady
		next.err = ""
		next.lastUpdated = a.At
		next.refreshing = false

	case FetchFailed:
		next.status = FetchError
		next.err = a.Message
		if next.err == "" {
			next.err = FetchFailedMessage
		}
		next.refreshing = false

	case FetchAbandoned:
		next.refreshing = false

	case HealthResolved:
		if a.Status == HealthOnline || a.Status == HealthOffline {
			next.health = a.Status
		}

	case SearchChanged:
		next.params.SearchTerm = a.Term

	case CategorySelected:
		next.params.Category = a.Category
		if next.params.Category == "" {
			next.params.Category = product.AllCategories
		}

	case SortToggled:
		next.params.SortDir = next.params.SortDir.Toggle()

	case FiltersCleared:
		next.params = product.ClearedParams()
	}

	return next
}

// ReduceAll folds a sequence of actions over s.
func ReduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

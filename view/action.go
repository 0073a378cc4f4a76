package view

import (
	"time"

	"github.com/jpalmerr/productboard/product"
)

// Action is an input to [Reduce].
//
// The set of actions is closed; only the types in this package implement it.
type Action interface {
	isAction()
}

// FetchStarted marks the start of a product fetch (initial load or refresh).
type FetchStarted struct{}

// FetchSucceeded carries a freshly fetched product list.
type FetchSucceeded struct {
	Products []product.Product
	At       time.Time
}

// FetchFailed records a failed fetch with its user-visible message.
type FetchFailed struct {
	Message string
}

// FetchAbandoned marks a fetch whose outcome will never be applied, such as
// one cancelled by its caller. The fetch status is left as it was.
type FetchAbandoned struct{}

// HealthResolved records the outcome of a health probe.
type HealthResolved struct {
	Status HealthStatus
}

// SearchChanged sets the name search term.
type SearchChanged struct {
	Term string
}

// CategorySelected sets the category filter.
type CategorySelected struct {
	Category string
}

// SortToggled flips the price sort direction.
type SortToggled struct{}

// FiltersCleared resets search, category and sort to their defaults.
type FiltersCleared struct{}

func (FetchStarted) isAction()     {}
func (FetchSucceeded) isAction()   {}
func (FetchFailed) isAction()      {}
func (FetchAbandoned) isAction()   {}
func (HealthResolved) isAction()   {}
func (SearchChanged) isAction()    {}
func (CategorySelected) isAction() {}
func (SortToggled) isAction()      {}
func (FiltersCleared) isAction()   {}

// ErrorMessage builds the text shown when a fetch fails. A message supplied
// by the server is appended when present.
func ErrorMessage(serverMessage string) string {
	if serverMessage == "" {
		return FetchFailedMessage
	}
	return FetchFailedMessage + ": " + serverMessage
}

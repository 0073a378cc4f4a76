package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpalmerr/productboard/product"
)

func sampleProducts() []product.Product {
	return []product.Product{
		{ID: "1", Name: "Widget", Category: "Tools", Price: 10},
		{ID: "2", Name: "Gadget", Category: "Tools", Price: 5},
		{ID: "3", Name: "Sprocket", Category: "Parts", Price: 20},
	}
}

func loaded(t *testing.T) State {
	t.Helper()
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	return ReduceAll(Initial(), FetchStarted{}, FetchSucceeded{Products: sampleProducts(), At: at})
}

func TestInitial(t *testing.T) {
	s := Initial()

	assert.Equal(t, FetchLoading, s.Status())
	assert.Equal(t, HealthChecking, s.Health())
	assert.Equal(t, product.ClearedParams(), s.Params())
	assert.Empty(t, s.Products())
	assert.True(t, s.LastUpdated().IsZero())
	assert.False(t, s.Refreshing())
}

func TestReduce_FetchLifecycle(t *testing.T) {
	s := Reduce(Initial(), FetchStarted{})
	assert.Equal(t, FetchLoading, s.Status())
	assert.True(t, s.Refreshing())

	at := time.Now()
	s = Reduce(s, FetchSucceeded{Products: sampleProducts(), At: at})
	assert.Equal(t, FetchReady, s.Status())
	assert.False(t, s.Refreshing())
	assert.Equal(t, at, s.LastUpdated())
	assert.Len(t, s.Products(), 3)
}

func TestReduce_FetchFailedThenRefreshClearsError(t *testing.T) {
	s := ReduceAll(Initial(), FetchStarted{}, FetchFailed{Message: FetchFailedMessage})
	require.Equal(t, FetchError, s.Status())
	assert.Equal(t, "Failed to load products", s.Err())
	assert.False(t, s.Refreshing())

	s = Reduce(s, FetchStarted{})
	assert.Equal(t, FetchReady, s.Status())
	assert.Empty(t, s.Err())
	assert.True(t, s.Refreshing())
}

func TestReduce_FetchAbandoned(t *testing.T) {
	s := Reduce(Reduce(Initial(), FetchStarted{}), FetchAbandoned{})
	assert.Equal(t, FetchLoading, s.Status())
	assert.False(t, s.Refreshing())

	ready := loaded(t)
	s = ReduceAll(ready, FetchStarted{}, FetchAbandoned{})
	assert.Equal(t, FetchReady, s.Status())
	assert.False(t, s.Refreshing())
	assert.Equal(t, ready.Products(), s.Products())
	assert.Equal(t, ready.LastUpdated(), s.LastUpdated())
}

func TestReduce_FetchFailedDefaultsMessage(t *testing.T) {
	s := Reduce(Initial(), FetchFailed{})

	assert.Equal(t, FetchFailedMessage, s.Err())
}

func TestReduce_DoesNotMutatePreviousState(t *testing.T) {
	before := loaded(t)

	after := ReduceAll(before,
		SearchChanged{Term: "wid"},
		CategorySelected{Category: "Tools"},
		SortToggled{},
		FetchFailed{Message: "boom"},
	)

	assert.Equal(t, product.ClearedParams(), before.Params())
	assert.Equal(t, FetchReady, before.Status())
	assert.Equal(t, "wid", after.Params().SearchTerm)
	assert.Equal(t, FetchError, after.Status())
}

func TestReduce_FetchSucceededCopiesProducts(t *testing.T) {
	products := sampleProducts()
	s := Reduce(Initial(), FetchSucceeded{Products: products, At: time.Now()})

	products[0].Name = "mutated"

	assert.Equal(t, "Widget", s.Products()[0].Name)
}

func TestReduce_LastResponseWins(t *testing.T) {
	first := []product.Product{{ID: "a", Name: "Old", Price: 1}}
	second := []product.Product{{ID: "b", Name: "New", Price: 2}}

	s := ReduceAll(Initial(),
		FetchStarted{},
		FetchStarted{},
		FetchSucceeded{Products: second, At: time.Now()},
		FetchSucceeded{Products: first, At: time.Now()},
	)

	require.Len(t, s.Products(), 1)
	assert.Equal(t, "Old", s.Products()[0].Name)
}

func TestReduce_HealthResolved(t *testing.T) {
	s := Reduce(Initial(), HealthResolved{Status: HealthOnline})
	assert.Equal(t, HealthOnline, s.Health())

	s = Reduce(s, HealthResolved{Status: HealthChecking})
	assert.Equal(t, HealthOnline, s.Health())

	s = Reduce(s, HealthResolved{Status: HealthOffline})
	assert.Equal(t, HealthOffline, s.Health())
}

func TestReduce_FiltersCleared(t *testing.T) {
	s := ReduceAll(loaded(t),
		SearchChanged{Term: "g"},
		CategorySelected{Category: "Parts"},
		SortToggled{},
		FiltersCleared{},
	)

	assert.Equal(t, product.Params{SearchTerm: "", Category: "All", SortDir: product.SortAsc}, s.Params())
}

func TestReduce_EmptyCategoryMeansAll(t *testing.T) {
	s := Reduce(loaded(t), CategorySelected{Category: ""})

	assert.Equal(t, product.AllCategories, s.Params().Category)
}

func TestReduce_SortToggled(t *testing.T) {
	s := Reduce(loaded(t), SortToggled{})
	assert.Equal(t, product.SortDesc, s.Params().SortDir)

	s = Reduce(s, SortToggled{})
	assert.Equal(t, product.SortAsc, s.Params().SortDir)
}

func TestState_WithParams(t *testing.T) {
	shared := loaded(t)
	params := product.Params{SearchTerm: "get", Category: "Tools", SortDir: product.SortDesc}

	s := shared.WithParams(params)

	assert.Equal(t, params, s.Params())
	assert.Equal(t, product.ClearedParams(), shared.Params(), "original state must not change")
	require.Len(t, s.Visible(), 2)
	assert.Equal(t, "Widget", s.Visible()[0].Name)
	assert.Equal(t, "Gadget", s.Visible()[1].Name)

	s = shared.WithParams(product.Params{})
	assert.Equal(t, product.ClearedParams(), s.Params())
	assert.Len(t, s.Visible(), 3)
}

func TestState_VisibleAndExport(t *testing.T) {
	s := Reduce(loaded(t), CategorySelected{Category: "Tools"})

	visible := s.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "Gadget", visible[0].Name)
	assert.Equal(t, "Widget", visible[1].Name)

	data, ok := s.ExportCSV()
	assert.True(t, ok)
	assert.Equal(t, "Name,Category,Price\nGadget,Tools,5\nWidget,Tools,10", string(data))

	s = Reduce(s, SearchChanged{Term: "nothing matches"})
	_, ok = s.ExportCSV()
	assert.False(t, ok)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Failed to load products", ErrorMessage(""))
	assert.Equal(t, "Failed to load products: database unavailable", ErrorMessage("database unavailable"))
}

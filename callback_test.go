package productboard

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jpalmerr/productboard/view"
)

func TestWithStateCallback_InvokedOnDispatch(t *testing.T) {
	ts := newCatalogAPI(t, catalogJSON, http.StatusOK)

	var callCount atomic.Int32
	b := newTestBoard(t, ts.URL, WithStateCallback(func(view.State) {
		callCount.Add(1)
	}))

	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	// FetchStarted and FetchSucceeded
	if got := callCount.Load(); got != 2 {
		t.Errorf("callback invoked %d times, want 2", got)
	}
}

func TestWithStateCallback_ReceivesNewState(t *testing.T) {
	ts := newCatalogAPI(t, catalogJSON, http.StatusOK)

	var mu sync.Mutex
	var states []view.State
	b := newTestBoard(t, ts.URL, WithStateCallback(func(s view.State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	}))

	_ = b.Refresh(context.Background())
	b.Dispatch(view.SearchChanged{Term: "app"})

	mu.Lock()
	defer mu.Unlock()

	if len(states) != 3 {
		t.Fatalf("len(states) = %d, want 3", len(states))
	}
	if !states[0].Refreshing() {
		t.Error("first transition should mark the fetch as started")
	}
	if states[1].Status() != view.FetchReady {
		t.Errorf("second transition Status() = %v, want %v", states[1].Status(), view.FetchReady)
	}
	if states[2].Params().SearchTerm != "app" {
		t.Errorf("third transition SearchTerm = %q, want %q", states[2].Params().SearchTerm, "app")
	}
	if len(states[2].Visible()) != 1 {
		t.Errorf("third transition len(Visible()) = %d, want 1", len(states[2].Visible()))
	}
}

func TestWithStateCallback_PanicRecovery(t *testing.T) {
	ts := newCatalogAPI(t, catalogJSON, http.StatusOK)

	var normalCalled atomic.Bool

	// use a logger that captures output to verify panic was logged
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	b := newTestBoard(t, ts.URL,
		WithStateCallback(func(view.State) {
			panic("intentional test panic")
		}),
		WithStateCallback(func(view.State) {
			normalCalled.Store(true)
		}), // should still be called after panic
		WithLogger(logger),
	)

	// should not panic
	b.Dispatch(view.SortToggled{})

	if !normalCalled.Load() {
		t.Error("subsequent callbacks should still run after panic")
	}

	logOutput := logBuf.String()
	if !strings.Contains(logOutput, "state callback panicked") {
		t.Errorf("panic should have been logged, got %q", logOutput)
	}
	if !strings.Contains(logOutput, "correlation_id") {
		t.Error("panic log should carry a correlation id")
	}
}

func TestWithStateCallback_NilIsSafe(t *testing.T) {
	b, err := New(WithStateCallback(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(b.stateCallbacks) != 0 {
		t.Errorf("len(stateCallbacks) = %d, want 0", len(b.stateCallbacks))
	}

	// should not panic
	b.Dispatch(view.FiltersCleared{})
}

func TestWithStateCallback_ExecutionOrder(t *testing.T) {
	var mu sync.Mutex
	var order []int

	record := func(n int) func(view.State) {
		return func(view.State) {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}
	}

	b, err := New(
		WithStateCallback(record(1)),
		WithStateCallback(record(2)),
		WithStateCallback(record(3)),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	b.Dispatch(view.SortToggled{})

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestWithStateCallback_NoSharedReferences(t *testing.T) {
	ts := newCatalogAPI(t, catalogJSON, http.StatusOK)

	b := newTestBoard(t, ts.URL, WithStateCallback(func(s view.State) {
		products := s.Products()
		for i := range products {
			products[i].Name = "mutated"
		}
	}))

	_ = b.Refresh(context.Background())

	for _, p := range b.State().Products() {
		if p.Name == "mutated" {
			t.Fatal("callback mutation leaked into board state")
		}
	}
}

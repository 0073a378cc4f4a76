package store

import (
	"sync"
	"testing"
	"time"

	"github.com/jpalmerr/productboard/product"
	"github.com/jpalmerr/productboard/view"
)

func TestNewMemoryStore(t *testing.T) {
	store := NewMemoryStore(view.Initial())
	if store == nil {
		t.Fatal("NewMemoryStore() = nil")
	}

	// should start with the initial state
	if got := store.Get().Status(); got != view.FetchLoading {
		t.Errorf("Get().Status() = %v, want %v", got, view.FetchLoading)
	}
}

func TestMemoryStore_Update(t *testing.T) {
	store := NewMemoryStore(view.Initial())

	next := view.Reduce(view.Initial(), view.FetchSucceeded{
		Products: []product.Product{{ID: "1", Name: "Widget", Category: "Tools", Price: 10}},
		At:       time.Now(),
	})
	store.Update(next)

	got := store.Get()
	if got.Status() != view.FetchReady {
		t.Errorf("Get().Status() = %v, want %v", got.Status(), view.FetchReady)
	}
	if len(got.Products()) != 1 {
		t.Errorf("len(Get().Products()) = %d, want 1", len(got.Products()))
	}
}

func TestMemoryStore_UpdateOverwrites(t *testing.T) {
	store := NewMemoryStore(view.Initial())

	store.Update(view.Reduce(view.Initial(), view.HealthResolved{Status: view.HealthOnline}))
	store.Update(view.Reduce(view.Initial(), view.HealthResolved{Status: view.HealthOffline}))

	if got := store.Get().Health(); got != view.HealthOffline {
		t.Errorf("Get().Health() = %v, want %v", got, view.HealthOffline)
	}
}

func TestMemoryStore_Subscribe(t *testing.T) {
	store := NewMemoryStore(view.Initial())

	ch := store.Subscribe()
	if ch == nil {
		t.Fatal("Subscribe() = nil")
	}

	// update should send to subscriber
	go func() {
		store.Update(view.Reduce(view.Initial(), view.SearchChanged{Term: "wid"}))
	}()

	select {
	case state := <-ch:
		if state.Params().SearchTerm != "wid" {
			t.Errorf("received SearchTerm = %q, want %q", state.Params().SearchTerm, "wid")
		}
	case <-time.After(1 * time.Second):
		t.Error("Subscribe() channel did not receive update")
	}
}

func TestMemoryStore_MultipleSubscribers(t *testing.T) {
	store := NewMemoryStore(view.Initial())

	ch1 := store.Subscribe()
	ch2 := store.Subscribe()
	ch3 := store.Subscribe()

	// update should fanout to all subscribers
	go func() {
		store.Update(view.Reduce(view.Initial(), view.SortToggled{}))
	}()

	received := 0
	timeout := time.After(1 * time.Second)

	for received < 3 {
		select {
		case <-ch1:
			received++
		case <-ch2:
			received++
		case <-ch3:
			received++
		case <-timeout:
			t.Fatalf("Only received %d/3 updates", received)
		}
	}
}

func TestMemoryStore_Unsubscribe(t *testing.T) {
	store := NewMemoryStore(view.Initial())

	ch := store.Subscribe()
	store.Unsubscribe(ch)

	// channel should be closed
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Unsubscribe() channel should be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Unsubscribe() channel should be closed immediately")
	}

	// second call is a no-op
	store.Unsubscribe(ch)
}

func TestMemoryStore_UnsubscribeStopsDelivery(t *testing.T) {
	store := NewMemoryStore(view.Initial())

	ch1 := store.Subscribe()
	ch2 := store.Subscribe()

	store.Unsubscribe(ch1)

	go func() {
		store.Update(view.Initial())
	}()

	select {
	case <-ch2:
		// expected
	case <-time.After(1 * time.Second):
		t.Error("ch2 should still receive updates")
	}
}

func TestMemoryStore_SlowSubscriberDoesNotBlock(t *testing.T) {
	store := NewMemoryStore(view.Initial())

	// create a subscriber but don't read from it
	_ = store.Subscribe()

	ch2 := store.Subscribe()

	done := make(chan bool)

	go func() {
		// this should not block even though ch1 is not being read
		for i := 0; i < 200; i++ {
			store.Update(view.Initial())
		}
		done <- true
	}()

	go func() {
		for range ch2 {
		}
	}()

	select {
	case <-done:
		// expected - updates completed without blocking
	case <-time.After(2 * time.Second):
		t.Error("Update() blocked on slow subscriber")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(view.Initial())

	var wg sync.WaitGroup
	numGoroutines := 10
	numUpdates := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numUpdates; j++ {
				store.Update(view.Reduce(store.Get(), view.SortToggled{}))
			}
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numUpdates; j++ {
				_ = view.Render(store.Get())
			}
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := store.Subscribe()
			time.Sleep(10 * time.Millisecond)
			store.Unsubscribe(ch)
		}()
	}

	wg.Wait()
}

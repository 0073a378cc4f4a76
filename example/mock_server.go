package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// mockProduct mirrors the upstream wire shape, numeric id included.
type mockProduct struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// StartMockCatalogServer runs a mock product API.
//
// Prices drift a little on every request so refreshes are visible, and the
// response alternates between a bare array and a {"data": [...]} envelope.
// Call this in a goroutine before creating the Board.
func StartMockCatalogServer(addr string) {
	var (
		mu       sync.Mutex
		requests int
	)
	catalog := []mockProduct{
		{1, "Apple", "Fruit", 1.2},
		{2, "Banana", "Fruit", 0.5},
		{3, "Carrot", "Vegetables", 0.8},
		{4, "Sourdough", "Bakery", 4.5},
		{5, "Croissant", "Bakery", 2.1},
		{6, "Cheddar", "Dairy", 6.75},
		{7, "Milk", "Dairy", 1.1},
		{8, "Broccoli", "Vegetables", 1.6},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/product", func(w http.ResponseWriter, r *http.Request) {
		// simulate latency variance; overlapping refreshes may resolve out of order
		time.Sleep(time.Duration(100+rand.Intn(400)) * time.Millisecond)

		mu.Lock()
		requests++
		n := requests
		for i := range catalog {
			drift := 1 + (rand.Float64()-0.5)/10
			catalog[i].Price = float64(int(catalog[i].Price*drift*100)) / 100
		}
		items := append([]mockProduct(nil), catalog...)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		var body any = items
		if n%2 == 0 {
			body = map[string]any{"data": items}
		}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}

// Standalone mock product API for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/productboard serve -c example/config.yaml
//	go run ./cmd/productboard tui -c example/config.yaml
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
)

func main() {
	addr := flag.String("addr", ":5103", "listen address")
	failEvery := flag.Int("fail-every", 0, "answer every Nth product request with 503 (0 disables)")
	flag.Parse()

	fmt.Printf("Mock product API starting on %s\n", *addr)
	fmt.Println("GET /api/product returns 6 products, GET /health returns 200")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	products := []map[string]any{
		{"id": 1, "name": "Apple", "category": "Fruit", "price": 1.2},
		{"id": 2, "name": "Banana", "category": "Fruit", "price": 0.5},
		{"id": "sku-3", "name": "Carrot", "category": "Vegetables", "price": 0.8},
		{"id": 4, "name": "Sourdough", "category": "Bakery", "price": 4.5},
		{"id": 5, "name": "Cheddar", "category": "Dairy", "price": 6.75},
		{"id": 6, "name": "Milk", "category": "Dairy", "price": 1.1},
	}

	var requests atomic.Int64
	http.HandleFunc("GET /api/product", func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if *failEvery > 0 && n%int64(*failEvery) == 0 {
			slog.Info("failing request", "request", n)
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "catalog maintenance"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": products})
	})
	http.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if err := http.ListenAndServe(*addr, nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

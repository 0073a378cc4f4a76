package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/productboard"
	"github.com/jpalmerr/productboard/view"
)

func main() {
	// start mock catalog (see mock_server.go)
	go StartMockCatalogServer(":9999")
	time.Sleep(100 * time.Millisecond)

	b, err := productboard.New(
		productboard.WithBaseURL("http://localhost:9999"),
		productboard.WithTitle("Grocery Catalog"),
		productboard.WithRequestTimeout(5*time.Second),
		productboard.WithPort(8080),
		productboard.WithStateCallback(func(s view.State) {
			if s.Status() == view.FetchError {
				slog.Warn("catalog unavailable", "error", s.Err())
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create productboard", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   ProductBoard Demo                                   ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Mock catalog: 8 products in 4 categories            ║")
	fmt.Println("  ║   Press / to search, Refresh to re-fetch              ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil {
		slog.Error("productboard error", "error", err)
		os.Exit(1)
	}
}

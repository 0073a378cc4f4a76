// Package productboard provides a small product-catalog dashboard.
//
// ProductBoard fetches a list of product records from a remote HTTP API and
// presents them in a searchable, filterable, sortable table with CSV export
// and an API-health indicator. It can be embedded as a library or run with
// the productboard CLI.
//
// # Quick Start
//
//	b, _ := productboard.New(productboard.WithBaseURL("http://localhost:5103"))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	b.Start(ctx) // blocks until context is cancelled
//
// # Upstream API
//
// Two endpoints are used, each with a plain GET and no authentication:
//
//   - {base}/api/product returns either a bare JSON array of products or an
//     envelope {"data": [...]}. Any other body is treated as an empty list.
//   - {base}/health answers 2xx when the API is online.
//
// Neither request is retried. The product list is fetched and health is
// checked when the dashboard starts and whenever a new dashboard client
// connects; otherwise the list is fetched again only when the user asks for
// a refresh. Each browser tab keeps its own search, category and sort.
//
// # State
//
// The dashboard state is an immutable [view.State] changed only through
// [view.Reduce]. [Board.Dispatch] is the single entry point; front ends
// (the embedded web page and the terminal UI) render [view.Model] values
// derived from it.
//
// # Architecture
//
//   - product: Product model, response decoding and the filter/sort/export pipeline
//   - view: UI state, actions, reducer and rendered model
//   - internal/client: HTTP client for the upstream API
//   - internal/store: current state with pub/sub for real-time updates
//   - internal/server: HTTP server with JSON API and Server-Sent Events
//   - internal/tui: terminal front end
//   - dashboard: Embedded web UI assets
package productboard

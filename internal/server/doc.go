// Package server provides the HTTP server for the ProductBoard dashboard.
//
// This package is internal to ProductBoard and handles all HTTP concerns:
//
//   - Dashboard serving: Serves the embedded HTML/CSS/JS dashboard at "/"
//   - REST API: the rendered view model at "/api/state", user actions at
//     "/api/actions" and the CSV download at "/api/export"
//   - Server-Sent Events: Real-time view models at "/api/sse"
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server

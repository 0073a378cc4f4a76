// Package dashboard provides the embedded web UI assets for ProductBoard.
//
// This package uses Go's embed directive to include the dashboard HTML, CSS,
// and JavaScript at compile time. This enables single-binary deployment
// without external asset files.
//
// The page is a thin client: it renders the view model served by
// /api/state and /api/sse and posts user input to /api/actions. Filtering,
// sorting and CSV generation all happen server-side, but each tab keeps its
// own filters under the client id handed out by /api/state.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the dashboard web UI.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - Dashboard page with inline CSS and JavaScript
//
//go:embed assets/*
var Assets embed.FS

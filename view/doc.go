// Package view holds the UI state of the product dashboard and the pure
// transitions that change it.
//
// State is an immutable value. Every change goes through [Reduce], which
// returns a new State for an [Action]; nothing mutates a State in place.
// [Render] derives everything a front end draws (visible rows, categories,
// labels, the active branch) from a State, so the browser dashboard and the
// terminal UI display exactly the same thing.
package view

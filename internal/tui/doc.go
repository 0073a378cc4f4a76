// Package tui is the terminal front end for ProductBoard.
//
// It runs a bubbletea program over the same [view.State] reducer the browser
// dashboard uses, so filtering, sorting and export behave identically.
package tui

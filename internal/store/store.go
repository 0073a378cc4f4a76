package store

import "github.com/jpalmerr/productboard/view"

// Store defines the interface for holding the current view state and
// subscribing to its changes.
//
// Store implementations must be safe for concurrent access. The pub/sub
// mechanism allows state changes to be pushed to connected clients
// (e.g., via Server-Sent Events).
type Store interface {
	// Update replaces the current state and notifies all subscribers.
	Update(state view.State)

	// Get returns the current state.
	Get() view.State

	// Subscribe returns a channel that receives every new state.
	// The returned channel has a buffer; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan view.State

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan view.State)
}

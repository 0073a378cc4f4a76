// Package store holds the current dashboard state and publishes changes.
//
// This package is internal to ProductBoard. It keeps the latest
// [view.State] snapshot and implements a publish-subscribe pattern so that
// connected dashboard clients receive every new state.
//
// The main components are:
//
//   - [Store]: Interface defining storage and subscription operations
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//
// Subscribers receive updates via channels with non-blocking sends (slow
// subscribers miss intermediate states rather than block the system).
package store

// Package store owns the properties document of one workspace.
//
// A [Store] runs the load pipeline (parse, load-time corrections,
// migration, default-merge, validation, squiggles) and keeps the
// last good result. Every failure leaves the previous state in place.
//
// Edits never touch the in-memory document. Each command re-reads the
// backing file, applies the change to that fresh copy, writes it back
// and reloads, so the file stays the single authority.
//
// Observers registered with [Store.Subscribe] are called after the
// store releases its lock, in the order events were queued.
package store

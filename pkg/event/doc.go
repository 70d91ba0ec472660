// Package event provides the in-memory Stream, the default EventSource
// implementation. Emission is synchronous: Emit delivers to the current
// subscribers on the caller's goroutine and returns the first handler
// error, so dispatch failures surface to the emitter immediately.
package event

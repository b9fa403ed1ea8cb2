// Package logging provides concrete implementations of the azsm.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
// Callers never hand loggers secrets or raw tokens; the Logger contract in
// pkg/azsm forbids logging either.
package logging

// Package logging provides a minimal logging interface and adapters for
// aicore.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) used by the engine components for observability. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - CoreLogger with component context and domain helpers for generator
//     calls and snapshot writes
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging

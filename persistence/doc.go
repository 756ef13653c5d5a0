// Package persistence keeps the in-memory stores recoverable across
// restarts. A Manager loads the latest snapshot at startup and writes new
// ones on a fixed interval and on shutdown; the FileStore backend writes
// atomic JSON files, and the sqlite subpackage offers a database-backed
// alternative.
package persistence

// Package session contains concrete SessionStore implementations for chat
// sessions. The contract and the ChatSession type reside in the core
// package; depend on core.SessionStore in your code and select an
// implementation at wiring time.
package session

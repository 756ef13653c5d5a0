// Package core contains the shared domain types and store contracts of
// aicore: experiences, derived pattern entries, decisions, personality
// state, chat sessions and snapshots. Interfaces are declared here while
// concrete implementations live in sibling packages (experience, pattern,
// session, persistence, ...) and are selected at wiring time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends (durable stores, alternative retrieval) to be added without
// introducing dependency cycles.
package core

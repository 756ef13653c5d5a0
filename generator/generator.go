// Package generator defines the capability that turns a retrieved context
// bundle into response text. Two families exist: the deterministic heuristic
// generator in this package (always succeeds) and remote generators in the
// provider subpackages (openai, anthropic) which invoke an external service
// under a bounded timeout. The chat engine tries a configured remote
// generator first and falls back to the heuristic on any error.
package generator

import "context"

// ContextItem is one retrieved experience inside a generation request.
type ContextItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Request is the normalized generation input: the user message plus the
// ordered context bundle and the dominant keywords detected in it.
type Request struct {
	Input    string        `json:"input"`
	Context  []ContextItem `json:"context,omitempty"`
	Keywords []string      `json:"keywords,omitempty"`
}

// Info contains metadata about a generator implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "heuristic", "openai", "anthropic"
	Remote   bool   `json:"remote"`
}

// Generator is the minimal interface the chat engine needs to drive
// generation. Implementations must honor ctx cancellation: the engine bounds
// remote calls with a timeout and abandons them on expiry.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)

	// Info returns information about the generator implementation.
	Info() Info
}

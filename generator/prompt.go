package generator

import (
	"fmt"
	"strings"
)

// SystemPrompt is the instruction shared by all remote providers.
const SystemPrompt = "You are a memory-backed assistant. Answer the user's question using the provided context from memory when it is relevant, and reply in the language of the question."

// BuildPrompt renders the request into the user prompt sent to remote
// providers: the context bundle first, then the question.
func BuildPrompt(req Request) string {
	var b strings.Builder
	if len(req.Context) == 0 {
		b.WriteString("No context available.\n")
	} else {
		b.WriteString("Context from memory:\n")
		for _, item := range req.Context {
			fmt.Fprintf(&b, "- %s (from %s)\n", item.Content, item.Source)
		}
	}
	fmt.Fprintf(&b, "\nUser question: %s\n", req.Input)
	return b.String()
}

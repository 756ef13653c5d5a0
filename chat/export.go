package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/aicore/core"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatText     = "txt"
	FormatMarkdown = "markdown"
)

// Export renders a session in the given format. Unknown formats are a
// ValidationError.
func Export(sess *core.ChatSession, format string) (string, error) {
	switch format {
	case FormatJSON:
		return exportJSON(sess)
	case FormatText:
		return exportText(sess), nil
	case FormatMarkdown, "md":
		return exportMarkdown(sess), nil
	default:
		return "", core.NewValidationError("format", fmt.Sprintf("unsupported format %q (use json, txt or markdown)", format))
	}
}

func exportJSON(sess *core.ChatSession) (string, error) {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	return string(data), nil
}

func exportText(sess *core.ChatSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Chat Session: %s\n", sess.ID)
	fmt.Fprintf(&b, "Created: %s\n\n", sess.Created.Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n")
	for _, msg := range sess.GetMessages() {
		fmt.Fprintf(&b, "\n[%s] %s\n%s\n", msg.Timestamp.Format("15:04:05"), strings.ToUpper(msg.Role), msg.Content)
		b.WriteString(strings.Repeat("-", 50))
		b.WriteString("\n")
	}
	return b.String()
}

func exportMarkdown(sess *core.ChatSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Chat Session: %s\n\n", sess.ID)
	fmt.Fprintf(&b, "**Created:** %s\n\n---\n\n", sess.Created.Format("2006-01-02 15:04:05"))
	for _, msg := range sess.GetMessages() {
		fmt.Fprintf(&b, "## %s (%s)\n\n%s\n\n", strings.ToUpper(msg.Role), msg.Timestamp.Format("15:04:05"), msg.Content)
	}
	return b.String()
}

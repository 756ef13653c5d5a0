package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn inside a ChatSession. Assistant messages
// carry the ids of the experiences that informed the reply; user messages
// leave ContextIDs empty.
type ChatMessage struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	ContextIDs []string  `json:"context_experience_ids,omitempty"`
}

// NewMessageID mints a chat message id.
func NewMessageID() string { return "msg_" + uuid.NewString() }

// NewSessionID mints a chat session id.
func NewSessionID() string { return uuid.NewString() }

// NewUserMessage creates a user-authored message without context provenance.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{
		ID:        NewMessageID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssistantMessage creates an assistant message recording the ids of the
// experiences used to build the reply.
func NewAssistantMessage(content string, contextIDs []string) ChatMessage {
	return ChatMessage{
		ID:         NewMessageID(),
		Role:       RoleAssistant,
		Content:    content,
		Timestamp:  time.Now().UTC(),
		ContextIDs: contextIDs,
	}
}

// ChatSession is an append-only conversation thread. It is safe for
// concurrent access; accessors hand out defensive copies so callers can
// never mutate internal state.
type ChatSession struct {
	ID       string        `json:"id"`
	Messages []ChatMessage `json:"messages"`
	Created  time.Time     `json:"created_at"`
	Updated  time.Time     `json:"updated_at"`
	mu       sync.RWMutex
}

// NewChatSession creates an empty session with the given id.
func NewChatSession(id string) *ChatSession {
	now := time.Now().UTC()
	return &ChatSession{ID: id, Messages: []ChatMessage{}, Created: now, Updated: now}
}

// AddMessage appends a message updating the Updated timestamp.
func (s *ChatSession) AddMessage(msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
	s.Updated = time.Now().UTC()
}

// GetMessages returns a copy of the full message slice.
func (s *ChatSession) GetMessages() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatMessage, len(s.Messages))
	copy(out, s.Messages)
	return out
}

// Recent returns up to n of the newest messages in chronological order.
func (s *ChatSession) Recent(n int) []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || len(s.Messages) == 0 {
		return []ChatMessage{}
	}
	start := len(s.Messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]ChatMessage, len(s.Messages)-start)
	copy(out, s.Messages[start:])
	return out
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *ChatSession) Clone() *ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &ChatSession{ID: s.ID, Messages: make([]ChatMessage, len(s.Messages)), Created: s.Created, Updated: s.Updated}
	for i, m := range s.Messages {
		cm := m
		if m.ContextIDs != nil {
			cm.ContextIDs = append([]string(nil), m.ContextIDs...)
		}
		clone.Messages[i] = cm
	}
	return clone
}

// SessionStore persists chat sessions and their append-only histories.
type SessionStore interface {
	// Get returns a clone of the session or ErrNotFound.
	Get(id string) (*ChatSession, error)

	// Append adds a message to the session, creating it lazily on first use.
	Append(id string, msg ChatMessage) error

	// ListIDs returns the ids of all known sessions.
	ListIDs() []string

	// Clear removes a session entirely or returns ErrNotFound.
	Clear(id string) error
}

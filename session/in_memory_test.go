package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/aicore/core"
)

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*InMemoryStore)(nil)

func TestInMemoryStore_AppendCreatesLazily(t *testing.T) {
	s := NewInMemoryStore()
	if _, err := s.Get("s1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first append, got %v", err)
	}
	if err := s.Append("s1", core.NewUserMessage("hi")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	sess, err := s.Get("s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Messages) != 1 || sess.Messages[0].Content != "hi" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestInMemoryStore_GetReturnsClone(t *testing.T) {
	s := NewInMemoryStore()
	s.Append("s2", core.NewUserMessage("original"))
	sess, _ := s.Get("s2")
	sess.AddMessage(core.NewUserMessage("tampered"))
	again, _ := s.Get("s2")
	if len(again.Messages) != 1 {
		t.Fatal("mutating a returned session must not affect the store")
	}
}

func TestInMemoryStore_ListAndClear(t *testing.T) {
	s := NewInMemoryStore()
	s.Append("a", core.NewUserMessage("1"))
	s.Append("b", core.NewUserMessage("2"))
	if ids := s.ListIDs(); len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	if err := s.Clear("a"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := s.Get("a"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("cleared session must be gone, got %v", err)
	}
	if err := s.Clear("missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound clearing unknown session, got %v", err)
	}
}

func TestInMemoryStore_ConcurrentAppends(t *testing.T) {
	s := NewInMemoryStore()
	wg := sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Append("shared", core.NewUserMessage(fmt.Sprintf("m%d", i))); err != nil {
				t.Errorf("append error: %v", err)
			}
		}(i)
	}
	wg.Wait()
	sess, err := s.Get("shared")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Messages) != 20 {
		t.Fatalf("expected 20 messages (no lost appends), got %d", len(sess.Messages))
	}
}

package experience

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/aicore/core"
)

// Interface compliance (compile-time assertion)
var _ core.ExperienceStore = (*InMemoryStore)(nil)

func TestInMemoryStore_InsertAndList(t *testing.T) {
	s := NewInMemoryStore()
	var ids []string
	for i := 0; i < 5; i++ {
		exp, err := s.Insert(fmt.Sprintf("content %d", i), "system", "")
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		ids = append(ids, exp.ID)
	}
	list := s.List()
	if len(list) != 5 {
		t.Fatalf("expected 5 experiences, got %d", len(list))
	}
	for i, exp := range list {
		if exp.ID != ids[i] {
			t.Fatalf("insertion order violated at %d: %s != %s", i, exp.ID, ids[i])
		}
	}
	// returned slice is a copy
	list[0].Content = "mutated"
	if s.List()[0].Content != "content 0" {
		t.Error("List must return a defensive copy")
	}
}

func TestInMemoryStore_InsertValidation(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.Insert("   ", "user", "")
	if err == nil {
		t.Fatal("expected validation error for empty content")
	}
	if !core.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if s.Len() != 0 {
		t.Fatal("rejected insert must not mutate the store")
	}
}

func TestInMemoryStore_Get(t *testing.T) {
	s := NewInMemoryStore()
	exp, _ := s.Insert("hello world", "user", "meta")
	got, err := s.Get(exp.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Content != "hello world" || got.Metadata != "meta" {
		t.Fatalf("unexpected experience: %+v", got)
	}
	if _, err := s.Get("exp_missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryStore_Search(t *testing.T) {
	s := NewInMemoryStore()
	s.Insert("Cuaca hari ini cerah", "system", "")
	s.Insert("User senang dengan cuaca", "user", "")
	s.Insert("Besok akan hujan", "system", "")

	hits := s.Search("CUACA")
	if len(hits) != 2 {
		t.Fatalf("expected 2 case-insensitive matches, got %d", len(hits))
	}
	// empty result is valid, not an error
	if hits := s.Search("salju"); len(hits) != 0 {
		t.Fatalf("expected no matches, got %d", len(hits))
	}
}

func TestInMemoryStore_Clear(t *testing.T) {
	s := NewInMemoryStore()
	exp, _ := s.Insert("a", "user", "")
	s.Insert("b", "user", "")
	if removed := s.Clear(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if s.Len() != 0 || len(s.List()) != 0 || len(s.Search("a")) != 0 {
		t.Fatal("store must be empty immediately after Clear")
	}
	if _, err := s.Get(exp.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("cleared id must be gone, got %v", err)
	}
}

func TestInMemoryStore_Restore(t *testing.T) {
	s := NewInMemoryStore()
	s.Insert("old", "user", "")
	restored := []core.Experience{
		core.NewExperience("restored one", "system", ""),
		core.NewExperience("restored two", "system", ""),
	}
	s.Restore(restored)
	if s.Len() != 2 {
		t.Fatalf("expected 2 after restore, got %d", s.Len())
	}
	if _, err := s.Get(restored[1].ID); err != nil {
		t.Fatalf("restored id must resolve: %v", err)
	}
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewInMemoryStore()
	wg := sync.WaitGroup{}
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Insert(fmt.Sprintf("concurrent %d", i), "system", ""); err != nil {
				t.Errorf("insert error: %v", err)
			}
			s.List()
			s.Search("concurrent")
		}(i)
	}
	wg.Wait()
	if s.Len() != 25 {
		t.Fatalf("expected 25 after concurrent inserts (no lost writes), got %d", s.Len())
	}
}

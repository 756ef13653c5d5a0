package pattern

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hupe1980/aicore/core"
)

// Interface compliance (compile-time assertion)
var _ core.PatternIndex = (*Index)(nil)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercases and splits on punctuation", "Cuaca, hari INI cerah!", []string{"cuaca", "hari", "cerah"}},
		{"drops short tokens", "go is ok but weather matters", []string{"weather", "matters"}},
		{"drops stop words", "cuaca dengan hujan dan angin", []string{"cuaca", "hujan", "angin"}},
		{"keeps duplicate occurrences", "error error warning", []string{"error", "error", "warning"}},
		{"digits form tokens", "room 404 not found", []string{"room", "404", "found"}},
		{"empty input", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeywords_Dedup(t *testing.T) {
	got := Keywords("cuaca cerah cuaca hujan")
	want := []string{"cuaca", "cerah", "hujan"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Keywords = %v, want %v", got, want)
	}
}

func exps(contents ...string) []core.Experience {
	out := make([]core.Experience, 0, len(contents))
	for _, c := range contents {
		out = append(out, core.NewExperience(c, "system", ""))
	}
	return out
}

func TestIndex_FrequencyAndCoverage(t *testing.T) {
	list := exps(
		"cuaca cerah cuaca", // two occurrences, one experience
		"cuaca mendung",
	)
	ix := NewIndex()
	ix.RebuildAll(list)

	e, err := ix.Detail("cuaca")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Frequency != 3 {
		t.Fatalf("expected frequency 3, got %d", e.Frequency)
	}
	if e.ExperienceCount != 2 || len(e.ExperienceIDs) != 2 {
		t.Fatalf("expected coverage 2, got %d (%v)", e.ExperienceCount, e.ExperienceIDs)
	}
	if e.Frequency < e.ExperienceCount {
		t.Fatal("invariant frequency >= experience_count violated")
	}
	want := []string{list[0].ID, list[1].ID}
	if !reflect.DeepEqual(e.ExperienceIDs, want) {
		t.Fatalf("ids %v, want %v", e.ExperienceIDs, want)
	}
}

func TestIndex_DetailNotFoundAndCase(t *testing.T) {
	ix := NewIndex()
	ix.RebuildAll(exps("hujan deras"))
	if _, err := ix.Detail("HUJAN"); err != nil {
		t.Fatalf("detail lookup must be case-insensitive: %v", err)
	}
	if _, err := ix.Detail("cerah"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIndex_TopOrdering(t *testing.T) {
	ix := NewIndex()
	ix.RebuildAll(exps(
		"banana banana banana",
		"apple apple cherry",
		"apple cherry",
	))
	top := ix.Top(3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].Keyword != "apple" || top[0].Frequency != 3 {
		t.Fatalf("unexpected first entry: %+v", top[0])
	}
	// apple and banana tie at frequency 3 and apple wins alphabetically;
	// cherry trails at 2
	if top[1].Keyword != "banana" || top[2].Keyword != "cherry" {
		t.Fatalf("unexpected ordering: %+v", top)
	}
}

func TestIndex_TopTieBreaksAlphabetically(t *testing.T) {
	ix := NewIndex()
	ix.RebuildAll(exps("zebra yak", "xenon yak zebra xenon"))
	top := ix.Top(2)
	// xenon, yak and zebra all have frequency 2; alphabetical wins
	if top[0].Keyword != "xenon" || top[1].Keyword != "yak" {
		t.Fatalf("tie break violated: %+v", top)
	}
}

func TestIndex_RebuildIdempotent(t *testing.T) {
	list := exps("cuaca hari cerah", "cuaca besok hujan", "hujan deras sekali")
	ix := NewIndex()
	ix.RebuildAll(list)
	first := ix.Top(-1)
	ix.RebuildAll(list)
	second := ix.Top(-1)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("consecutive rebuilds differ:\n%v\n%v", first, second)
	}
}

func TestIndex_IncrementalMatchesRebuild(t *testing.T) {
	list := exps("cuaca hari cerah", "cuaca besok hujan", "user senang sekali")
	incremental := NewIndex()
	for _, exp := range list {
		incremental.Observe(exp)
	}
	rebuilt := NewIndex()
	rebuilt.RebuildAll(list)

	if !reflect.DeepEqual(incremental.Top(-1), rebuilt.Top(-1)) {
		t.Fatal("incremental index state differs from full rebuild")
	}
}

func TestIndex_Clear(t *testing.T) {
	ix := NewIndex()
	ix.RebuildAll(exps("cuaca cerah"))
	ix.Clear()
	if ix.Len() != 0 || len(ix.Top(10)) != 0 {
		t.Fatal("index must be empty after Clear")
	}
}

func TestIndex_InvariantAfterRebuild(t *testing.T) {
	ix := NewIndex()
	ix.RebuildAll(exps(
		"alpha beta alpha gamma",
		"beta beta gamma",
		"alpha solo",
	))
	for _, e := range ix.Top(-1) {
		if e.Frequency < e.ExperienceCount {
			t.Fatalf("frequency < coverage for %q: %+v", e.Keyword, e)
		}
		if e.ExperienceCount != len(e.ExperienceIDs) {
			t.Fatalf("coverage != id set size for %q: %+v", e.Keyword, e)
		}
	}
}

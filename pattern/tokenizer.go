package pattern

import (
	"strings"
	"unicode"
)

// MinTokenLen is the minimum rune length of an indexable token.
const MinTokenLen = 3

// stopWords are never indexed. Common English and Indonesian function words;
// the set is fixed so rebuilds stay deterministic.
var stopWords = map[string]struct{}{
	// English
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "was": {}, "were": {}, "this": {}, "that": {},
	"with": {}, "have": {}, "has": {}, "had": {}, "its": {}, "from": {},
	// Indonesian
	"yang": {}, "dan": {}, "dengan": {}, "untuk": {}, "dari": {},
	"akan": {}, "ada": {}, "itu": {}, "ini": {}, "juga": {}, "atau": {},
	"pada": {}, "adalah": {}, "saya": {}, "anda": {},
}

// IsStopWord reports whether the lowercase token is in the fixed stop set.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// Tokenize splits text into lowercase runs of letters and digits, dropping
// tokens shorter than MinTokenLen and stop words. Duplicate tokens are kept:
// the caller decides whether occurrences or coverage matter.
//
// This is the single tokenizer shared by the pattern index, chat keyword
// extraction and query-scoped decisions.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := b.String()
		b.Reset()
		if len([]rune(tok)) < MinTokenLen {
			return
		}
		if IsStopWord(tok) {
			return
		}
		tokens = append(tokens, tok)
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// Keywords returns the distinct tokens of text in first-seen order.
func Keywords(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range Tokenize(text) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

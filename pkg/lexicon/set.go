// Package lexicon bundles the static bilingual (Polish + English) word
// lists every metric module consults: stopwords, LSM function-word
// categories, emotional vocabulary, demand markers, repair markers,
// temporal markers, pet names, and assertion patterns. Lists are embedded
// at build time via go:embed, following the teacher's pattern of shipping
// reference data inside the binary rather than reading it from disk at
// runtime.
package lexicon

import "sort"

// Set is a frozen, sorted string set with O(log n) membership tests via
// sort.SearchStrings. Word lists are small (tens to low hundreds of
// entries) so a sorted slice beats a map on both memory and cache
// locality, and it is trivially reproducible across runs.
type Set struct {
	words []string
}

// NewSet builds a Set from words, deduplicating and sorting.
func NewSet(words ...string) Set {
	dedup := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if dedup[w] {
			continue
		}
		dedup[w] = true
		out = append(out, w)
	}
	sort.Strings(out)
	return Set{words: out}
}

// Contains reports whether word is in the set.
func (s Set) Contains(word string) bool {
	i := sort.SearchStrings(s.words, word)
	return i < len(s.words) && s.words[i] == word
}

// Len returns the number of words in the set.
func (s Set) Len() int { return len(s.words) }

// Words returns the sorted word slice. Callers must not mutate it.
func (s Set) Words() []string { return s.words }

// HasPrefix reports whether any word in the set is a prefix of word, used
// for matching inflected forms against stems (e.g. Polish case endings)
// without a full morphological analyzer.
func (s Set) HasPrefix(word string) bool {
	for _, w := range s.words {
		if len(w) <= len(word) && word[:len(w)] == w {
			return true
		}
	}
	return false
}

// Package textproc holds the shared primitives every metric module builds
// on: tokenization, emoji counting, session segmentation, Enter-as-comma
// burst consolidation, circular statistics and linear regression, and
// day/month key derivation (spec §4.2).
package textproc

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"
)

// Tokenize normalizes text to NFC, lowercases it, strips emoji pictographs,
// and splits on Unicode word boundaries (UAX #29) via clipperhouse/uax29,
// which handles Polish diacritics and mixed-script text correctly without a
// hand-rolled splitter. NFC normalization matters here because Messenger,
// WhatsApp, and Telegram exports don't agree on whether a Polish diacritic
// (ą, ć, ę, ł, ń, ó, ś, ź, ż) is stored precomposed or as base rune plus
// combining mark — without it, lexicon lookups silently miss decomposed
// forms. Punctuation-only and empty segments are filtered.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(norm.NFC.String(text))

	tokens := make([]string, 0, len(lower)/4)
	seg := words.NewSegmenter([]byte(lower))
	for seg.Next() {
		tok := string(seg.Bytes())
		tok = stripPictographs(tok)
		tok = strings.TrimFunc(tok, isTokenTrim)
		if tok == "" {
			continue
		}
		if !containsLetterOrDigit(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// isTokenTrim reports whether r is punctuation/quote/bracket/dash/slash
// noise to strip from token edges, per spec §4.2.
func isTokenTrim(r rune) bool {
	switch r {
	case '"', '\'', '“', '”', '‘', '’', '(', ')', '[', ']',
		'{', '}', '-', '–', '—', '/', '\\', ',', '.', '!', '?', ':', ';':
		return true
	}
	return unicode.IsSpace(r)
}

func containsLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// stripPictographs removes emoji/pictograph runes from a token so the
// tokenizer's word stream (used by LSM, catchphrases, emotional analysis)
// never contains emoji characters mixed into words.
func stripPictographs(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Extended_Pictographic, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ContentWords tokenizes text and drops anything shorter than minLen runes,
// used by overlap-based detectors (shift/support classification, bid
// response matching) that only care about "substantive" words.
func ContentWords(text string, minLen int) []string {
	tokens := Tokenize(text)
	out := tokens[:0:0]
	for _, t := range tokens {
		if len([]rune(t)) >= minLen {
			out = append(out, t)
		}
	}
	return out
}

// WordOverlapCount returns the number of distinct words of length > minLen
// shared between a and b (case-insensitive, already-tokenized slices).
func WordOverlapCount(a, b []string, minLen int) int {
	set := make(map[string]bool, len(a))
	for _, w := range a {
		if len([]rune(w)) > minLen {
			set[w] = true
		}
	}
	count := 0
	seen := make(map[string]bool)
	for _, w := range b {
		if len([]rune(w)) > minLen && set[w] && !seen[w] {
			seen[w] = true
			count++
		}
	}
	return count
}

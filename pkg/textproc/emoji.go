package textproc

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// CountEmoji walks text grapheme cluster by grapheme cluster (via
// rivo/uniseg) rather than rune by rune, so a ZWJ family sequence or a
// skin-tone-modified emoji counts once instead of once per code point.
// A cluster counts as emoji if its first rune is Extended_Pictographic.
func CountEmoji(text string) int {
	count := 0
	state := -1
	remaining := text
	for len(remaining) > 0 {
		cluster, rest, _, newState := uniseg.StepString(remaining, state)
		state = newState
		remaining = rest
		if isEmojiCluster(cluster) {
			count++
		}
	}
	return count
}

func isEmojiCluster(cluster string) bool {
	for _, r := range cluster {
		if r == 0xFE0F || r == 0x200D {
			continue
		}
		return unicode.Is(unicode.Extended_Pictographic, r)
	}
	return false
}

// UniqueEmoji returns the distinct emoji clusters present in text, in
// first-seen order.
func UniqueEmoji(text string) []string {
	seen := make(map[string]bool)
	var out []string
	state := -1
	remaining := text
	for len(remaining) > 0 {
		cluster, rest, _, newState := uniseg.StepString(remaining, state)
		state = newState
		remaining = rest
		if !isEmojiCluster(cluster) {
			continue
		}
		if seen[cluster] {
			continue
		}
		seen[cluster] = true
		out = append(out, cluster)
	}
	return out
}

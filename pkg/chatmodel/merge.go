package chatmodel

import (
	"fmt"
	"sort"
)

// contentPrefixLen bounds the dedup key's content slice so two messages that
// differ only past this point (e.g. trailing whitespace quirks across export
// parts) still collapse into one.
const contentPrefixLen = 64

// Merge concatenates one or more ParsedConversations of the same platform
// (multi-part exports), sorts by timestamp, deduplicates on
// (sender, timestamp, content-prefix), re-indexes densely, and recomputes
// metadata, per §3.3.
func Merge(parts ...*ParsedConversation) (*ParsedConversation, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("chatmodel: merge requires at least one conversation")
	}

	out := &ParsedConversation{
		Platform: parts[0].Platform,
		Title:    parts[0].Title,
	}

	participantSeen := make(map[string]bool)
	var messages []UnifiedMessage
	for _, p := range parts {
		if p == nil {
			continue
		}
		for _, participant := range p.Participants {
			if !participantSeen[participant.Name] {
				participantSeen[participant.Name] = true
				out.Participants = append(out.Participants, participant)
			}
		}
		messages = append(messages, p.Messages...)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})

	deduped := dedupe(messages)
	for i := range deduped {
		deduped[i].Index = i
	}
	out.Messages = deduped
	out.Metadata = computeMetadata(out.Participants, out.Messages)

	return out, nil
}

func dedupe(messages []UnifiedMessage) []UnifiedMessage {
	type key struct {
		sender    string
		timestamp int64
		prefix    string
	}
	seen := make(map[key]bool, len(messages))
	out := make([]UnifiedMessage, 0, len(messages))
	for _, m := range messages {
		prefix := m.Content
		if len(prefix) > contentPrefixLen {
			prefix = prefix[:contentPrefixLen]
		}
		k := key{sender: m.Sender, timestamp: m.Timestamp, prefix: prefix}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

// computeMetadata derives Metadata.TotalMessages/DateRange/IsGroup/
// DurationDays from a finalized, sorted, re-indexed message slice.
func computeMetadata(participants []Participant, messages []UnifiedMessage) Metadata {
	md := Metadata{IsGroup: len(participants) > 2}
	if len(messages) == 0 {
		md.DurationDays = 1
		return md
	}

	total := 0
	for _, m := range messages {
		if !m.IsSystem() {
			total++
		}
	}
	md.TotalMessages = total
	md.DateRange = DateRange{Start: messages[0].Timestamp, End: messages[len(messages)-1].Timestamp}

	const msPerDay = 24 * 60 * 60 * 1000
	days := int((md.DateRange.End-md.DateRange.Start)/msPerDay) + 1
	if days < 1 {
		days = 1
	}
	md.DurationDays = days

	return md
}

// Finalize sorts, dense-reindexes and recomputes metadata for a single
// conversation assembled directly by a parser (the common case of one
// input file, no merge needed).
func Finalize(platform, title string, participants []Participant, messages []UnifiedMessage) *ParsedConversation {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})
	for i := range messages {
		messages[i].Index = i
	}
	return &ParsedConversation{
		Platform:     platform,
		Title:        title,
		Participants: participants,
		Messages:     messages,
		Metadata:     computeMetadata(participants, messages),
	}
}

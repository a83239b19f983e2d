// Package whatsapp parses WhatsApp's plain-text chat export format into a
// chatmodel.ParsedConversation.
package whatsapp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/engineerr"
	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const truncateLimit = 100_000

// isoPattern matches the unambiguous ISO date prefix: 2024-01-31, 14:05[:06][ -] message.
var isoPattern = regexp.MustCompile(
	`^\[?(\d{4})-(\d{2})-(\d{2}),?\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(?:[AaPp][Mm])?\]?\s*-?\s*(.*)$`,
)

// dmyPattern matches the locale-ambiguous D/M or M/D slash-or-dot prefix,
// optionally bracketed and with an optional AM/PM marker: 31/01/24, 14:05 - message.
var dmyPattern = regexp.MustCompile(
	`^\[?(\d{1,2})[/.](\d{1,2})[/.](\d{2,4}),?\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm])?\]?\s*-?\s*(.*)$`,
)

// Parse parses a single WhatsApp _chat.txt export into a ParsedConversation.
func Parse(data []byte) (*chatmodel.ParsedConversation, []engineerr.Warning, error) {
	text := strings.TrimPrefix(string(data), "﻿")
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var (
		messages []chatmodel.UnifiedMessage
		warnings []engineerr.Warning
		senders  = map[string]struct{}{}
	)

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		ts, rest, warn, ok := matchPrefix(line)
		if !ok {
			// Continuation of the previous message's content.
			if len(messages) > 0 {
				last := &messages[len(messages)-1]
				last.Content += "\n" + line
			}
			continue
		}
		if warn != nil {
			warnings = append(warnings, *warn)
		}

		sender, content, isSystem := splitSenderContent(rest)
		if content == "" && !isSystem {
			continue
		}

		truncated := false
		if runes := []rune(content); len(runes) > truncateLimit {
			content = string(runes[:truncateLimit]) + "…"
			truncated = true
		}

		msgType := chatmodel.TypeText
		hasMedia := false
		hasLink := false

		switch {
		case isSystem:
			msgType = chatmodel.TypeSystem
			sender = chatmodel.SystemSender
		case isMediaOmitted(content):
			msgType = chatmodel.TypeMedia
			hasMedia = true
		case textproc.ContainsURL(content):
			msgType = chatmodel.TypeLink
			hasLink = true
		}

		if !isSystem {
			senders[sender] = struct{}{}
		}

		messages = append(messages, chatmodel.UnifiedMessage{
			Sender:    sender,
			Content:   content,
			Timestamp: ts.UnixMilli(),
			Type:      msgType,
			HasMedia:  hasMedia,
			HasLink:   hasLink,
		})

		if truncated {
			warnings = append(warnings, engineerr.Warning{
				Kind:    engineerr.WarningTruncation,
				Message: "message content truncated at 100000 characters",
			})
		}
	}

	if len(messages) == 0 {
		return nil, warnings, engineerr.ErrEmptyCorpus
	}

	participants := make([]chatmodel.Participant, 0, len(senders))
	for name := range senders {
		participants = append(participants, chatmodel.Participant{Name: name})
	}

	conv := chatmodel.Finalize("whatsapp", "", participants, messages)
	if conv.Metadata.TotalMessages == 0 {
		return nil, warnings, engineerr.ErrEmptyCorpus
	}
	return conv, warnings, nil
}

// matchPrefix attempts to match a line's leading date/time prefix, returning
// the parsed timestamp, the remaining "Sender: content" text, an optional
// ambiguous-date warning, and whether a prefix matched at all.
func matchPrefix(line string) (time.Time, string, *engineerr.Warning, bool) {
	if m := isoPattern.FindStringSubmatch(line); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		hh, _ := strconv.Atoi(m[4])
		mm, _ := strconv.Atoi(m[5])
		ss := 0
		if m[6] != "" {
			ss, _ = strconv.Atoi(m[6])
		}
		t := time.Date(y, time.Month(mo), d, hh, mm, ss, 0, time.UTC)
		return t, m[7], nil, true
	}

	m := dmyPattern.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, "", nil, false
	}

	d1, _ := strconv.Atoi(m[1])
	d2, _ := strconv.Atoi(m[2])
	yr, _ := strconv.Atoi(m[3])
	hh, _ := strconv.Atoi(m[4])
	mm, _ := strconv.Atoi(m[5])
	ss := 0
	if m[6] != "" {
		ss, _ = strconv.Atoi(m[6])
	}
	ampm := m[7]
	rest := m[8]

	if yr < 100 {
		if yr < 70 {
			yr += 2000
		} else {
			yr += 1900
		}
	}

	// Resolve the day/month ambiguity: whichever value exceeds 12 must be
	// the day. When neither does, default to DD/MM and warn only if the two
	// values actually differ (a same-value date like 05/05 is unambiguous).
	var day, month int
	var warn *engineerr.Warning
	switch {
	case d1 > 12:
		day, month = d1, d2
	case d2 > 12:
		month, day = d1, d2
	default:
		day, month = d1, d2
		if d1 != d2 {
			warn = &engineerr.Warning{
				Kind:    engineerr.WarningAmbiguousDate,
				Message: "ambiguous date prefix resolved as DD/MM",
			}
		}
	}

	if ampm != "" {
		lower := strings.ToLower(ampm)
		if lower == "pm" && hh != 12 {
			hh += 12
		} else if lower == "am" && hh == 12 {
			hh = 0
		}
	}

	t := time.Date(yr, time.Month(month), day, hh, mm, ss, 0, time.UTC)
	return t, rest, warn, true
}

// splitSenderContent splits the "Sender: content" remainder of a matched
// line. A system-line (no colon-delimited sender, or matching a known
// WhatsApp system phrase) has no sender and is reported as such.
func splitSenderContent(rest string) (sender, content string, isSystem bool) {
	idx := strings.Index(rest, ": ")
	if idx < 0 {
		if isSystemLine(rest) {
			return "", rest, true
		}
		return "", rest, true
	}

	candidate := rest[:idx]
	body := rest[idx+2:]
	if isSystemLine(rest) {
		return "", rest, true
	}
	return candidate, body, false
}

func isSystemLine(line string) bool {
	for _, phrase := range lexicon.Default().WhatsAppSystemPhrases {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return false
}

func isMediaOmitted(content string) bool {
	if strings.HasSuffix(content, "(file attached)") {
		return true
	}
	for _, phrase := range lexicon.Default().WhatsAppMediaPhrases {
		if strings.Contains(content, phrase) {
			return true
		}
	}
	return false
}

// Package messenger parses Meta's Messenger/Instagram JSON export format
// into a chatmodel.ParsedConversation.
package messenger

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/engineerr"
)

type rawParticipant struct {
	Name string `json:"name"`
}

type rawReaction struct {
	Reaction string `json:"reaction"`
	Actor    string `json:"actor"`
}

type rawAttachment struct {
	URI string `json:"uri"`
}

type rawShare struct {
	Link string `json:"link"`
}

type rawMessage struct {
	SenderName   string          `json:"sender_name"`
	TimestampMs  int64           `json:"timestamp_ms"`
	Content      string          `json:"content"`
	Reactions    []rawReaction   `json:"reactions"`
	Photos       []rawAttachment `json:"photos"`
	Videos       []rawAttachment `json:"videos"`
	AudioFiles   []rawAttachment `json:"audio_files"`
	Sticker      *rawAttachment  `json:"sticker"`
	Share        *rawShare       `json:"share"`
	CallDuration *int64          `json:"call_duration"`
	IsUnsent     bool            `json:"is_unsent"`
}

type rawExport struct {
	Participants []rawParticipant `json:"participants"`
	Messages     []rawMessage     `json:"messages"`
	Title        string           `json:"title"`
}

// Parse parses one or more message_N.json byte payloads of the same
// conversation and merges them into a single chronological conversation.
func Parse(files [][]byte) (*chatmodel.ParsedConversation, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("messenger: %w: no input files", engineerr.ErrInvalidFormat)
	}

	parts := make([]*chatmodel.ParsedConversation, 0, len(files))
	for _, data := range files {
		part, err := parseOne(data)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	var conv *chatmodel.ParsedConversation
	if len(parts) == 1 {
		conv = parts[0]
	} else {
		merged, err := chatmodel.Merge(parts...)
		if err != nil {
			return nil, err
		}
		conv = merged
	}

	if conv.Metadata.TotalMessages == 0 {
		return nil, fmt.Errorf("messenger: %w", engineerr.ErrEmptyCorpus)
	}
	return conv, nil
}

func parseOne(data []byte) (*chatmodel.ParsedConversation, error) {
	var raw rawExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("messenger: %w: %v", engineerr.ErrInvalidFormat, err)
	}
	if len(raw.Participants) == 0 {
		return nil, fmt.Errorf("messenger: %w: missing participants list", engineerr.ErrInvalidFormat)
	}

	participants := make([]chatmodel.Participant, 0, len(raw.Participants))
	for _, p := range raw.Participants {
		participants = append(participants, chatmodel.Participant{Name: FixEncoding(p.Name)})
	}

	messages := make([]chatmodel.UnifiedMessage, 0, len(raw.Messages))
	for _, m := range raw.Messages {
		messages = append(messages, convert(m))
	}

	// The export lists messages newest-first; reverse to chronological
	// order before Finalize re-sorts and re-indexes (ties keep this order).
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	title := FixEncoding(raw.Title)
	return chatmodel.Finalize("messenger", title, participants, messages), nil
}

func convert(m rawMessage) chatmodel.UnifiedMessage {
	content := strings.TrimSpace(FixEncoding(m.Content))
	sender := FixEncoding(m.SenderName)
	msgType, hasMedia, hasLink := classify(m, content)

	var reactions []chatmodel.Reaction
	for _, r := range m.Reactions {
		reactions = append(reactions, chatmodel.Reaction{
			Emoji: FixEncoding(r.Reaction),
			Actor: FixEncoding(r.Actor),
		})
	}

	return chatmodel.UnifiedMessage{
		Sender:    sender,
		Content:   content,
		Timestamp: m.TimestampMs,
		Type:      msgType,
		Reactions: reactions,
		HasMedia:  hasMedia,
		HasLink:   hasLink,
		IsUnsent:  m.IsUnsent,
	}
}

// classify implements the priority order from §4.1: is_unsent, then
// call_duration, then sticker, then share.link, then photo/video/audio
// attachments, else text. A message with both text and an attachment is
// text with HasMedia set; empty content plus attachment is media.
func classify(m rawMessage, content string) (chatmodel.MessageType, bool, bool) {
	hasMedia := len(m.Photos) > 0 || len(m.Videos) > 0 || len(m.AudioFiles) > 0
	hasLink := m.Share != nil && m.Share.Link != ""

	switch {
	case m.IsUnsent:
		return chatmodel.TypeUnsent, hasMedia, hasLink
	case m.CallDuration != nil:
		return chatmodel.TypeCall, hasMedia, hasLink
	case m.Sticker != nil:
		return chatmodel.TypeSticker, hasMedia, hasLink
	case hasLink:
		return chatmodel.TypeLink, hasMedia, hasLink
	case hasMedia:
		if content == "" {
			return chatmodel.TypeMedia, hasMedia, hasLink
		}
		return chatmodel.TypeText, hasMedia, hasLink
	default:
		return chatmodel.TypeText, hasMedia, hasLink
	}
}

// FixEncoding reverses the common Meta export bug: UTF-8 bytes that were
// read as Latin-1 and re-encoded as UTF-8 (so every original multi-byte
// character became several mojibake codepoints, each representable as a
// single byte 0x00-0xFF). It reassembles the original byte stream by
// truncating each rune to its low byte and re-decoding as UTF-8.
//
// If any rune in s falls outside the Latin-1 range, s was never mis-decoded
// this way (or has already been fixed), and is returned unchanged — this is
// what makes the transformation idempotent on pure-ASCII input, and safe to
// call on strings that were never affected by the bug.
func FixEncoding(s string) string {
	if s == "" {
		return s
	}

	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		buf = append(buf, byte(r))
	}

	if !utf8.Valid(buf) {
		return s
	}
	return string(buf)
}

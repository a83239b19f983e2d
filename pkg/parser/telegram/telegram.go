// Package telegram parses Telegram Desktop's result.json chat export format
// into a chatmodel.ParsedConversation.
package telegram

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/engineerr"
	"github.com/papercomputeco/duet/pkg/textproc"
)

type rawReactionActor struct {
	From string `json:"from"`
}

type rawReaction struct {
	Type   string             `json:"type"`
	Emoji  string             `json:"emoji"`
	Recent []rawReactionActor `json:"recent"`
}

type rawMessage struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"`
	DateUnixtime string          `json:"date_unixtime"`
	From         string          `json:"from"`
	Text         json.RawMessage `json:"text"`
	MediaType    string          `json:"media_type"`
	Photo        string          `json:"photo"`
	File         string          `json:"file"`
	Action       string          `json:"action"`
	Reactions    []rawReaction   `json:"reactions"`
}

type rawExport struct {
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Messages []rawMessage `json:"messages"`
}

// textEntity models one element of a rich-text "text" array: either a bare
// string or an object carrying {type, text}.
type textEntity struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Parse parses a single result.json export into a ParsedConversation.
func Parse(data []byte) (*chatmodel.ParsedConversation, error) {
	var raw rawExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("telegram: %w: %v", engineerr.ErrInvalidFormat, err)
	}
	if len(raw.Messages) == 0 {
		return nil, fmt.Errorf("telegram: %w: no messages", engineerr.ErrInvalidFormat)
	}

	participants := make([]chatmodel.Participant, 0)
	seen := map[string]bool{}
	messages := make([]chatmodel.UnifiedMessage, 0, len(raw.Messages))

	for _, m := range raw.Messages {
		ts, err := strconv.ParseInt(m.DateUnixtime, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("telegram: %w: message %d has unparseable date_unixtime", engineerr.ErrInvalidFormat, m.ID)
		}

		content := extractText(m.Text)
		msgType, hasMedia, hasLink := classify(m, content)

		sender := m.From
		if msgType == chatmodel.TypeSystem {
			sender = chatmodel.SystemSender
		} else if sender != "" && !seen[sender] {
			seen[sender] = true
			participants = append(participants, chatmodel.Participant{Name: sender})
		}

		messages = append(messages, chatmodel.UnifiedMessage{
			Sender:    sender,
			Content:   content,
			Timestamp: ts * 1000,
			Type:      msgType,
			Reactions: extractReactions(m.Reactions),
			HasMedia:  hasMedia,
			HasLink:   hasLink,
		})
	}

	conv := chatmodel.Finalize("telegram", raw.Name, participants, messages)
	if conv.Metadata.TotalMessages == 0 {
		return nil, fmt.Errorf("telegram: %w", engineerr.ErrEmptyCorpus)
	}
	return conv, nil
}

// extractText flattens Telegram's "text" field, which is either a plain
// JSON string or an array mixing bare strings and {type,text} rich-text
// entity objects (links, bold spans, mentions, and so on).
func extractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}

	var sb strings.Builder
	for _, p := range parts {
		var s string
		if err := json.Unmarshal(p, &s); err == nil {
			sb.WriteString(s)
			continue
		}
		var entity textEntity
		if err := json.Unmarshal(p, &entity); err == nil {
			sb.WriteString(entity.Text)
		}
	}
	return sb.String()
}

func classify(m rawMessage, content string) (chatmodel.MessageType, bool, bool) {
	hasMedia := m.MediaType != "" || m.Photo != "" || m.File != ""

	switch {
	case m.Type == "service":
		return chatmodel.TypeSystem, hasMedia, false
	case m.Action == "phone_call" || m.Action == "group_call":
		return chatmodel.TypeCall, hasMedia, false
	case m.MediaType == "sticker":
		return chatmodel.TypeSticker, hasMedia, false
	case hasMedia:
		if content == "" {
			return chatmodel.TypeMedia, hasMedia, false
		}
		return chatmodel.TypeText, hasMedia, false
	case textproc.ContainsURL(content):
		return chatmodel.TypeLink, hasMedia, true
	default:
		return chatmodel.TypeText, hasMedia, false
	}
}

// extractReactions reconstructs one Reaction per recent actor. When a
// reaction carries no "recent" actor list (older exports, or an aggregate-
// only reaction), a single actor-less reaction is still recorded so the
// emoji isn't lost.
func extractReactions(raw []rawReaction) []chatmodel.Reaction {
	if len(raw) == 0 {
		return nil
	}

	var out []chatmodel.Reaction
	for _, r := range raw {
		if len(r.Recent) == 0 {
			out = append(out, chatmodel.Reaction{Emoji: r.Emoji})
			continue
		}
		for _, actor := range r.Recent {
			out = append(out, chatmodel.Reaction{Emoji: r.Emoji, Actor: actor.From})
		}
	}
	return out
}

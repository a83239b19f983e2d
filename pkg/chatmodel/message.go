// Package chatmodel defines the unified message model that every parser
// produces and every metric module consumes.
package chatmodel

import "time"

// MessageType classifies a UnifiedMessage. A message carrying both text and
// an attachment is classified Text with HasMedia set, per spec.
type MessageType string

const (
	TypeText    MessageType = "text"
	TypeMedia   MessageType = "media"
	TypeSticker MessageType = "sticker"
	TypeLink    MessageType = "link"
	TypeCall    MessageType = "call"
	TypeSystem  MessageType = "system"
	TypeUnsent  MessageType = "unsent"
)

// SystemSender is the literal sender name used for system lines.
const SystemSender = "System"

// Participant is one person (or bot) in the conversation.
type Participant struct {
	Name       string `json:"name"`
	PlatformID string `json:"platformId,omitempty"`
}

// Reaction is one emoji reaction attached to a message.
type Reaction struct {
	Emoji     string     `json:"emoji"`
	Actor     string     `json:"actor"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// UnifiedMessage is the canonical message shape every parser normalizes into.
type UnifiedMessage struct {
	Index     int         `json:"index"`
	Sender    string      `json:"sender"`
	Content   string      `json:"content"`
	Timestamp int64       `json:"timestamp"` // milliseconds since epoch, UTC basis
	Type      MessageType `json:"type"`
	Reactions []Reaction  `json:"reactions"`

	HasMedia bool `json:"hasMedia"`
	HasLink  bool `json:"hasLink"`
	IsUnsent bool `json:"isUnsent"`
}

// Time returns the message timestamp as a time.Time in UTC.
func (m *UnifiedMessage) Time() time.Time {
	return time.UnixMilli(m.Timestamp).UTC()
}

// IsSystem reports whether the message is a system line (excluded from
// metadata.totalMessages and from most metric modules).
func (m *UnifiedMessage) IsSystem() bool {
	return m.Type == TypeSystem
}

// DateRange is the inclusive [Start, End] span of a conversation.
type DateRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Metadata carries summary statistics about a ParsedConversation.
type Metadata struct {
	TotalMessages int       `json:"totalMessages"`
	DateRange     DateRange `json:"dateRange"`
	IsGroup       bool      `json:"isGroup"`
	DurationDays  int       `json:"durationDays"`
}

// ParsedConversation is the output of every parser: one platform, one
// ordered set of participants, one ascending-timestamp message sequence.
type ParsedConversation struct {
	Platform     string        `json:"platform"`
	Title        string        `json:"title"`
	Participants []Participant `json:"participants"`
	Messages     []UnifiedMessage `json:"messages"`
	Metadata     Metadata      `json:"metadata"`
}

// ParticipantNames returns the participant names in their original order.
func (c *ParsedConversation) ParticipantNames() []string {
	names := make([]string, len(c.Participants))
	for i, p := range c.Participants {
		names[i] = p.Name
	}
	return names
}

// NonSystemMessages returns the subset of messages whose type is not system.
// Callers that only need to range once typically inline the filter instead;
// this helper exists for the handful of modules that need the slice itself.
func (c *ParsedConversation) NonSystemMessages() []UnifiedMessage {
	out := make([]UnifiedMessage, 0, len(c.Messages))
	for _, m := range c.Messages {
		if !m.IsSystem() {
			out = append(out, m)
		}
	}
	return out
}

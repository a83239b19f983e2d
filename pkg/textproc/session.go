package textproc

import "github.com/papercomputeco/duet/pkg/chatmodel"

// DefaultSessionGapMillis is the 6h session boundary gap (§4.2). Some
// platform exports (Discord-style) override this to a 2h gap; callers pass
// the applicable gap explicitly rather than relying on a package-level
// switch, keeping segmentation a pure function of its input.
const DefaultSessionGapMillis = 6 * 60 * 60 * 1000

// EnterAsCommaMillis is the 2-minute window under which two consecutive
// same-sender messages consolidate into one logical message (§4.2).
const EnterAsCommaMillis = 2 * 60 * 1000

// Session is a contiguous run of messages with no gap ≥ the session
// boundary threshold.
type Session struct {
	StartIndex int
	EndIndex   int // inclusive
}

// Len returns the number of messages in the session.
func (s Session) Len() int { return s.EndIndex - s.StartIndex + 1 }

// Segment splits messages into sessions using gapMillis as the boundary
// threshold. Pass DefaultSessionGapMillis unless the platform overrides it.
// The first message of the transcript and the first message after each
// boundary are session-initiations; the message before each boundary is a
// session-ending — callers derive those from Session.StartIndex/EndIndex.
func Segment(messages []chatmodel.UnifiedMessage, gapMillis int64) []Session {
	if len(messages) == 0 {
		return nil
	}
	var sessions []Session
	start := 0
	for i := 1; i < len(messages); i++ {
		gap := messages[i].Timestamp - messages[i-1].Timestamp
		if gap >= gapMillis {
			sessions = append(sessions, Session{StartIndex: start, EndIndex: i - 1})
			start = i
		}
	}
	sessions = append(sessions, Session{StartIndex: start, EndIndex: len(messages) - 1})
	return sessions
}

// LogicalMessage is a burst of same-sender messages consolidated under the
// Enter-as-comma rule: consecutive same-sender messages less than
// EnterAsCommaMillis apart collapse into one.
type LogicalMessage struct {
	Sender     string
	StartIndex int
	EndIndex   int // inclusive
}

// ConsolidateEnterAsComma groups messages into logical messages. This rule
// governs double-text and pursuit-burst counts, never volume totals — those
// keep counting every physical message.
func ConsolidateEnterAsComma(messages []chatmodel.UnifiedMessage) []LogicalMessage {
	if len(messages) == 0 {
		return nil
	}
	logical := make([]LogicalMessage, 0, len(messages))
	cur := LogicalMessage{Sender: messages[0].Sender, StartIndex: 0, EndIndex: 0}
	for i := 1; i < len(messages); i++ {
		gap := messages[i].Timestamp - messages[i-1].Timestamp
		if messages[i].Sender == cur.Sender && gap < EnterAsCommaMillis {
			cur.EndIndex = i
			continue
		}
		logical = append(logical, cur)
		cur = LogicalMessage{Sender: messages[i].Sender, StartIndex: i, EndIndex: i}
	}
	logical = append(logical, cur)
	return logical
}

// IsDoubleText reports whether message at index i is a double-text: the
// same sender as the message before it, with a gap exceeding the
// Enter-as-comma window (so it is NOT consolidated away, §4.5).
func IsDoubleText(messages []chatmodel.UnifiedMessage, i int) bool {
	if i <= 0 || i >= len(messages) {
		return false
	}
	if messages[i].Sender != messages[i-1].Sender {
		return false
	}
	gap := messages[i].Timestamp - messages[i-1].Timestamp
	return gap > EnterAsCommaMillis
}

// IsOvernightSuppressed reports whether a silence gap starting at local-clock
// hour startHour and lasting gapMillis should be excluded from
// pursuit-withdrawal accounting as ordinary
// sleep: the gap begins between local 21:00 and 09:00 and its total
// duration is ≤ 12h. Longer gaps are never suppressed.
func IsOvernightSuppressed(startHour int, gapMillis int64) bool {
	const twelveHours = 12 * 60 * 60 * 1000
	if gapMillis > twelveHours {
		return false
	}
	return startHour >= 21 || startHour < 9
}

// Package bidresponse detects Gottman "bids for connection" and classifies
// the next reply as turning toward or away (spec §4.9).
package bidresponse

import (
	"strings"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	lookaheadCap      = 4
	towardWindowMillis = 4 * 60 * 60 * 1000
	minResponseChars  = 5
	minTotalBids      = 10
)

// Person holds one participant's bid/response tallies.
type Person struct {
	BidsMade         int
	TurnedToward     int
	TurnedAway       int
	BidsReceived     int
	BidsRespondedTo  int
	BidSuccessRate   float64
	ResponseRate     float64
}

// Result is the §4.9 output.
type Result struct {
	PerPerson  *chatmodel.OrderedMap[Person]
	OverallRate float64
	Band        string
}

// Compute scans conv's message stream for bids and derives per-person
// bid-response statistics, omitting the result when fewer than 10 total
// bids were found.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	messages := conv.NonSystemMessages()
	bundle := lexicon.Default()

	counts := map[string]*Person{}
	order := []string{}
	ensure := func(name string) *Person {
		p, ok := counts[name]
		if !ok {
			p = &Person{}
			counts[name] = p
			order = append(order, name)
		}
		return p
	}

	totalBids := 0
	totalToward := 0

	for i, m := range messages {
		if !isBid(m.Content, bundle) {
			continue
		}
		totalBids++
		bidder := ensure(m.Sender)
		bidder.BidsMade++

		resp, respIdx, found := nextDifferentSender(messages, i, lookaheadCap)
		if !found {
			continue
		}
		responder := ensure(resp.Sender)
		responder.BidsReceived++

		if classifyToward(m, resp) {
			bidder.TurnedToward++
			responder.BidsRespondedTo++
			totalToward++
		} else {
			bidder.TurnedAway++
		}
		_ = respIdx
	}

	if totalBids < minTotalBids {
		return Result{}, false
	}

	result := chatmodel.NewOrderedMap[Person]()
	for _, name := range order {
		p := *counts[name]
		if p.BidsMade > 0 {
			p.BidSuccessRate = float64(p.TurnedToward) / float64(p.BidsMade) * 100
		}
		if p.BidsReceived > 0 {
			p.ResponseRate = float64(p.BidsRespondedTo) / float64(p.BidsReceived) * 100
		}
		result.Set(name, p)
	}

	overall := float64(totalToward) / float64(totalBids) * 100
	return Result{PerPerson: result, OverallRate: overall, Band: band(overall)}, true
}

func isBid(content string, bundle *lexicon.Bundle) bool {
	if strings.Contains(content, "?") {
		return true
	}
	if textproc.ContainsURL(content) {
		return true
	}
	lower := strings.ToLower(strings.TrimSpace(content))
	for _, opener := range bundle.DisclosureOpeners.Words() {
		if strings.HasPrefix(lower, opener) {
			return true
		}
	}
	return false
}

func nextDifferentSender(messages []chatmodel.UnifiedMessage, from int, cap int) (chatmodel.UnifiedMessage, int, bool) {
	sender := messages[from].Sender
	limit := from + cap
	if limit >= len(messages) {
		limit = len(messages) - 1
	}
	for j := from + 1; j <= limit; j++ {
		if messages[j].Sender != sender {
			return messages[j], j, true
		}
	}
	return chatmodel.UnifiedMessage{}, 0, false
}

func classifyToward(bid, resp chatmodel.UnifiedMessage) bool {
	gap := resp.Timestamp - bid.Timestamp
	if gap < 0 || gap > towardWindowMillis {
		return false
	}
	content := strings.TrimSpace(resp.Content)
	if len([]rune(content)) < minResponseChars {
		return false
	}
	bundle := lexicon.Default()
	respTokens := textproc.Tokenize(content)
	if len(respTokens) <= 3 {
		for _, t := range respTokens {
			if bundle.DismissalTokens.Contains(t) {
				return false
			}
		}
	}
	if strings.Contains(content, "?") {
		return true
	}
	bidTokens := textproc.Tokenize(bid.Content)
	return textproc.WordOverlapCount(bidTokens, respTokens, 3) >= 1
}

// band interprets the overall turn-toward rate against the 86% Gottman
// benchmark, with high/moderate/low bands at 80/60.
func band(overall float64) string {
	switch {
	case overall >= 80:
		return "high"
	case overall >= 60:
		return "moderate"
	default:
		return "low"
	}
}

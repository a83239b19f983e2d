// Package reciprocity computes the four-part balance index between
// exactly two participants: message share, initiation share, response-time
// symmetry, and reaction balance (spec §4.16).
package reciprocity

import (
	"math"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	minTotalMessages = 30
	defaultScore     = 50.0
	oneSidedDataScore = 10.0
	messageWeight    = 0.30
	initiationWeight = 0.25
	responseWeight   = 0.15
	reactionWeight   = 0.30
)

// Result is the §4.16 output.
type Result struct {
	MessageBalance       float64
	InitiationBalance    float64
	ResponseTimeSymmetry float64
	ReactionBalance      float64
	Overall              float64
}

// Compute derives the reciprocity index between conv's (at most two)
// participants. Below the 30-message floor, or with fewer than two
// participants, it reports the neutral fallback of 50 across every
// sub-score rather than an absent result.
func Compute(conv *chatmodel.ParsedConversation) Result {
	names := conv.ParticipantNames()
	messages := conv.NonSystemMessages()

	if len(names) < 2 || len(messages) < minTotalMessages {
		return neutral()
	}
	a, b := names[0], names[1]

	msgCount := map[string]int{}
	initCount := map[string]int{}
	reactionsGiven := map[string]int{}
	mentionsAndReplies := map[string]int{}
	responseSamples := map[string][]int64{}

	for i, m := range messages {
		if m.Sender != a && m.Sender != b {
			continue
		}
		msgCount[m.Sender]++
		for _, r := range m.Reactions {
			reactionsGiven[r.Actor]++
			mentionsAndReplies[m.Sender]++
		}
		if i > 0 && messages[i-1].Sender != m.Sender {
			gap := m.Timestamp - messages[i-1].Timestamp
			if gap > 0 {
				responseSamples[m.Sender] = append(responseSamples[m.Sender], gap)
			}
		}
	}

	sessions := textproc.Segment(messages, textproc.DefaultSessionGapMillis)
	for _, s := range sessions {
		initCount[messages[s.StartIndex].Sender]++
	}

	totalMsg := msgCount[a] + msgCount[b]
	msgBalance := defaultScore
	if totalMsg > 0 {
		rA := float64(msgCount[a]) / float64(totalMsg)
		msgBalance = balanceScore(rA)
	}

	totalInit := initCount[a] + initCount[b]
	initBalance := defaultScore
	if totalInit > 0 {
		rA := float64(initCount[a]) / float64(totalInit)
		initBalance = balanceScore(rA)
	}

	respSymmetry := responseTimeSymmetry(responseSamples[a], responseSamples[b])

	totalReactions := reactionsGiven[a] + reactionsGiven[b]
	reactionBalance := defaultScore
	if totalReactions > 0 {
		rA := float64(reactionsGiven[a]) / float64(totalReactions)
		reactionBalance = balanceScore(rA)
	} else {
		totalFallback := mentionsAndReplies[a] + mentionsAndReplies[b]
		if totalFallback > 0 {
			rA := float64(mentionsAndReplies[a]) / float64(totalFallback)
			reactionBalance = balanceScore(rA)
		}
	}

	overall := messageWeight*msgBalance + initiationWeight*initBalance +
		responseWeight*respSymmetry + reactionWeight*reactionBalance

	return Result{
		MessageBalance:       textproc.Round1(msgBalance),
		InitiationBalance:    textproc.Round1(initBalance),
		ResponseTimeSymmetry: textproc.Round1(respSymmetry),
		ReactionBalance:      textproc.Round1(reactionBalance),
		Overall:              textproc.Round1(overall),
	}
}

func balanceScore(rA float64) float64 {
	return 100 * (1 - 2*math.Abs(rA-0.5))
}

func responseTimeSymmetry(a, b []int64) float64 {
	if len(a) == 0 && len(b) == 0 {
		return defaultScore
	}
	if len(a) == 0 || len(b) == 0 {
		return oneSidedDataScore
	}
	mA := median(a)
	mB := median(b)
	if mA == 0 && mB == 0 {
		return defaultScore
	}
	lo, hi := mA, mB
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == 0 {
		return defaultScore
	}
	return 100 * lo / hi
}

func median(samples []int64) float64 {
	sorted := append([]int64(nil), samples...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

func neutral() Result {
	return Result{
		MessageBalance:       defaultScore,
		InitiationBalance:    defaultScore,
		ResponseTimeSymmetry: defaultScore,
		ReactionBalance:      defaultScore,
		Overall:              defaultScore,
	}
}

package engagement_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/metrics/engagement"
)

func TestEngagement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Engagement Suite")
}

func msg(sender string, ts int64) chatmodel.UnifiedMessage {
	return chatmodel.UnifiedMessage{Sender: sender, Content: "hi", Timestamp: ts, Type: chatmodel.TypeText}
}

var _ = Describe("Compute", func() {
	It("counts a double-text only when the gap exceeds the Enter-as-comma window", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				msg("Alice", 0),
				msg("Alice", 3*60*1000),
			},
		}
		vol := map[string]int{"Alice": 2}
		result := engagement.Compute(conv, vol, map[string]int{}, map[string]int{})
		alice, ok := result.PerPerson.Get("Alice")
		Expect(ok).To(BeTrue())
		Expect(alice.DoubleTexts).To(Equal(1))
	})

	It("computes message ratio against the total", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				msg("Alice", 0),
				msg("Bob", 1000),
				msg("Bob", 2000),
			},
		}
		vol := map[string]int{"Alice": 1, "Bob": 2}
		result := engagement.Compute(conv, vol, map[string]int{}, map[string]int{})
		bob, _ := result.PerPerson.Get("Bob")
		Expect(bob.MessageRatio).To(BeNumerically("~", 2.0/3.0, 0.001))
	})
})

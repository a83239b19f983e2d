package timing_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/metrics/timing"
)

func TestTiming(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Timing Suite")
}

func msg(sender string, ts int64) chatmodel.UnifiedMessage {
	return chatmodel.UnifiedMessage{Sender: sender, Content: "hi", Timestamp: ts, Type: chatmodel.TypeText}
}

var _ = Describe("Compute", func() {
	It("records response gaps only across sender changes", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				msg("Alice", 0),
				msg("Alice", 1000),
				msg("Bob", 61000),
			},
		}
		result := timing.Compute(conv)
		bob, ok := result.PerPerson.Get("Bob")
		Expect(ok).To(BeTrue())
		Expect(bob.SampleCount).To(Equal(1))
	})

	It("excludes gaps exceeding the 12h non-informative threshold", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				msg("Alice", 0),
				msg("Bob", 13*60*60*1000),
			},
		}
		result := timing.Compute(conv)
		bob, _ := result.PerPerson.Get("Bob")
		Expect(bob.SampleCount).To(Equal(0))
	})

	It("finds the single longest silence with its senders", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				msg("Alice", 0),
				msg("Bob", 100),
				msg("Alice", 10_000_000),
			},
		}
		result := timing.Compute(conv)
		Expect(result.Longest.Millis).To(Equal(int64(9_999_900)))
		Expect(result.Longest.BeforeSend).To(Equal("Bob"))
		Expect(result.Longest.AfterSender).To(Equal("Alice"))
	})
})

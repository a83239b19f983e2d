package sampler_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/sampler"
)

func TestSampler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sampler Suite")
}

func monthsOfMessages(months int, perMonth int) []chatmodel.UnifiedMessage {
	var out []chatmodel.UnifiedMessage
	base := int64(1704067200000) // 2024-01-01
	for m := 0; m < months; m++ {
		for i := 0; i < perMonth; i++ {
			sender := "A"
			if i%2 == 1 {
				sender = "B"
			}
			out = append(out, chatmodel.UnifiedMessage{
				Sender: sender, Content: "hello there friend", Timestamp: base + int64(m)*31*86400000 + int64(i)*3600000, Type: chatmodel.TypeText,
			})
		}
	}
	return out
}

var _ = Describe("Compute", func() {
	It("returns ok=false under the 10-message floor", func() {
		conv := &chatmodel.ParsedConversation{Messages: monthsOfMessages(1, 3)}
		_, ok := sampler.Compute(conv)
		Expect(ok).To(BeFalse())
	})

	It("builds an overview selection capped at the budget", func() {
		messages := monthsOfMessages(6, 100)
		conv := &chatmodel.ParsedConversation{Messages: messages}
		result, ok := sampler.Compute(conv)
		Expect(ok).To(BeTrue())
		Expect(len(result.Overview.Indices)).To(BeNumerically("<=", 250))
		Expect(result.PerPerson.Len()).To(Equal(2))
	})
})

var _ = Describe("RenderSummary", func() {
	It("renders facts as label: value lines", func() {
		out := sampler.RenderSummary([]sampler.Fact{{Label: "messages", Value: "100"}})
		Expect(out).To(Equal("messages: 100\n"))
	})
})

package deepscan_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/deepscan"
)

func TestDeepScan(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DeepScan Suite")
}

var _ = Describe("Compute", func() {
	It("returns ok=false for an empty conversation", func() {
		conv := &chatmodel.ParsedConversation{}
		_, ok := deepscan.Compute(conv)
		Expect(ok).To(BeFalse())
	})

	It("collects a long message as a confession", func() {
		long := strings.Repeat("word ", 40)
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				{Sender: "A", Content: long, Timestamp: 0, Type: chatmodel.TypeText},
			},
		}
		result, ok := deepscan.Compute(conv)
		Expect(ok).To(BeTrue())
		a, present := result.PerPerson.Get("A")
		Expect(present).To(BeTrue())
		Expect(a.Confessions).NotTo(BeEmpty())
	})

	It("groups a 30-minute-bounded run of messages into an interesting thread", func() {
		var messages []chatmodel.UnifiedMessage
		ts := int64(0)
		for i := 0; i < 6; i++ {
			sender := "A"
			if i%2 == 1 {
				sender = "B"
			}
			messages = append(messages, chatmodel.UnifiedMessage{Sender: sender, Content: "talking about our trip next week", Timestamp: ts, Type: chatmodel.TypeText})
			ts += 60 * 1000
		}
		conv := &chatmodel.ParsedConversation{Messages: messages}
		result, ok := deepscan.Compute(conv)
		Expect(ok).To(BeTrue())
		Expect(result.InterestingThreads).NotTo(BeEmpty())
		Expect(len(result.Summary)).To(BeNumerically("<=", 5000))
	})
})

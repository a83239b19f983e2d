package repair_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/metrics/repair"
)

func TestRepair(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Repair Suite")
}

func filler(sender string, n int, startTS int64) []chatmodel.UnifiedMessage {
	out := make([]chatmodel.UnifiedMessage, n)
	for i := range out {
		out[i] = chatmodel.UnifiedMessage{Sender: sender, Content: "just talking about the day", Timestamp: startTS + int64(i)*1000, Type: chatmodel.TypeText}
	}
	return out
}

var _ = Describe("Compute", func() {
	It("returns ok=false under the 100-message floor", func() {
		conv := &chatmodel.ParsedConversation{Messages: filler("A", 20, 0)}
		_, ok := repair.Compute(conv)
		Expect(ok).To(BeFalse())
	})

	It("counts asterisk self-corrections and what?-style other-repairs", func() {
		messages := append(filler("A", 48, 0), filler("B", 48, 1000000)...)
		messages = append(messages, chatmodel.UnifiedMessage{Sender: "A", Content: "I went to the *store", Timestamp: 2000000, Type: chatmodel.TypeText})
		messages = append(messages, chatmodel.UnifiedMessage{Sender: "B", Content: "what?", Timestamp: 2000001, Type: chatmodel.TypeText})
		messages = append(messages, chatmodel.UnifiedMessage{Sender: "A", Content: "I went to the *store", Timestamp: 2000002, Type: chatmodel.TypeText})
		messages = append(messages, chatmodel.UnifiedMessage{Sender: "B", Content: "what?", Timestamp: 2000003, Type: chatmodel.TypeText})
		messages = append(messages, chatmodel.UnifiedMessage{Sender: "A", Content: "I went to the *store", Timestamp: 2000004, Type: chatmodel.TypeText})

		conv := &chatmodel.ParsedConversation{Messages: messages}
		result, ok := repair.Compute(conv)
		Expect(ok).To(BeTrue())

		a, ok := result.PerPerson.Get("A")
		Expect(ok).To(BeTrue())
		Expect(a.SelfRepairs).To(Equal(3))

		b, ok := result.PerPerson.Get("B")
		Expect(ok).To(BeTrue())
		Expect(b.OtherRepairs).To(Equal(2))

		Expect(result.MutualRepairIndex).To(BeNumerically(">", 0))
	})
})

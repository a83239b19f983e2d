package reciprocity_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/metrics/reciprocity"
)

func TestReciprocity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Reciprocity Suite")
}

var _ = Describe("Compute", func() {
	It("falls back to neutral 50s below the 30-message floor", func() {
		conv := &chatmodel.ParsedConversation{
			Participants: []chatmodel.Participant{{Name: "A"}, {Name: "B"}},
			Messages: []chatmodel.UnifiedMessage{
				{Sender: "A", Content: "hi", Timestamp: 0, Type: chatmodel.TypeText},
			},
		}
		result := reciprocity.Compute(conv)
		Expect(result.Overall).To(Equal(50.0))
	})

	It("scores a balanced exchange near 100", func() {
		var messages []chatmodel.UnifiedMessage
		ts := int64(0)
		for i := 0; i < 40; i++ {
			sender := "A"
			if i%2 == 1 {
				sender = "B"
			}
			messages = append(messages, chatmodel.UnifiedMessage{Sender: sender, Content: "hello there", Timestamp: ts, Type: chatmodel.TypeText})
			ts += 60 * 1000
		}
		conv := &chatmodel.ParsedConversation{
			Participants: []chatmodel.Participant{{Name: "A"}, {Name: "B"}},
			Messages:     messages,
		}
		result := reciprocity.Compute(conv)
		Expect(result.MessageBalance).To(BeNumerically(">=", 95))
	})
})

package volume_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/metrics/volume"
)

func TestVolume(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Volume Suite")
}

func msg(sender, content string, ts int64) chatmodel.UnifiedMessage {
	return chatmodel.UnifiedMessage{Sender: sender, Content: content, Timestamp: ts, Type: chatmodel.TypeText}
}

var _ = Describe("Compute", func() {
	It("sums per-person totals to metadata.totalMessages", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				msg("Alice", "hello there friend", 1000),
				msg("Bob", "hi alice how are you?", 2000),
				{Sender: chatmodel.SystemSender, Content: "Bob left", Timestamp: 2500, Type: chatmodel.TypeSystem},
			},
		}
		result := volume.Compute(conv)
		Expect(result.TotalMessages).To(Equal(2))

		sum := 0
		result.PerPerson.Range(func(_ string, p volume.Person) bool {
			sum += p.MessageCount
			return true
		})
		Expect(sum).To(Equal(result.TotalMessages))
	})

	It("counts question messages and emoji", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				msg("Alice", "are you coming? 😊", 1000),
			},
		}
		result := volume.Compute(conv)
		p, ok := result.PerPerson.Get("Alice")
		Expect(ok).To(BeTrue())
		Expect(p.QuestionCount).To(Equal(1))
		Expect(p.EmojiCount).To(Equal(1))
	})

	It("computes vocabulary richness as unique/sqrt(total)", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				msg("Alice", "one two three four", 1000),
			},
		}
		result := volume.Compute(conv)
		p, _ := result.PerPerson.Get("Alice")
		Expect(p.VocabularyRichness).To(BeNumerically(">", 0))
	})

	It("tracks reactions given and received separately", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				{Sender: "Alice", Content: "hi", Timestamp: 1000, Type: chatmodel.TypeText,
					Reactions: []chatmodel.Reaction{{Emoji: "👍", Actor: "Bob"}}},
			},
		}
		result := volume.Compute(conv)
		alice, _ := result.PerPerson.Get("Alice")
		bob, _ := result.PerPerson.Get("Bob")
		Expect(alice.ReactionsReceived).To(Equal(1))
		Expect(bob.ReactionsGiven).To(Equal(1))
	})
})

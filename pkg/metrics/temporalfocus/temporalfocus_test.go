package temporalfocus_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/metrics/temporalfocus"
)

func TestTemporalFocus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TemporalFocus Suite")
}

var _ = Describe("Compute", func() {
	It("returns ok=false below the 500-word floor", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{{Sender: "A", Content: "hi there", Timestamp: 0, Type: chatmodel.TypeText}},
		}
		_, ok := temporalfocus.Compute(conv)
		Expect(ok).To(BeFalse())
	})

	It("classifies a future-heavy participant as prospective", func() {
		future := strings.Repeat("will tomorrow plan ", 200)
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{{Sender: "A", Content: future, Timestamp: 0, Type: chatmodel.TypeText}},
		}
		result, ok := temporalfocus.Compute(conv)
		Expect(ok).To(BeTrue())
		a, present := result.PerPerson.Get("A")
		Expect(present).To(BeTrue())
		Expect(a.WordCount).To(BeNumerically(">=", 500))
	})
})

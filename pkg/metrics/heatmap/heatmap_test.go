package heatmap_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/metrics/heatmap"
)

func TestHeatmap(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Heatmap Suite")
}

var _ = Describe("Compute", func() {
	It("tallies per-person and combined matrices to the same total", func() {
		conv := &chatmodel.ParsedConversation{
			Messages: []chatmodel.UnifiedMessage{
				{Sender: "A", Content: "hi", Timestamp: 1735689600000, Type: chatmodel.TypeText},
				{Sender: "B", Content: "hi", Timestamp: 1735693200000, Type: chatmodel.TypeText},
				{Sender: "A", Content: "hi", Timestamp: 1738368000000, Type: chatmodel.TypeText},
			},
		}
		result := heatmap.Compute(conv)

		combinedTotal := 0
		for _, row := range result.Combined {
			for _, c := range row {
				combinedTotal += c
			}
		}
		Expect(combinedTotal).To(Equal(3))
		Expect(result.MonthlyTotal.Len()).To(Equal(2))

		a, ok := result.PerPerson.Get("A")
		Expect(ok).To(BeTrue())
		Expect(a.MonthlyVolume.Len()).To(Equal(2))
	})
})

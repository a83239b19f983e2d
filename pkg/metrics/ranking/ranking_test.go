package ranking_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/metrics/ranking"
)

func TestRanking(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ranking Suite")
}

var _ = Describe("Compute", func() {
	It("maps the median input to roughly the 50th percentile", func() {
		result := ranking.Compute(3000, 480, 12, 20)
		Expect(result.VolumePercentile).To(BeNumerically("~", 50, 1))
		Expect(result.SilencePercentile).To(BeNumerically("~", 50, 1))
		Expect(result.AsymmetryPercentile).To(BeNumerically("~", 50, 1))
	})

	It("inverts the response-time percentile so a faster median ranks higher", func() {
		fast := ranking.Compute(3000, 100, 12, 20)
		slow := ranking.Compute(3000, 2000, 12, 20)
		Expect(fast.ResponsePercentile).To(BeNumerically(">", slow.ResponsePercentile))
	})
})

package chatmodel_test

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
)

func TestChatmodel(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Chatmodel Suite")
}

var _ = Describe("OrderedMap", func() {
	It("preserves insertion order through Keys and Range", func() {
		m := chatmodel.NewOrderedMap[int]()
		m.Set("b", 2)
		m.Set("a", 1)
		m.Set("b", 20)

		Expect(m.Keys()).To(Equal([]string{"b", "a"}))
		Expect(m.Len()).To(Equal(2))

		v, ok := m.Get("b")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(20))
	})

	It("marshals to JSON with keys in insertion order", func() {
		m := chatmodel.NewOrderedMap[int]()
		m.Set("second", 2)
		m.Set("first", 1)

		out, err := json.Marshal(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal(`{"second":2,"first":1}`))
	})

	It("round-trips through Unmarshal preserving document order", func() {
		var m chatmodel.OrderedMap[int]
		err := json.Unmarshal([]byte(`{"z":1,"a":2}`), &m)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Keys()).To(Equal([]string{"z", "a"}))
	})
})

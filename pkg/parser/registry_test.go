package parser_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/parser"
)

func TestParser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Parser Suite")
}

var _ = Describe("Detect", func() {
	It("detects .txt files as WhatsApp", func() {
		f, err := parser.Detect(parser.Input{Name: "chat.txt", Data: []byte("irrelevant")})
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(parser.FormatWhatsApp))
	})

	It("detects a participants array as Messenger", func() {
		data := []byte(`{"participants": [{"name": "Alice"}], "messages": []}`)
		f, err := parser.Detect(parser.Input{Name: "message_1.json", Data: data})
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(parser.FormatMessenger))
	})

	It("detects Telegram's name/type/messages[].date_unixtime shape", func() {
		data := []byte(`{"name": "x", "type": "personal_chat", "messages": [{"from": "Alice", "date_unixtime": "1700000000"}]}`)
		f, err := parser.Detect(parser.Input{Name: "result.json", Data: data})
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(parser.FormatTelegram))
	})

	It("errors on unrecognized JSON structure", func() {
		data := []byte(`{"foo": "bar"}`)
		_, err := parser.Detect(parser.Input{Name: "x.json", Data: data})
		Expect(err).To(HaveOccurred())
	})

	It("errors on malformed JSON", func() {
		_, err := parser.Detect(parser.Input{Name: "x.json", Data: []byte("not json")})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ParseAll", func() {
	It("errors on no inputs", func() {
		_, _, err := parser.ParseAll(nil, "")
		Expect(err).To(HaveOccurred())
	})

	It("parses a single Messenger export end to end", func() {
		data := []byte(`{
			"participants": [{"name": "Alice"}, {"name": "Bob"}],
			"messages": [{"sender_name": "Alice", "timestamp_ms": 1000, "content": "hi"}]
		}`)
		conv, _, err := parser.ParseAll([]parser.Input{{Name: "message_1.json", Data: data}}, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Platform).To(Equal("messenger"))
		Expect(conv.Messages).To(HaveLen(1))
	})

	It("parses a single WhatsApp export end to end", func() {
		data := []byte("2024-01-31, 14:05 - Alice: hello\n")
		conv, _, err := parser.ParseAll([]parser.Input{{Name: "chat.txt", Data: data}}, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Platform).To(Equal("whatsapp"))
	})

	It("parses a single Telegram export end to end", func() {
		data := []byte(`{"name": "x", "type": "personal_chat", "messages": [
			{"id": 1, "type": "message", "date_unixtime": "1700000000", "from": "Alice", "text": "hi"}
		]}`)
		conv, _, err := parser.ParseAll([]parser.Input{{Name: "result.json", Data: data}}, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Platform).To(Equal("telegram"))
	})

	It("merges multiple WhatsApp part files", func() {
		part1 := []byte("2024-01-31, 14:05 - Alice: hi\n")
		part2 := []byte("2024-02-01, 14:05 - Bob: hey\n")
		conv, _, err := parser.ParseAll([]parser.Input{
			{Name: "chat1.txt", Data: part1},
			{Name: "chat2.txt", Data: part2},
		}, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages).To(HaveLen(2))
	})

	It("errors when inputs span more than one detected platform", func() {
		whatsappData := []byte("2024-01-31, 14:05 - Alice: hi\n")
		messengerData := []byte(`{"participants": [{"name": "Alice"}], "messages": []}`)
		_, _, err := parser.ParseAll([]parser.Input{
			{Name: "chat.txt", Data: whatsappData},
			{Name: "message_1.json", Data: messengerData},
		}, "")
		Expect(err).To(HaveOccurred())
	})

	It("honors an explicit format override instead of detecting", func() {
		data := []byte("2024-01-31, 14:05 - Alice: hi\n")
		conv, _, err := parser.ParseAll([]parser.Input{{Name: "whatever", Data: data}}, parser.FormatWhatsApp)
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Platform).To(Equal("whatsapp"))
	})
})

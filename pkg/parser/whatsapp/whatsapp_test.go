package whatsapp_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/engineerr"
	"github.com/papercomputeco/duet/pkg/parser/whatsapp"
)

func TestWhatsApp(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "WhatsApp Suite")
}

var _ = Describe("Parse", func() {
	It("parses the ISO date format unambiguously", func() {
		text := "2024-01-31, 14:05 - Alice: hello there\n"
		conv, warnings, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages).To(HaveLen(1))
		Expect(conv.Messages[0].Sender).To(Equal("Alice"))
		Expect(conv.Messages[0].Content).To(Equal("hello there"))
		Expect(warnings).To(BeEmpty())
	})

	It("resolves an unambiguous DD/MM date (day > 12) without warning", func() {
		text := "31/01/24, 14:05 - Alice: hi\n"
		conv, warnings, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages[0].Time().Month()).To(Equal(time.January))
		Expect(warnings).To(BeEmpty())
	})

	It("resolves an unambiguous MM/DD date (second value > 12)", func() {
		text := "01/31/24, 14:05 - Alice: hi\n"
		conv, _, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages[0].Time().Day()).To(Equal(31))
	})

	It("defaults to DD/MM and warns when both values are <= 12 and differ", func() {
		text := "03/05/24, 14:05 - Alice: hi\n"
		conv, warnings, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages[0].Time().Day()).To(Equal(3))
		found := false
		for _, w := range warnings {
			if w.Kind == engineerr.WarningAmbiguousDate {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})

	It("does not warn when both date values are equal", func() {
		text := "05/05/24, 14:05 - Alice: hi\n"
		_, warnings, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		for _, w := range warnings {
			Expect(w.Kind).NotTo(Equal(engineerr.WarningAmbiguousDate))
		}
	})

	It("expands 2-digit years per the 00-69/70-99 split", func() {
		text := "01/02/05, 14:05 - Alice: hi\n"
		conv, _, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages[0].Time().Year()).To(Equal(2005))
	})

	It("appends continuation lines to the previous message", func() {
		text := "2024-01-31, 14:05 - Alice: line one\nline two\nline three\n"
		conv, _, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages).To(HaveLen(1))
		Expect(conv.Messages[0].Content).To(Equal("line one\nline two\nline three"))
	})

	It("classifies media-omitted content", func() {
		text := "2024-01-31, 14:05 - Alice: <Media omitted>\n"
		conv, _, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages[0].Type).To(Equal(chatmodel.TypeMedia))
	})

	It("classifies a URL-containing message as a link", func() {
		text := "2024-01-31, 14:05 - Alice: check https://example.com/x out\n"
		conv, _, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages[0].Type).To(Equal(chatmodel.TypeLink))
		Expect(conv.Messages[0].HasLink).To(BeTrue())
	})

	It("truncates content past 100000 characters with a warning", func() {
		long := make([]byte, 100_010)
		for i := range long {
			long[i] = 'a'
		}
		text := "2024-01-31, 14:05 - Alice: " + string(long) + "\n"
		conv, warnings, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(len([]rune(conv.Messages[0].Content))).To(BeNumerically("<=", 100_001))
		found := false
		for _, w := range warnings {
			if w.Kind == engineerr.WarningTruncation {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})

	It("strips a leading BOM", func() {
		text := "﻿2024-01-31, 14:05 - Alice: hi\n"
		conv, _, err := whatsapp.Parse([]byte(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages).To(HaveLen(1))
	})

	It("returns ErrEmptyCorpus when no lines match a date prefix", func() {
		text := "this is not a valid whatsapp export at all\n"
		_, _, err := whatsapp.Parse([]byte(text))
		Expect(err).To(HaveOccurred())
	})
})

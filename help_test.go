package main

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Help", func() {
	var out *bytes.Buffer

	BeforeEach(func() {
		out = &bytes.Buffer{}
	})

	It("should list every statement", func() {
		Expect(executeHelp(out, "")).To(BeTrue())
		for _, kw := range []string{kwPrint, kwLet, kwInput, kwIf, kwGoto} {
			Expect(out.String()).To(ContainSubstring(kw))
		}
	})

	It("should describe one statement", func() {
		Expect(executeHelp(out, "goto")).To(BeTrue())
		Expect(out.String()).To(Equal("Continue execution at the labelled line\n\tGOTO label\n"))
	})

	It("should reject an unknown statement", func() {
		Expect(executeHelp(out, "GOSUB")).To(BeFalse())
		Expect(out.Len()).To(BeZero())
	})
})

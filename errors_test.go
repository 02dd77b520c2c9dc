package main

import (
	"errors"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Errors", func() {

	It("should match sentinels by kind", func() {
		err := newError(EDIVISIONBYZERO, "Z")
		Expect(errors.Is(err, errDivisionByZero)).To(BeTrue())
		Expect(errors.Is(err, errUndefinedVariable)).To(BeFalse())
	})

	It("should format the token and the cause", func() {
		Expect(newError(EUNDEFINEDVARIABLE, "A").Error()).
			To(Equal(`Undefined variable "A"`))
		Expect(wrapError(EILLEGALNUMBER, "3x", strconv.ErrSyntax).Error()).
			To(Equal(`Illegal number "3x" (invalid syntax)`))
		Expect(newError(EINTERRUPTED, "").Error()).To(Equal("Interrupted"))
	})

	It("should unwrap to the cause", func() {
		err := wrapError(EILLEGALNUMBER, "3x", strconv.ErrSyntax)
		Expect(errors.Is(err, strconv.ErrSyntax)).To(BeTrue())
	})

	It("should number every error kind", func() {
		for kind := range errorMap {
			Expect(getErrorNo(kind)).To(BeNumerically(">", 0))
		}
		Expect(getErrorNo(EDIVISIONBYZERO)).To(Equal(int16(61)))
		Expect(getErrorNo("No such error")).To(Equal(int16(-1)))
	})

	It("should panic on a failed assertion", func() {
		Expect(func() { basicAssert(false, "oops") }).To(PanicWith("internal error: oops"))
		Expect(func() { basicAssert(true, "oops") }).NotTo(Panic())
	})
})

package main

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Expression evaluator", func() {
	var vars *symtab

	BeforeEach(func() {
		vars = newSymtab(nil)
	})

	eval := func(expr string) int {
		val, err := evaluateExpr(expr, vars)
		ExpectWithOffset(1, err).NotTo(HaveOccurred())
		return val
	}

	Context("precedence", func() {
		It("should multiply before adding", func() {
			Expect(eval("2 + 3 * 4")).To(Equal(14))
			Expect(eval("1 - 2 * 3 + 4")).To(Equal(-1))
		})

		It("should associate to the left", func() {
			Expect(eval("10 - 3 - 2")).To(Equal(5))
			Expect(eval("2 * 3 * 4 / 5")).To(Equal(4))
			Expect(eval("100 / 10 / 5")).To(Equal(2))
		})
	})

	Context("division", func() {
		It("should truncate toward zero", func() {
			Expect(eval("7 / 2")).To(Equal(3))
			Expect(eval("-7 / 2")).To(Equal(-3))
		})

		It("should reject a zero divisor and name it", func() {
			vars.set("Z", 0)

			_, err := evaluateExpr("10 / Z", vars)
			Expect(err).To(MatchError(errDivisionByZero))

			var be *basicError
			Expect(errors.As(err, &be)).To(BeTrue())
			Expect(be.token).To(Equal("Z"))
		})
	})

	Context("operands", func() {
		It("should read variables from the store", func() {
			vars.set("A", 6)
			vars.set("X", 2)
			Expect(eval("A + 3 * X")).To(Equal(12))
		})

		It("should evaluate a lone operand", func() {
			Expect(eval("42")).To(Equal(42))
			Expect(eval("  -5  ")).To(Equal(-5))
		})

		It("should fail on an undefined variable", func() {
			_, err := evaluateExpr("A + 1", vars)
			Expect(err).To(MatchError(errUndefinedVariable))
			Expect(err.Error()).To(ContainSubstring(`"A"`))
		})

		It("should fail on a malformed number", func() {
			_, err := evaluateExpr("1 + 3x", vars)
			Expect(err).To(MatchError(errMalformedNumber))
		})
	})

	Context("shape", func() {
		It("should reject operators and operands out of turn", func() {
			for _, expr := range []string{"", "1 +", "+ 1", "1 2", "1 + + 2", "*"} {
				_, err := evaluateExpr(expr, vars)
				Expect(err).To(MatchError(errMalformedExpression), "expr %q", expr)
			}
		})
	})
})

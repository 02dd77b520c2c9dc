package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Command line", func() {
	var (
		dir    string
		stdin  string
		out    *bytes.Buffer
		errOut *bytes.Buffer
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		stdin = ""
		out = &bytes.Buffer{}
		errOut = &bytes.Buffer{}
	})

	writeProgram := func(name, text string) string {
		path := filepath.Join(dir, name)
		ExpectWithOffset(1, os.WriteFile(path, []byte(text), 0644)).To(Succeed())
		return path
	}

	run := func(args ...string) int {
		return realMain(args, strings.NewReader(stdin), out, errOut)
	}

	It("should run a program and exit 0", func() {
		path := writeProgram("hello.bas", "10 LET A = 6 * 7\n20 PRINT \"answer \"; A\n")

		Expect(run(path)).To(Equal(0))
		Expect(out.String()).To(Equal("answer 42\n"))
		Expect(errOut.String()).To(BeEmpty())
	})

	It("should add the .bas suffix", func() {
		path := writeProgram("hello.bas", "PRINT 1\n")

		Expect(run(strings.TrimSuffix(path, ".bas"))).To(Equal(0))
		Expect(out.String()).To(Equal("1\n"))
	})

	It("should feed standard input to INPUT", func() {
		path := writeProgram("sum.bas", "INPUT \"a?\" A\nINPUT \"b?\" B\nPRINT A + B\n")
		stdin = "2\n3\n"

		Expect(run(path)).To(Equal(0))
		Expect(out.String()).To(Equal("a? b? 5\n"))
	})

	It("should exit 1 on a missing program", func() {
		Expect(run(filepath.Join(dir, "missing.txt"))).To(Equal(1))
		Expect(errOut.String()).To(ContainSubstring("?Can't find file or account"))
		Expect(errOut.String()).To(ContainSubstring("(ERR=5)"))
	})

	It("should exit 1 on a runtime error", func() {
		path := writeProgram("bad.bas", "PRINT 1\nLET X = 1 / 0\nPRINT 2\n")

		Expect(run(path)).To(Equal(1))
		Expect(out.String()).To(Equal("1\n"))
		Expect(errOut.String()).To(ContainSubstring("?Division by 0"))
		Expect(errOut.String()).To(ContainSubstring("at line 2: LET X = 1 / 0"))
	})

	It("should exit 1 on duplicate labels", func() {
		path := writeProgram("dup.bas", "10 PRINT 1\n10 PRINT 2\n")

		Expect(run(path)).To(Equal(1))
		Expect(errOut.String()).To(ContainSubstring("?Duplicate line number \"10\""))
	})

	It("should exit 1 when the step limit is hit", func() {
		path := writeProgram("loop.bas", "10 GOTO 10\n")

		Expect(run("-max-steps", "100", path)).To(Equal(1))
		Expect(errOut.String()).To(ContainSubstring("?Statement limit exceeded"))
	})

	It("should exit 2 on a bad flag or extra arguments", func() {
		Expect(run("-bogus")).To(Equal(2))
		Expect(run("a.bas", "b.bas")).To(Equal(2))
	})

	It("should exit 0 for -help", func() {
		Expect(run("-help")).To(Equal(0))
		Expect(errOut.String()).To(ContainSubstring("Usage: minibasic"))
	})

	It("should exit 1 on a bad config file", func() {
		Expect(run("-config", filepath.Join(dir, "nope.yaml"))).To(Equal(1))
		Expect(errOut.String()).To(ContainSubstring("?config"))
	})

	It("should print the version and settings", func() {
		Expect(run("-version", "-strict", "-max-steps", "5")).To(Equal(0))
		Expect(out.String()).To(ContainSubstring("minibasic version " + VERSION))
		Expect(out.String()).To(ContainSubstring("strict mode ON"))
		Expect(out.String()).To(ContainSubstring("exec trace OFF"))
		Expect(out.String()).To(ContainSubstring("5 statements maximum"))
	})

	It("should describe a statement", func() {
		Expect(run("-help-stmt", "IF")).To(Equal(0))
		Expect(out.String()).To(ContainSubstring("THEN"))

		Expect(run("-help-stmt", "GOSUB")).To(Equal(2))
		Expect(errOut.String()).To(ContainSubstring("?Illegal verb \"GOSUB\""))
	})

	It("should list the program without running it", func() {
		path := writeProgram("list.bas", "20 PRINT 2\n10 PRINT 1\n")

		Expect(run("-list", path)).To(Equal(0))
		Expect(out.String()).To(Equal("   2: 10 PRINT 1\n   1: 20 PRINT 2\n2 lines, 2 labels\n"))
	})

	It("should dump variables and statistics after the run", func() {
		path := writeProgram("vars.bas", "LET B = 2\nLET A = 1\n")

		Expect(run("-vars", "-stats", path)).To(Equal(0))
		Expect(out.String()).To(HavePrefix("A = 1\nB = 2\n"))
		Expect(out.String()).To(ContainSubstring("2 statements executed"))
	})

	It("should honour strict mode from a config file", func() {
		cfgPath := writeProgram("minibasic.yaml", "strict: true\n")
		path := writeProgram("rem.bas", "REM hello\nPRINT 1\n")

		Expect(run("-config", cfgPath, path)).To(Equal(1))
		Expect(errOut.String()).To(ContainSubstring("?Illegal verb \"REM\""))

		out.Reset()
		errOut.Reset()

		Expect(run("-config", cfgPath, "-strict=false", path)).To(Equal(0))
		Expect(out.String()).To(Equal("1\n"))
	})
})

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/goforj/godump"
)

func newInterp(cfg *config, out, errW io.Writer, src lineSource,
	log *slog.Logger) *interp {

	if cfg == nil {
		cfg = defaultConfig(false)
	}

	if log == nil {
		log = newLogger(io.Discard, cfg)
	}

	if src == nil {
		src = newStreamSource(strings.NewReader(""), out)
	}

	in := &interp{
		cfg:     cfg,
		vars:    newSymtab(log),
		prog:    &program{},
		input:   newInputReader(src, out),
		out:     out,
		errW:    errW,
		log:     log,
		curLine: -1,
	}

	in.vars.traceAll = cfg.TraceVars
	for _, name := range cfg.TracedVars {
		in.vars.traceName(name)
	}

	return in
}

//
// Load phase.  Any line whose first blank-delimited token is all
// digits gets its label registered.  The label stays in the stored
// text; it is stripped each time the line executes
//

func loadProgram(lines []string) (*program, error) {

	prog := &program{lines: lines}

	for i, line := range lines {
		first := split(line, ' ')[0]
		if !isLabel(first) {
			continue
		}

		label, err := strconv.Atoi(first)
		if err != nil {
			return nil, wrapError(EILLEGALNUMBER, first, numErrorCause(err))
		}

		if err := prog.labels.insert(label, i); err != nil {
			return nil, err
		}
	}

	return prog, nil
}

func readProgram(r io.Reader) ([]string, error) {

	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLen)

	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func loadProgramFile(filename string) ([]string, error) {

	f, err := os.Open(filename)
	if err != nil {
		return nil, wrapError(EFILENOTFOUND, filename, mapOSError(err))
	}
	defer f.Close()

	lines, err := readProgram(f)
	if err != nil {
		return nil, wrapError(EFILENOTFOUND, filename, mapOSError(err))
	}

	return lines, nil
}

func (in *interp) load(lines []string) error {

	prog, err := loadProgram(lines)
	if err != nil {
		return err
	}

	in.prog = prog

	if in.cfg.Dump {
		godump.Fdump(in.errW, prog.lines)
	}

	return nil
}

//
// Execute phase.  The program counter belongs to this loop; the
// statement executors hand back the value it should take before the
// usual +1 advance.  Running off the end is the only normal way out
//

func (in *interp) run(ctx context.Context) error {

	lines := in.prog.lines

	for pc := 0; pc < len(lines); {
		if err := ctx.Err(); err != nil {
			return in.fault(wrapError(EINTERRUPTED, "", err), pc)
		}

		if limit := in.cfg.MaxSteps; limit > 0 && in.s.numStatements >= limit {
			return in.fault(newError(ESTEPLIMIT, strconv.FormatInt(limit, 10)), pc)
		}

		in.curLine = pc

		if in.cfg.TraceExec {
			in.log.Log(ctx, levelTrace, "exec", "line", pc+1, "text", lines[pc])
		}

		next, err := in.executeLine(stripLabel(lines[pc]), pc)

		in.s.numStatements++

		if err != nil {
			return in.fault(err, pc)
		}

		pc = next + 1
	}

	in.curLine = -1

	return nil
}

func (in *interp) fault(err error, pc int) error {

	in.curLine = pc

	in.reportError(err)

	return err
}

//
// A physical line can hold several ':' separated statements
//

func (in *interp) executeLine(text string, pc int) (int, error) {

	var err error

	for _, stmt := range splitStatements(text) {
		if pc, err = in.executeStatement(stmt, pc); err != nil {
			return pc, err
		}
	}

	return pc, nil
}

//
// Run one statement and return the new program counter.  Only GOTO
// (directly, or from inside a THEN clause) changes it
//

func (in *interp) executeStatement(text string, pc int) (int, error) {

	text = trim(text)

	toks := fields(text)
	if len(toks) == 0 {
		return pc, nil
	}

	switch toks[0] {
	default:
		if in.cfg.Strict {
			return pc, newError(EUNKNOWNSTATEMENT, toks[0])
		}
		// lenient mode treats anything unrecognized as a comment

	case kwPrint:
		return pc, in.executePrint(text)

	case kwLet:
		return pc, in.executeLet(text)

	case kwInput:
		return pc, in.executeInput(text)

	case kwIf:
		return in.executeIf(text, toks, pc)

	case kwGoto:
		return in.executeGoto(toks, pc), nil
	}

	return pc, nil
}

//
// PRINT items are ';' separated and printed back to back, with a
// single newline at the end
//

func (in *interp) executePrint(text string) error {

	var buf strings.Builder

	args := strings.TrimPrefix(text, kwPrint)

	for _, item := range splitQuoted(args, ';') {
		item = trim(item)
		if item == "" {
			continue
		}

		str, ok, err := quoted(item)
		if err != nil {
			return err
		}

		if ok {
			buf.WriteString(str)
			continue
		}

		val, err := in.printValue(item)
		if err != nil {
			return err
		}

		buf.WriteString(strconv.Itoa(val))
	}

	buf.WriteByte('\n')

	_, err := io.WriteString(in.out, buf.String())

	return err
}

func (in *interp) printValue(item string) (int, error) {

	if isAlpha(item[0]) && len(strings.Fields(item)) == 1 {
		return in.vars.get(item)
	}

	return in.evaluate(item)
}

func (in *interp) executeLet(text string) error {

	rest := strings.TrimPrefix(text, kwLet)

	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return newError(EILLEGALEXPRESSION, text)
	}

	name := trim(rest[:eq])
	if !isIdentifier(name) {
		return newError(EILLEGALEXPRESSION, text)
	}

	val, err := in.evaluate(rest[eq+1:])
	if err != nil {
		return err
	}

	in.vars.set(name, val)

	return nil
}

//
// INPUT ["prompt"] name.  The prompt, if any, is printed with one
// trailing blank and no newline.  Exactly one variable name must
// follow it
//

func (in *interp) executeInput(text string) error {

	var prompt string

	rest := trim(strings.TrimPrefix(text, kwInput))

	msg, ok, err := quoted(rest)
	if err != nil {
		return err
	}

	if ok {
		s := strings.IndexByte(rest, '"')
		if trim(rest[:s]) != "" {
			return newError(EILLEGALEXPRESSION, text)
		}
		rest = rest[s+len(msg)+2:]
		prompt = msg + " "
	}

	names := strings.Fields(rest)
	if len(names) != 1 || !isIdentifier(names[0]) {
		return newError(EILLEGALEXPRESSION, text)
	}

	name := names[0]

	tok, err := in.input.readToken(prompt)
	if err != nil {
		if err == io.EOF {
			return newError(EOUTOFDATA, name)
		}
		return err
	}

	val, err := strconv.Atoi(tok)
	if err != nil {
		return wrapError(EILLEGALNUMBER, tok, numErrorCause(err))
	}

	in.vars.set(name, val)

	return nil
}

//
// IF lhs op rhs THEN stmt[:stmt]...  The operands are single tokens.
// If either one can't be evaluated, we complain and treat the
// condition as false rather than aborting the program
//

func (in *interp) executeIf(text string, toks []string, pc int) (int, error) {

	var cond bool

	if len(toks) < 5 || toks[4] != kwThen {
		return pc, newError(EILLEGALEXPRESSION, text)
	}

	lhs, err := in.evaluate(toks[1])
	if err != nil {
		in.reportError(err)
		return pc, nil
	}

	rhs, err := in.evaluate(toks[3])
	if err != nil {
		in.reportError(err)
		return pc, nil
	}

	switch toks[2] {
	default:
		in.reportError(newError(EILLEGALEXPRESSION, toks[2]))
		return pc, nil

	case "=":
		cond = lhs == rhs

	case "<":
		cond = lhs < rhs

	case ">":
		cond = lhs > rhs
	}

	if !cond {
		return pc, nil
	}

	//
	// Every ':' piece after THEN is a clause of this IF, a nested IF
	// included
	//

	then := text[fieldOffset(text, 4)+len(kwThen):]

	for _, stmt := range splitQuoted(then, ':') {
		if pc, err = in.executeStatement(stmt, pc); err != nil {
			return pc, err
		}
	}

	return pc, nil
}

//
// Byte offset of the n'th (0-based) blank-delimited field
//

func fieldOffset(text string, n int) int {

	i := 0

	for {
		for i < len(text) && text[i] == ' ' {
			i++
		}

		if n == 0 || i == len(text) {
			return i
		}

		for i < len(text) && text[i] != ' ' {
			i++
		}

		n--
	}
}

//
// A bad GOTO is reported and ignored: execution falls through to the
// next line.  Otherwise, return one before the target, since the run
// loop is about to advance the counter
//

func (in *interp) executeGoto(toks []string, pc int) int {

	if len(toks) < 2 {
		in.reportError(newError(EUNKNOWNLABEL, ""))
		return pc
	}

	label, err := strconv.Atoi(toks[1])
	if err != nil {
		in.reportError(wrapError(EUNKNOWNLABEL, toks[1], numErrorCause(err)))
		return pc
	}

	index, ok := in.prog.labels.lookup(label)
	if !ok {
		in.reportError(newError(EUNKNOWNLABEL, toks[1]))
		return pc
	}

	return index - 1
}

func (in *interp) evaluate(expr string) (int, error) {

	toks, err := tokenizeExpr(expr)
	if err != nil {
		return 0, err
	}

	if in.cfg.Dump {
		godump.Fdump(in.errW, toks)
	}

	return evaluateTokens(expr, toks, in.vars)
}

//
// Print the error, and if we know which line was executing, the line
// itself with the offending token highlighted
//

func (in *interp) reportError(err error) {

	var be *basicError
	var tok string

	msg := err.Error()

	if errors.As(err, &be) {
		tok = be.token
		if errNo := getErrorNo(be.kind); errNo >= 0 {
			msg += fmt.Sprintf(" (ERR=%d)", errNo)
		}
	}

	fmt.Fprintf(in.errW, "?%s\n", msg)

	if in.curLine < 0 || in.curLine >= len(in.prog.lines) {
		return
	}

	line := in.prog.lines[in.curLine]
	if in.cfg.Color {
		line = colorizeString(line, tok, colorRedSeq)
	}

	fmt.Fprintf(in.errW, "at line %d: %s\n", in.curLine+1, line)
}

//
// List the labelled lines in label order
//

func (in *interp) listProgram(w io.Writer) {

	lt := &in.prog.labels

	for node := lt.firstInOrder(); node != nil; node = lt.nextInOrder(node) {
		fmt.Fprintf(w, "%4d: %s\n", node.index+1, in.prog.lines[node.index])
	}

	fmt.Fprintf(w, "%d %s, %d %s\n",
		len(in.prog.lines), pluralize("line", int64(len(in.prog.lines))),
		lt.len(), pluralize("label", int64(lt.len())))
}

func (in *interp) dumpVars(w io.Writer) {

	in.vars.each(func(name string, value int) {
		fmt.Fprintf(w, "%s = %d\n", name, value)
	})
}

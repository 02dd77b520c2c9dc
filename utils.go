package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
)

//
// INPUT reads from a lineSource.  On a terminal that is a Liner
// instance, so the user gets line editing; otherwise (pipes, files,
// tests) a plain buffered reader
//

type lineSource interface {
	readLine(prompt string) (string, error)
	close() error
}

type streamSource struct {
	r   *bufio.Reader
	out io.Writer
}

type linerSource struct {
	l *liner.State
}

func newStreamSource(r io.Reader, out io.Writer) *streamSource {

	return &streamSource{r: bufio.NewReader(r), out: out}
}

//
// A final line with no trailing newline still counts.  io.EOF is
// only returned once there is nothing left at all
//

func (ss *streamSource) readLine(prompt string) (string, error) {

	if prompt != "" {
		if _, err := io.WriteString(ss.out, prompt); err != nil {
			return "", err
		}
	}

	line, err := ss.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (ss *streamSource) close() error {

	return nil
}

func newLinerSource() *linerSource {

	l := liner.NewLiner()

	l.SetCtrlCAborts(true)

	return &linerSource{l: l}
}

//
// ^C at the prompt aborts the program the same way an interrupt
// during execution does.  ^D at the start of a line is EOF
//

func (ls *linerSource) readLine(prompt string) (string, error) {

	s, err := ls.l.Prompt(prompt)
	if err != nil {
		if err == liner.ErrPromptAborted {
			return "", newError(EINTERRUPTED, "")
		}
		return "", err
	}

	return s, nil
}

//
// Restore terminal state.  Safe to call more than once, since both
// the normal return path and the atexit handler do so
//

func (ls *linerSource) close() error {

	if ls.l == nil {
		return nil
	}

	err := ls.l.Close()
	ls.l = nil

	return err
}

//
// Only use Liner when both ends are a terminal, as it needs to put
// the terminal in raw mode and redraw the prompt
//

func newInputSource(in io.Reader, out io.Writer) lineSource {

	if isTerminal(in) && isTerminal(out) {
		return newLinerSource()
	}

	return newStreamSource(in, out)
}

func isTerminal(f any) bool {

	file, ok := f.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

//
// INPUT consumes one blank-delimited token per call, wherever the
// line breaks fall.  Tokens left over from the last line read are
// handed out before reading another
//

type inputReader struct {
	src     lineSource
	out     io.Writer
	pending []string
}

func newInputReader(src lineSource, out io.Writer) *inputReader {

	return &inputReader{src: src, out: out}
}

func (ir *inputReader) readToken(prompt string) (string, error) {

	if len(ir.pending) > 0 {
		if prompt != "" {
			if _, err := io.WriteString(ir.out, prompt); err != nil {
				return "", err
			}
		}
	} else {
		for len(ir.pending) == 0 {
			line, err := ir.src.readLine(prompt)
			if err != nil {
				return "", err
			}
			prompt = ""
			ir.pending = strings.Fields(line)
		}
	}

	tok := ir.pending[0]
	ir.pending = ir.pending[1:]

	return tok, nil
}

//
// This routine implements replacement of a substring.  The replaced
// substring can be empty (e.g. sloc and eloc are equal), in which
// case we're basically inserting the replacement string
//

func replaceSubstring(src string, sloc, eloc int, rep string) string {

	return src[0:sloc] + rep + src[eloc:]
}

//
// Return a copy of the line with the first occurrence of tok wrapped
// in the escape sequence.  If tok is not in the line, hand the line
// back unchanged
//

func colorizeString(line string, tok string, esc string) string {

	s := strings.Index(line, tok)
	if tok == "" || s < 0 {
		return line
	}

	e := s + len(tok)

	return replaceSubstring(line, s, e, esc+line[s:e]+colorResetSeq)
}

func pluralize(str string, num int64) string {

	//
	// Oddity: 0 is considered plural
	//

	if num != 1 {
		return str + "s"
	}

	return str
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	} else {
		return "OFF"
	}
}

//
// Run statistics.  CPU times come from /proc, so on systems without
// it we report elapsed time only
//

func (in *interp) initClock() {

	in.s.elapsed = time.Now()
	in.s.utime, in.s.stime, _ = getCPUInfo()
	in.s.numStatements = 0
}

func (in *interp) printStatistics(w io.Writer) {

	elapsed := time.Since(in.s.elapsed)

	fmt.Fprintln(w)

	if utime, stime, err := getCPUInfo(); err == nil {
		fmt.Fprintf(w, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
			formatCPUTime(int64(elapsed.Seconds())),
			formatCPUTime(utime-in.s.utime), formatCPUTime(stime-in.s.stime))
	} else {
		fmt.Fprintf(w, "Elapsed: %s\n", formatCPUTime(int64(elapsed.Seconds())))
	}

	fmt.Fprintf(w, "%d %s executed\n", in.s.numStatements,
		pluralize("statement", in.s.numStatements))
	fmt.Fprintf(w, "%d %s defined\n", int64(in.vars.len()),
		pluralize("variable", int64(in.vars.len())))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

func getCPUInfo() (int64, int64, error) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		return 0, 0, err
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0, err
	}

	//
	// The command name (field 2) is parenthesized and may contain
	// blanks, so count fields from the closing paren
	//

	stat := string(contents)
	if i := strings.LastIndexByte(stat, ')'); i >= 0 {
		stat = stat[i+1:]
	}

	fields := strings.Fields(stat)
	if len(fields) < 13 {
		return 0, 0, errors.New("short /proc/self/stat")
	}

	utime, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	stime, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	return utime / clktck, stime / clktck, nil
}

//
// Map various OS errors to something a BASIC user would understand
//

func mapOSError(err error) error {

	var pErr *fs.PathError

	if errors.Is(err, fs.ErrPermission) {
		return errors.New("Protection violation") //nolint:staticcheck
	} else if errors.Is(err, fs.ErrNotExist) {
		return errors.New("No such file") //nolint:staticcheck
	} else if errors.As(err, &pErr) {
		return pErr.Err
	}

	return err
}

func fileExists(filename string) bool {

	_, err := os.Stat(filename)

	return err == nil
}

//
// Take a filename for a source program.  If it has no suffix and
// doesn't exist as given, try it with ".bas" appended
//

func validateProgramFilename(filename string) string {

	if filepath.Ext(filename) == "" && !fileExists(filename) {
		return filename + basFileSuffix
	}

	return filename
}

package main

import (
	"strconv"
	"strings"
)

//
// Token kinds produced by classify.  Keywords and quoted text never
// reach the expression layer; the statement executors pick those off
// before handing the rest of the line to the evaluator
//

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokVariable
	tokOperator
)

type token struct {
	kind  tokenKind
	text  string
	value int
	op    byte
}

func (k tokenKind) String() string {

	switch k {
	case tokNumber:
		return "number"
	case tokVariable:
		return "variable"
	case tokOperator:
		return "operator"
	}

	return "unknown"
}

//
// Split on every occurrence of delim, keeping empty fields.  Nothing
// is trimmed
//

func split(text string, delim byte) []string {

	return strings.Split(text, string(delim))
}

//
// Remove leading and trailing blanks.  Only ' ' counts; tabs and
// newlines are left alone
//

func trim(text string) string {

	return strings.Trim(text, " ")
}

//
// Statement level tokenization splits on single spaces, so a run of
// spaces produces empty tokens.  Drop them here so nobody downstream
// has to care
//

func fields(text string) []string {

	var toks []string

	for _, tok := range split(text, ' ') {
		if tok != "" {
			toks = append(toks, tok)
		}
	}

	return toks
}

//
// Split on delim, except inside a double-quoted string.  PRINT items
// and ':' separated statements both go through here, so that
// PRINT "A;B" or PRINT "X: " work as written
//

func splitQuoted(text string, delim byte) []string {

	var parts []string
	var quoting bool

	start := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			quoting = !quoting

		case delim:
			if !quoting {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, text[start:])
}

//
// Split a line into ':' separated statements.  An IF swallows the
// remainder of the line, since its THEN clause may itself contain
// ':' separated statements which must only run if the condition
// holds
//

func splitStatements(text string) []string {

	var stmts []string

	parts := splitQuoted(text, ':')

	for i, part := range parts {
		part = trim(part)

		toks := fields(part)
		if len(toks) > 0 && toks[0] == kwIf {
			rest := strings.Join(parts[i:], ":")
			stmts = append(stmts, trim(rest))
			break
		}

		if part != "" {
			stmts = append(stmts, part)
		}
	}

	return stmts
}

//
// Return the text between the first pair of double quotes.  ok is
// false if there is no quote at all; an unterminated string is an
// error
//

func quoted(text string) (inner string, ok bool, err error) {

	s := strings.IndexByte(text, '"')
	if s < 0 {
		return "", false, nil
	}

	e := strings.IndexByte(text[s+1:], '"')
	if e < 0 {
		return "", false, newError(EILLEGALEXPRESSION, text)
	}

	return text[s+1 : s+1+e], true, nil
}

//
// A label is a leading token made up entirely of digits
//

func isLabel(tok string) bool {

	if tok == "" {
		return false
	}

	for i := 0; i < len(tok); i++ {
		if !isDigit(tok[i]) {
			return false
		}
	}

	return true
}

//
// Strip a leading label, up to and including the first space.  A line
// holding nothing but a label becomes empty
//

func stripLabel(line string) string {

	first := split(line, ' ')[0]
	if !isLabel(first) {
		return line
	}

	return strings.TrimPrefix(line[len(first):], " ")
}

func isDigit(ch byte) bool {

	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {

	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

//
// Variable names start with a letter and contain no blanks.  The
// lexer never sees a blank inside a token, but LET extracts its
// target by hand, so check here
//

func isIdentifier(name string) bool {

	if name == "" || !isAlpha(name[0]) {
		return false
	}

	return !strings.ContainsAny(name, " \t")
}

func isOperator(tok string) bool {

	switch tok {
	case "+", "-", "*", "/":
		return true
	}

	return false
}

//
// Classify each raw token exactly once.  Numbers are converted here,
// so a bad literal fails before any evaluation happens; variables are
// resolved later against the store
//

func classify(toks []string) ([]token, error) {

	out := make([]token, 0, len(toks))

	for _, tok := range toks {
		tok = trim(tok)

		switch {
		case isOperator(tok):
			out = append(out, token{kind: tokOperator, text: tok, op: tok[0]})

		case tok != "" && isAlpha(tok[0]):
			out = append(out, token{kind: tokVariable, text: tok})

		default:
			n, err := strconv.Atoi(tok)
			if err != nil {
				return nil, wrapError(EILLEGALNUMBER, tok, numErrorCause(err))
			}
			out = append(out, token{kind: tokNumber, text: tok, value: n})
		}
	}

	return out, nil
}

//
// strconv errors repeat the input text, which we already carry in
// the token, so keep only the reason
//

func numErrorCause(err error) error {

	if nerr, ok := err.(*strconv.NumError); ok {
		return nerr.Err
	}

	return err
}

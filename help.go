package main

import (
	"fmt"
	"io"
	"strings"
)

type stmtHelp struct {
	keyword string
	summary string
	forms   []string
}

var stmtHelpTable = []stmtHelp{
	{kwPrint, "Print one or more items on a single line",
		[]string{"PRINT \"text\"", "PRINT expr", "PRINT item ; item ..."}},
	{kwLet, "Assign the value of an expression to a variable",
		[]string{"LET name = expr"}},
	{kwInput, "Read an integer from standard input into a variable",
		[]string{"INPUT name", "INPUT \"prompt\" name"}},
	{kwIf, "Compare two operands and run the THEN clause if true",
		[]string{"IF a = b THEN stmt", "IF a < b THEN stmt : stmt ...",
			"IF a > b THEN GOTO label"}},
	{kwGoto, "Continue execution at the labelled line",
		[]string{"GOTO label"}},
}

//
// With an empty keyword, list the statements.  Returns false if the
// keyword isn't one we know
//

func executeHelp(w io.Writer, kw string) bool {

	if kw == "" {
		for _, h := range stmtHelpTable {
			fmt.Fprintf(w, "  %-6s %s\n", h.keyword, h.summary)
		}
		return true
	}

	kw = strings.ToUpper(kw)

	for _, h := range stmtHelpTable {
		if h.keyword != kw {
			continue
		}

		fmt.Fprintln(w, h.summary)
		for _, form := range h.forms {
			fmt.Fprintf(w, "\t%s\n", form)
		}

		return true
	}

	return false
}

package main

import (
	"io"
	"log/slog"
	"time"
)

//
// Constants
//

const VERSION = "1.0.0"

const basFileSuffix = ".bas"

const defaultProgram = "script.txt"

const maxLineLen = 64 * 1024

const colorRedSeq = "\033[31m"
const colorResetSeq = "\033[0m"

//
// Statement and variable tracing is logged one notch below debug
//

const levelTrace = slog.LevelDebug - 4

//
// Statement keywords.  Matching is exact and case-sensitive
//

const (
	kwPrint = "PRINT"
	kwLet   = "LET"
	kwInput = "INPUT"
	kwIf    = "IF"
	kwThen  = "THEN"
	kwGoto  = "GOTO"
)

//
// Type definitions
//

//
// The program is immutable once loaded: the raw lines, indexed from
// 0 by physical position, and the label table built from them
//

type program struct {
	lines  []string
	labels labelTable
}

type stats struct {
	elapsed       time.Time
	utime         int64
	stime         int64
	numStatements int64
}

//
// Everything one run of a program needs.  Nothing here is global, so
// the executors can be driven directly from tests
//

type interp struct {
	cfg     *config
	vars    *symtab
	prog    *program
	input   *inputReader
	out     io.Writer
	errW    io.Writer
	log     *slog.Logger
	s       stats
	curLine int
}

//
// Global variables
//

var buildTimestampStr string

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tebeka/atexit"
)

func main() {

	atexit.Exit(realMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

//
// Everything main does, minus the exit, so it can be driven from the
// tests.  Returns the process exit status: 0 for a normal run, 1 if
// the program couldn't be loaded or stopped on an error, 2 for a bad
// command line
//

func realMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {

	cfg, rest, err := parseArgs(args, isTerminal(stderr), stderr)
	if err != nil {
		var cerr *configError

		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0

		case errors.As(err, &cerr):
			fmt.Fprintf(stderr, "?%v\n", err)
			return 1
		}

		return 2
	}

	if cfg.Version {
		printVersionInfo(stdout, cfg)
		return 0
	}

	if cfg.HelpStmt != "" {
		if !executeHelp(stdout, cfg.HelpStmt) {
			fmt.Fprintf(stderr, "?%v\n", newError(EUNKNOWNSTATEMENT, cfg.HelpStmt))
			return 2
		}
		return 0
	}

	filename := defaultProgram

	switch len(rest) {
	default:
		fmt.Fprintln(stderr, "Usage: minibasic [flags] [program]")
		return 2

	case 0:
		// run script.txt

	case 1:
		filename = validateProgramFilename(rest[0])
	}

	log := newLogger(stderr, cfg)

	lines, err := loadProgramFile(filename)
	if err != nil {
		newInterp(cfg, stdout, stderr, nil, log).reportError(err)
		return 1
	}

	log.Debug("program loaded", "file", filename, "lines", len(lines))

	//
	// Liner leaves the terminal in raw mode unless it is closed, so
	// close it both on the way out of here and from any atexit path
	//

	src := newInputSource(stdin, stdout)
	atexit.Register(func() { _ = src.close() })
	defer src.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// The first ^C stops the program between lines.  Restore the
	// default handling after that, so a second one kills a program
	// stuck waiting for input
	//

	go func() {
		<-ctx.Done()
		stop()
	}()

	in := newInterp(cfg, stdout, stderr, src, log)

	if err := in.load(lines); err != nil {
		in.reportError(err)
		return 1
	}

	if cfg.List {
		in.listProgram(stdout)
		return 0
	}

	in.initClock()

	err = in.run(ctx)

	if cfg.ShowVars {
		in.dumpVars(stdout)
	}

	if cfg.Stats {
		in.printStatistics(stdout)
	}

	if err != nil {
		log.Debug("program stopped", "error", err, "statements", in.s.numStatements)
		return 1
	}

	return 0
}

func printVersionInfo(w io.Writer, cfg *config) {

	built := buildTimestampStr
	if built == "" {
		built = "unknown"
	}

	fmt.Fprintf(w, "minibasic version %s - built %s\n", VERSION, built)
	fmt.Fprintf(w, "strict mode %s\n", switchSetting(cfg.Strict))
	fmt.Fprintf(w, "exec trace %s\n", switchSetting(cfg.TraceExec))
	fmt.Fprintf(w, "variable trace %s\n", switchSetting(cfg.TraceVars))

	if cfg.MaxSteps > 0 {
		fmt.Fprintf(w, "%d %s maximum\n", cfg.MaxSteps,
			pluralize("statement", cfg.MaxSteps))
	}
}

func usage(fs *flag.FlagSet) {

	w := fs.Output()

	fmt.Fprintln(w, "Usage: minibasic [flags] [program]")
	fmt.Fprintf(w, "\nRuns program (default %s).  Flags:\n", defaultProgram)
	fs.PrintDefaults()
	fmt.Fprintln(w, "\nStatements:")
	executeHelp(w, "")
}

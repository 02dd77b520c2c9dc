package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//
// Interpreter settings.  Defaults come from defaultConfig, then an
// optional YAML file (-config), then the command line, which always
// wins
//

type config struct {
	ConfigFile string   `yaml:"-"`
	Strict     bool     `yaml:"strict"`
	TraceExec  bool     `yaml:"trace_exec"`
	TraceVars  bool     `yaml:"trace_vars"`
	TracedVars []string `yaml:"traced_vars"`
	Dump       bool     `yaml:"dump"`
	Stats      bool     `yaml:"stats"`
	ShowVars   bool     `yaml:"show_vars"`
	MaxSteps   int64    `yaml:"max_steps"`
	LogLevel   string   `yaml:"log_level"`
	Color      bool     `yaml:"color"`
	List       bool     `yaml:"-"`
	Version    bool     `yaml:"-"`
	HelpStmt   string   `yaml:"-"`
}

type configError struct {
	path string
	err  error
}

func (e *configError) Error() string {

	return fmt.Sprintf("config %s: %v", e.path, e.err)
}

func (e *configError) Unwrap() error {

	return e.err
}

func defaultConfig(color bool) *config {

	return &config{
		LogLevel: "warn",
		Color:    color,
	}
}

//
// -trace-var may be given more than once
//

type stringList struct {
	list *[]string
}

func (sl stringList) String() string {

	if sl.list == nil {
		return ""
	}

	return strings.Join(*sl.list, ",")
}

func (sl stringList) Set(s string) error {

	*sl.list = append(*sl.list, s)

	return nil
}

func newFlagSet(cfg *config, errW io.Writer) *flag.FlagSet {

	fs := flag.NewFlagSet("minibasic", flag.ContinueOnError)
	fs.SetOutput(errW)

	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "read settings from a YAML `file`")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "treat unknown statements as errors")
	fs.BoolVar(&cfg.TraceExec, "trace", cfg.TraceExec, "trace each executed line")
	fs.BoolVar(&cfg.TraceVars, "trace-vars", cfg.TraceVars, "trace every variable change")
	fs.Var(stringList{&cfg.TracedVars}, "trace-var", "trace changes to the `name`d variable (repeatable)")
	fs.BoolVar(&cfg.Dump, "dump", cfg.Dump, "dump the loaded program and expression tokens")
	fs.BoolVar(&cfg.Stats, "stats", cfg.Stats, "print execution statistics when the program stops")
	fs.BoolVar(&cfg.ShowVars, "vars", cfg.ShowVars, "print all variables when the program stops")
	fs.BoolVar(&cfg.List, "list", cfg.List, "list the labelled lines and exit")
	fs.Int64Var(&cfg.MaxSteps, "max-steps", cfg.MaxSteps, "stop after `n` lines have executed (0 means no limit)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "diagnostic `level`: trace, debug, info, warn or error")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "highlight the offending token in error reports")
	fs.BoolVar(&cfg.Version, "version", cfg.Version, "print version information and exit")
	fs.StringVar(&cfg.HelpStmt, "help-stmt", cfg.HelpStmt, "describe the `statement` and exit")

	fs.Usage = func() {
		usage(fs)
	}

	return fs
}

//
// Parse the command line.  If it names a config file, load that and
// parse the command line again on top of it, so flags override the
// file
//

func parseArgs(args []string, color bool, errW io.Writer) (*config, []string, error) {

	cfg := defaultConfig(color)

	fs := newFlagSet(cfg, errW)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if cfg.ConfigFile == "" {
		return cfg, fs.Args(), nil
	}

	fileCfg, err := loadConfigFile(cfg.ConfigFile, color)
	if err != nil {
		return nil, nil, err
	}

	fs = newFlagSet(fileCfg, errW)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return fileCfg, fs.Args(), nil
}

func loadConfigFile(path string, color bool) (*config, error) {

	cfg := defaultConfig(color)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &configError{path, mapOSError(err)}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &configError{path, err}
	}

	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, &configError{path, err}
	}

	cfg.ConfigFile = path

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {

	var level slog.Level

	if strings.EqualFold(s, "trace") {
		return levelTrace, nil
	}

	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}

	return level, nil
}

//
// Diagnostics go to standard error as text.  Turning on any kind of
// tracing drops the level far enough for the trace records to show
//

func newLogger(w io.Writer, cfg *config) *slog.Logger {

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}

	if cfg.TraceExec || cfg.TraceVars || len(cfg.TracedVars) > 0 {
		level = min(level, levelTrace)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && a.Value.Any() == levelTrace {
				a.Value = slog.StringValue("TRACE")
			}
			return a
		},
	})

	return slog.New(handler)
}

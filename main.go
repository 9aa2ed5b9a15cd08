package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/jcorbin/gobf/internal/fileinput"
	"github.com/jcorbin/gobf/internal/logio"
	"github.com/jcorbin/gobf/internal/panicerr"
)

func main() {
	ctx := context.Background()

	var logger logio.Logger
	logger.SetOutput(os.Stderr)
	defer func() { os.Exit(logger.ExitCode()) }()

	var (
		configPath string
		capacity   uint
		timeout    time.Duration
		trace      bool
		dump       bool
		prompt     string
		snapshot   string
		resume     string
	)
	flag.StringVar(&configPath, "config", "", "load settings from a TOML file")
	flag.UintVar(&capacity, "capacity", 0, "number of tape cells (default 30000)")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "dump machine state after the run")
	flag.StringVar(&prompt, "prompt", "", "prompt to show before reading input from a terminal")
	flag.StringVar(&snapshot, "snapshot", "", "write a CBOR machine snapshot after the run")
	flag.StringVar(&resume, "resume", "", "resume from a CBOR machine snapshot")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [flags] program.bf\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		logger.ErrorIf(fmt.Errorf("expected one program file argument, got %v", flag.NArg()))
		return
	}

	var cfg Config
	if configPath != "" {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			logger.ErrorIf(err)
			return
		}
		cfg = *loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capacity":
			cfg.Machine.Capacity = capacity
		case "timeout":
			cfg.Run.Timeout = timeout.String()
		case "trace":
			cfg.Run.Trace = trace
		case "dump":
			cfg.Run.Dump = dump
		case "prompt":
			cfg.Run.Prompt = prompt
		case "snapshot":
			cfg.Run.Snapshot = snapshot
		case "resume":
			cfg.Run.Resume = resume
		}
	})

	prog, err := fileinput.LoadFile(flag.Arg(0))
	if err != nil {
		logger.ErrorIf(err)
		return
	}

	opts := append(cfg.Options(),
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
	)
	if cfg.Run.Trace {
		opts = append(opts,
			WithLogf(logger.Leveledf("TRACE")),
			WithTee(&logio.Writer{Logf: logger.Leveledf("OUTPUT")}),
		)
	}
	if cfg.Run.Prompt != "" && term.IsTerminal(int(os.Stdin.Fd())) {
		opts = append(opts, WithPrompt(os.Stderr, cfg.Run.Prompt))
	}
	vm := New(opts...)

	if cfg.Run.Resume != "" {
		snap, err := ReadSnapshotFile(cfg.Run.Resume)
		if err == nil {
			err = vm.Restore(snap)
		}
		if err != nil {
			logger.ErrorIf(fmt.Errorf("resume %v: %w", cfg.Run.Resume, err))
			return
		}
	}

	if d, _ := cfg.Run.TimeoutDuration(); d != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	err = vm.Run(ctx, prog)

	if cfg.Run.Dump {
		vmDumper{vm: vm, out: os.Stderr}.dump()
	}
	if cfg.Run.Snapshot != "" {
		logger.ErrorIf(WriteSnapshotFile(cfg.Run.Snapshot, vm.Snapshot()))
	}

	reportRun(&logger, os.Stdout, err)
}

// reportRun prints the outcome of a run, and logs any error so that the
// logger's exit code classifies it: ExitFault for a machine fault,
// ExitInternal for a panic inside gobf, ExitError for anything else.
func reportRun(logger *logio.Logger, out io.Writer, err error) {
	if pe, ok := panicerr.As(err); ok {
		fmt.Fprintln(out, "Finished with error!")
		logger.Exitf(logio.ExitInternal, "%+v", pe)
		return
	}
	switch {
	case err == nil:
		fmt.Fprintln(out, "Finished OK!")
	case IsFault(err):
		fmt.Fprintln(out, "Finished with error!")
		logger.Errorf("%v", err)
	default:
		logger.ErrorIf(err)
	}
}

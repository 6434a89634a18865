package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"boac/boa"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	version = "0.1.0"
	log     = commonlog.GetLogger("boa")
)

type options struct {
	configPath string
	emit       string
	run        bool
	trace      bool
	color      string
	verbosity  int
	logFile    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the driver and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var started bool
	var source string
	var cfg boa.Config

	opts := &options{}
	cmd := &cobra.Command{
		Use:           "boa <input-path> <output-path>",
		Short:         "Compile a boa expression to x86-64 assembly",
		Args:          cobra.ExactArgs(2),
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			started = true
			var err error
			cfg, err = opts.resolve(cmd)
			if err != nil {
				return err
			}
			configureLogging(cfg)

			source, err = compile(cfg, args[0], args[1], stdout)
			return err
		},
	}
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "TOML or YAML config file")
	flags.StringVar(&opts.emit, "emit", boa.EmitAsm, "output to write: asm, listing or ast")
	flags.BoolVar(&opts.run, "run", false, "execute the program on the reference machine and print the result")
	flags.BoolVar(&opts.trace, "trace", false, "log each executed instruction (requires --run)")
	flags.StringVar(&opts.color, "color", boa.ColorAuto, "highlight diagnostics: auto, always or never")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&opts.logFile, "log", "", "write logs to this file instead of stderr")

	if err := cmd.Execute(); err != nil {
		if !started {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			fmt.Fprintf(stderr, "Usage: %s\n", cmd.UseLine())
			return 1
		}
		reportError(stderr, err, source, useColor(cfg.Color, stderr))
		return 1
	}
	return 0
}

// resolve layers the config file and then explicitly set flags over the
// defaults.
func (o *options) resolve(cmd *cobra.Command) (boa.Config, error) {
	cfg := boa.DefaultConfig()
	if o.configPath != "" {
		loaded, err := boa.LoadConfig(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("emit") {
		cfg.Emit = o.emit
	}
	if flags.Changed("run") {
		cfg.Run = o.run
	}
	if flags.Changed("trace") {
		cfg.Trace = o.trace
	}
	if flags.Changed("color") {
		cfg.Color = o.color
	}
	if flags.Changed("log") {
		cfg.LogFile = o.logFile
	}
	cfg.Verbosity += o.verbosity
	return cfg, cfg.Validate()
}

func configureLogging(cfg boa.Config) {
	var path *string
	if cfg.LogFile != "" {
		path = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbosity, path)
}

// compile builds the input file and writes the requested output. Nothing is
// written to outPath unless compilation succeeds.
func compile(cfg boa.Config, inPath, outPath string, stdout io.Writer) (string, error) {
	unit, source, err := boa.CompileFile(inPath)
	if err != nil {
		return source, err
	}
	return source, output(cfg, unit, outPath, stdout)
}

// output renders unit, runs it when asked, and only then writes outPath, so
// a failed run leaves no file behind.
func output(cfg boa.Config, unit *boa.Unit, outPath string, stdout io.Writer) error {
	text, err := unit.Emit(cfg.Emit)
	if err != nil {
		return err
	}

	var result int64
	if cfg.Run {
		vm := boa.NewVM()
		if cfg.Trace {
			vm.Trace = traceWriter{}
		}
		if result, err = unit.Run(vm); err != nil {
			return err
		}
	}

	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	log.Infof("wrote %s output to %s", cfg.Emit, outPath)

	if cfg.Run {
		fmt.Fprintln(stdout, result)
	}
	return nil
}

// traceWriter forwards reference machine trace lines to the debug log.
type traceWriter struct{}

func (traceWriter) Write(p []byte) (int, error) {
	log.Debugf("%s", trimNewline(string(p)))
	return len(p), nil
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}

func reportError(w io.Writer, err error, source string, color bool) {
	msg := err.Error()
	var boaErr *boa.BoaError
	if errors.As(err, &boaErr) && source != "" {
		msg = boaErr.ShowSource(source)
	}
	if color {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(w, msg)
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case boa.ColorAlways:
		return true
	case boa.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

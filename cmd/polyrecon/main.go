package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vitalvas/polyrecon/config"
	"github.com/vitalvas/polyrecon/fraction"
	"github.com/vitalvas/polyrecon/lagrange"
	"github.com/vitalvas/polyrecon/polyformat"
	"github.com/vitalvas/polyrecon/shareinput"
	"github.com/vitalvas/polyrecon/xlogger"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

type flags struct {
	configFile string
	format     string
	workers    int
	permissive bool
	logLevel   string
	version    bool
	set        map[string]bool
	args       []string
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	fs := flag.NewFlagSet("polyrecon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: polyrecon [OPTION] [input.json]\n")
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}

	f := &flags{set: make(map[string]bool)}
	fs.StringVar(&f.configFile, "config", "", "YAML or JSON configuration file")
	fs.StringVar(&f.format, "format", config.FormatText, "output format: text or json")
	fs.IntVar(&f.workers, "workers", 1, "samples processed concurrently")
	fs.BoolVar(&f.permissive, "permissive", false, "ignore n/k metadata and use every sample")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&f.version, "v", false, "print version info and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
	f.args = fs.Args()

	return f, nil
}

// loadConfig layers flags over the configuration file and environment.
func loadConfig(f *flags) (config.Config, error) {
	var opts []config.Option
	if f.configFile != "" {
		opts = append(opts, config.WithFiles(f.configFile))
	}
	opts = append(opts, config.WithEnv(config.EnvPrefix))

	conf, err := config.Load(opts...)
	if err != nil {
		return config.Config{}, err
	}

	if f.set["format"] {
		conf.Format = f.format
	}
	if f.set["workers"] {
		conf.Workers = f.workers
	}
	if f.set["permissive"] {
		conf.Strict = !f.permissive
	}
	if f.set["log-level"] {
		conf.Logger.Level = f.logLevel
	}
	if len(f.args) > 0 {
		conf.Input = f.args[0]
	}

	if err := conf.Validate(); err != nil {
		return config.Config{}, err
	}

	return conf, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if f.version {
		fmt.Fprintf(stderr, "polyrecon %s\n", version)
		return 0
	}

	conf, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "polyrecon: %v\n", err)
		return 2
	}

	conf.Logger.Output = stderr
	logger := xlogger.New(conf.Logger)

	poly, err := reconstruct(ctx, conf, logger)
	if err != nil {
		logger.Error("reconstruction failed", "input", conf.Input, "kind", errorKind(err), "error", err)
		return 1
	}

	switch conf.Format {
	case config.FormatJSON:
		err = polyformat.JSON(stdout, poly)
	default:
		err = polyformat.Write(stdout, poly.Coefficients())
	}
	if err != nil {
		logger.Error("failed to write result", "error", err)
		return 1
	}

	return 0
}

func reconstruct(ctx context.Context, conf config.Config, logger *slog.Logger) (*lagrange.Polynomial, error) {
	in, err := shareinput.DecodeFile(conf.Input)
	if err != nil {
		return nil, err
	}

	samples, err := in.Samples(conf.Strict)
	if err != nil {
		return nil, err
	}

	points := make([]lagrange.Point, len(samples))
	for i, s := range samples {
		points[i] = s.Point
	}

	logger.Debug("decoded input",
		"input", conf.Input,
		"samples", in.Len(),
		"selected", len(points),
		"strict", conf.Strict,
	)

	poly, err := lagrange.InterpolateContext(ctx, points, lagrange.WithWorkers(conf.Workers))
	if err != nil {
		var dup *lagrange.DuplicateXError
		if errors.As(err, &dup) {
			return nil, fmt.Errorf("keys %q and %q decode to the same x: %w",
				samples[dup.First].Key, samples[dup.Second].Key, err)
		}
		return nil, err
	}

	if !poly.IsIntegral() {
		logger.Warn("polynomial has non-integer coefficients", "fingerprint", poly.Fingerprint())
	}

	logger.Info("polynomial reconstructed",
		"degree", poly.Degree(),
		"constant", poly.Constant().String(),
		"fingerprint", poly.Fingerprint(),
	)

	return poly, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, fraction.ErrDivideByZero):
		return "DivideByZero"
	case errors.Is(err, shareinput.ErrMalformedInput):
		return "MalformedInput"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Interrupted"
	case errors.Is(err, lagrange.ErrNoPoints):
		return "NoPoints"
	default:
		return "IO"
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/containerd/errdefs"
	"github.com/containerd/log"

	"github.com/MarcinKonowalczyk/bfir/bf"
	"github.com/MarcinKonowalczyk/bfir/config"
)

// comptime override for debug flag
// set with `-ldflags="-X 'main.debug=true'"`
var debug string

type options struct {
	filename   string
	configPath string
	format     string
	strategy   string
	debug      bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.G(ctx).WithError(err).Error("bfir failed")
		cancel()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errdefs.IsInvalidArgument(err) {
		return 1
	}
	return 2
}

func parseFlags(args []string) (options, error) {
	var opts options
	flagset := flag.NewFlagSet("bfir", flag.ContinueOnError)
	flagset.StringVar(&opts.filename, "file", "", "brainfuck source file, or - for stdin")
	flagset.StringVar(&opts.configPath, "config", "", "path to "+config.Filename)
	flagset.StringVar(&opts.format, "format", "", "output format: tree, source or cbor")
	flagset.StringVar(&opts.strategy, "strategy", "", "parse strategy: recursive or iterative")
	flagset.BoolVar(&opts.debug, "debug", debug != "", "enable debug logging")
	if err := flagset.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %w", errdefs.ErrInvalidArgument, err)
	}
	if opts.filename == "" {
		return opts, fmt.Errorf("-file is required: %w", errdefs.ErrInvalidArgument)
	}
	return opts, nil
}

// loadConfig merges the config file with command line overrides.
func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		var cwd string
		if cwd, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("getting current working directory: %w", err)
		}
		cfg, err = config.Find(cwd)
	}
	if err != nil {
		return nil, err
	}

	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.strategy != "" {
		cfg.Parse.Strategy = opts.strategy
	}
	if opts.debug {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

func configureLogging(cfg *config.Config) error {
	if err := log.SetLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("setting log level: %w", err)
	}
	if err := log.SetFormat(log.OutputFormat(cfg.Log.Format)); err != nil {
		return fmt.Errorf("setting log format: %w", err)
	}
	return nil
}

func readSource(filename string, stdin io.Reader) (string, error) {
	if filename == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := configureLogging(cfg); err != nil {
		return err
	}

	ctx = log.WithLogger(ctx, log.G(ctx).WithField("file", opts.filename))
	if cfg.Path != "" {
		log.G(ctx).WithField("config", cfg.Path).Debug("loaded config")
	}

	source, err := readSource(opts.filename, stdin)
	if err != nil {
		return err
	}

	strategy, err := bf.ParseStrategy(cfg.Parse.Strategy)
	if err != nil {
		return err
	}

	program, err := bf.Load(ctx, source, strategy)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", opts.filename, err)
	}

	return render(program, cfg.Output.Format, stdout)
}

func render(program bf.Program, format string, w io.Writer) error {
	switch format {
	case config.FormatTree:
		out := bf.Format(program)
		if out != "" {
			out += "\n"
		}
		_, err := io.WriteString(w, out)
		return err
	case config.FormatSource:
		source, err := bf.Source(program)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, source+"\n")
		return err
	case config.FormatCBOR:
		data, err := bf.Marshal(program)
		if err != nil {
			return fmt.Errorf("encoding program: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return errdefs.ErrNotImplemented.WithMessage("output format " + format)
	}
}

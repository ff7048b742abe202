package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docindex/internal/config"
	ferrors "git.home.luguber.info/inful/docindex/internal/foundation/errors"
	"git.home.luguber.info/inful/docindex/internal/index"
	"git.home.luguber.info/inful/docindex/internal/logfields"
	"git.home.luguber.info/inful/docindex/internal/metrics"
	"git.home.luguber.info/inful/docindex/internal/version"
)

// ExitUsage is returned for command-line usage errors.
const ExitUsage = 1

// Global carries state shared by all commands.
type Global struct {
	Stdout io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (optional)" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogLevel  string           `name:"log-level" help:"Log level: debug, info, warn, error (overrides the config file)"`
	LogFormat string           `name:"log-format" help:"Log format: text or json (overrides the config file)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate the index page for a directory (default command)"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the index page whenever the directory changes"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`

	logOut io.Writer
}

// AfterApply runs after flag parsing; install a logger from the flags alone.
// The config file may refine it once it has been loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(kctx *kong.Context) error {
	c.logOut = kctx.Stderr
	level := config.LogLevelInfo
	if l, err := config.NormalizeLogLevel(c.LogLevel); err == nil {
		level = l
	}
	format := config.LogFormatText
	if f, err := config.NormalizeLogFormat(c.LogFormat); err == nil {
		format = f
	}
	c.installLogger(level, format)
	return nil
}

func (c *CLI) installLogger(level config.LogLevel, format config.LogFormat) {
	slogLevel := level.SlogLevel()
	if c.Verbose {
		slogLevel = slog.LevelDebug
	}
	out := c.logOut
	if out == nil {
		out = io.Discard
	}
	opts := &slog.HandlerOptions{Level: slogLevel}

	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// LoadConfig loads the config file, applies global and command overrides,
// validates the result and reinstalls the logger accordingly.
func (c *CLI) LoadConfig(o *Overrides) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.LogLevel != "" {
		cfg.Logging.Level = config.LogLevel(c.LogLevel)
	}
	if c.LogFormat != "" {
		cfg.Logging.Format = config.LogFormat(c.LogFormat)
	}
	if o != nil {
		o.Apply(cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	c.installLogger(cfg.Logging.Level, cfg.Logging.Format)
	if c.Config != "" {
		slog.Debug("Loaded configuration", logfields.Path(c.Config))
	}
	return cfg, nil
}

// Overrides are the per-run settings that can be given on the command line.
type Overrides struct {
	Title       string `help:"Page title"`
	Layout      string `help:"Page layout: list or columns"`
	Columns     int    `help:"Number of columns for the columns layout"`
	Collation   string `help:"Title ordering: ordinal, or a BCP 47 language tag such as en or sv"`
	Stamp       bool   `help:"Stamp the page with today's date"`
	Date        string `help:"Stamp the page with this date (YYYY-MM-DD)"`
	Template    string `help:"Template file overriding the built-in layout" type:"path"`
	Intro       string `help:"Markdown file shown under the heading, relative to the root"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this file after each run" type:"path"`
}

// Apply copies every flag that was set onto cfg.
func (o *Overrides) Apply(cfg *config.Config) {
	if o.Title != "" {
		cfg.Title = o.Title
	}
	if o.Layout != "" {
		cfg.Layout = config.Layout(o.Layout)
	}
	if o.Columns != 0 {
		cfg.Columns = o.Columns
	}
	if o.Collation != "" {
		cfg.Collation = o.Collation
	}
	if o.Stamp {
		cfg.DateStamp = true
	}
	if o.Date != "" {
		cfg.Date = o.Date
	}
	if o.Template != "" {
		cfg.Template = o.Template
	}
	if o.Intro != "" {
		cfg.Intro = o.Intro
	}
	if o.MetricsFile != "" {
		cfg.MetricsFile = o.MetricsFile
	}
}

// newGenerator builds a generator, exporting metrics when a metrics file is configured.
func newGenerator(cfg *config.Config) *index.Generator {
	gen := index.NewGenerator(cfg)
	if cfg.MetricsFile != "" {
		gen = gen.WithRecorder(metrics.NewPrometheusRecorder(prom.NewRegistry()))
	}
	return gen
}

func logResult(result *index.Result) {
	slog.Info("Index generated",
		logfields.Output(result.OutputPath),
		logfields.Mode(string(result.Mode)),
		slog.Int("sections", result.Sections),
		slog.Int("entries", result.Entries),
		slog.Int("titled", result.Titled),
		slog.String("template", result.Template),
		logfields.Elapsed(result.Duration))
}

// exitPanic carries an exit code out of kong's parse loop.
type exitPanic int

// Main parses args, runs the selected command and returns the process exit code.
func Main(args []string, stdout, stderr io.Writer) (code int) {
	var cli CLI

	defer func() {
		if r := recover(); r != nil {
			ep, ok := r.(exitPanic)
			if !ok {
				panic(r)
			}
			code = int(ep)
		}
	}()

	exitCode := 0
	adapter := func(verbose bool) *ferrors.CLIErrorAdapter {
		return ferrors.NewCLIErrorAdapter(verbose, slog.Default()).
			WithStderr(stderr).
			WithExit(func(c int) { exitCode = c })
	}

	parser, err := kong.New(&cli,
		kong.Name("docindex"),
		kong.Description("Generate a static HTML index page for a directory of documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitPanic(c)) }),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		adapter(false).HandleError(ferrors.InternalError("invalid command-line definition").WithCause(err).Build())
		return exitCode
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		reportUsageError(parser, err, stderr)
		return ExitUsage
	}

	if err := kctx.Run(&Global{Stdout: stdout}, &cli); err != nil {
		adapter(cli.Verbose).HandleError(err)
	}
	return exitCode
}

// reportUsageError prints the parse error followed by the usage text.
func reportUsageError(parser *kong.Kong, err error, stderr io.Writer) {
	_, _ = fmt.Fprintf(stderr, "%s: error: %v\n", parser.Model.Name, err)

	var perr *kong.ParseError
	if errors.As(err, &perr) && perr.Context != nil {
		perr.Context.Stdout = stderr
		_ = perr.Context.PrintUsage(false)
		return
	}
	_, _ = fmt.Fprintln(stderr, "Run 'docindex --help' for usage.")
}

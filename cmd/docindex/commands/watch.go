package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docindex/internal/watch"
)

// stopSignals end watch mode.
var stopSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Root     string        `arg:"" name:"root" help:"Directory to index and watch"`
	Debounce time.Duration `help:"Quiet period after the last change before regenerating" default:"300ms"`

	Overrides `embed:""`
}

func (w *WatchCmd) Run(_ *Global, cli *CLI) error {
	cfg, err := cli.LoadConfig(&w.Overrides)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), stopSignals...)
	defer cancel()

	gen := newGenerator(cfg)
	var ignore []string
	if cfg.MetricsFile != "" {
		ignore = append(ignore, cfg.MetricsFile)
	}
	if cli.Config != "" {
		ignore = append(ignore, cli.Config)
	}

	watcher := watch.New(watch.Options{
		Root:             w.Root,
		OutputFile:       cfg.OutputFile,
		GeneratedSegment: cfg.GeneratedSegment,
		Ignore:           ignore,
		Debounce:         w.Debounce,
	}, func() error {
		result, err := gen.Generate(w.Root)
		if err != nil {
			return err
		}
		logResult(result)
		return nil
	})
	return watcher.Run(ctx)
}

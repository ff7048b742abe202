// Package index generates the HTML index page for a document tree.
//
// A run is a single synchronous pass: scan the tree for documents, enrich
// each one from its companion metadata, render the sections, and replace the
// output file atomically.
package index

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docindex/internal/config"
	"git.home.luguber.info/inful/docindex/internal/docmodel"
	"git.home.luguber.info/inful/docindex/internal/docs"
	derrors "git.home.luguber.info/inful/docindex/internal/docs/errors"
	ferrors "git.home.luguber.info/inful/docindex/internal/foundation/errors"
	"git.home.luguber.info/inful/docindex/internal/logfields"
	"git.home.luguber.info/inful/docindex/internal/markdown"
	"git.home.luguber.info/inful/docindex/internal/metadata"
	"git.home.luguber.info/inful/docindex/internal/metrics"
	"git.home.luguber.info/inful/docindex/internal/render"
)

// Result summarizes a completed run.
type Result struct {
	OutputPath string
	Mode       docs.Mode
	Sections   int
	Entries    int
	// Titled counts entries whose title came from metadata.
	Titled   int
	Template string
	Duration time.Duration
}

// textfileExporter is implemented by recorders that can render their values
// in the Prometheus text format.
type textfileExporter interface {
	Textfile() ([]byte, error)
}

// Generator produces the index page. It is not safe for concurrent use.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
	now      func() time.Time
}

// NewGenerator creates a generator for a validated configuration.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg, recorder: metrics.NoopRecorder{}, now: time.Now}
}

// WithRecorder sets the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// WithClock replaces the wall clock used for the date stamp.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	if now != nil {
		g.now = now
	}
	return g
}

// Generate runs the pipeline for root and writes the output file below it.
func (g *Generator) Generate(root string) (result *Result, err error) {
	start := time.Now()
	defer func() { g.finish(start, err) }()

	collator, err := docmodel.NewCollator(g.cfg.Collation)
	if err != nil {
		return nil, ferrors.ValidationError("invalid collation").
			WithCause(err).
			WithContext("field", "collation").
			Build()
	}

	opts := render.OptionsFromConfig(g.cfg)
	opts.Collator = collator
	renderer, err := render.New(opts)
	if err != nil {
		return nil, err
	}

	header, err := g.header(root)
	if err != nil {
		return nil, err
	}

	// Scan
	stageStart := time.Now()
	scanner := docs.NewScanner(docs.OptionsFromConfig(g.cfg))
	mode, sets, err := scanner.Discover(root)
	if err != nil {
		return nil, classifyScanError(root, err)
	}
	g.observeStage(metrics.StageScan, stageStart)

	// Enrich
	stageStart = time.Now()
	enricher := metadata.NewEnricher(root, metadata.OptionsFromConfig(g.cfg)).WithRecorder(g.recorder)
	sections := make([]docmodel.Section, 0, len(sets))
	titled := 0
	for _, set := range sets {
		entries := make([]docmodel.Entry, 0, len(set.Paths))
		for _, rel := range set.Paths {
			entry := enricher.Enrich(rel)
			if entry.HasTitle() {
				titled++
			}
			entries = append(entries, entry)
		}
		sections = append(sections, docmodel.Section{Header: set.Header, Entries: entries})
	}
	g.observeStage(metrics.StageEnrich, stageStart)

	// Render
	stageStart = time.Now()
	data, err := renderer.RenderBytes(sections, header)
	if err != nil {
		return nil, err
	}
	g.observeStage(metrics.StageRender, stageStart)

	// Write
	stageStart = time.Now()
	outputPath := filepath.Join(root, g.cfg.OutputFile)
	if err := render.WriteAtomic(outputPath, data); err != nil {
		return nil, ferrors.FileSystemError("failed to write index").
			WithCause(err).
			WithContext("output", outputPath).
			Build()
	}
	g.observeStage(metrics.StageWrite, stageStart)

	perSection := make(map[string]int, len(sections))
	for _, s := range sections {
		perSection[s.Header] = len(s.Entries)
	}
	g.recorder.ObserveSections(perSection)

	return &Result{
		OutputPath: outputPath,
		Mode:       mode,
		Sections:   len(sections),
		Entries:    docmodel.CountEntries(sections),
		Titled:     titled,
		Template:   renderer.Source(),
		Duration:   time.Since(start),
	}, nil
}

// header resolves the date stamp and the intro text.
func (g *Generator) header(root string) (render.Header, error) {
	var h render.Header
	if d, ok := g.cfg.StampDate(g.now()); ok {
		h.Date = d
	}
	if g.cfg.Intro == "" {
		return h, nil
	}

	introPath := g.cfg.Intro
	if !filepath.IsAbs(introPath) {
		introPath = filepath.Join(root, introPath)
	}
	// #nosec G304 -- the intro path is chosen by the operator.
	src, err := os.ReadFile(introPath)
	if err != nil {
		return h, ferrors.ConfigError("cannot read intro file").
			WithCause(err).
			WithContext("path", introPath).
			Build()
	}
	intro, err := markdown.NewRenderer().Render(src)
	if err != nil {
		return h, ferrors.RenderError("cannot render intro").
			WithCause(err).
			WithContext("path", introPath).
			Build()
	}
	h.Intro = intro
	return h, nil
}

func (g *Generator) observeStage(stage metrics.Stage, start time.Time) {
	elapsed := time.Since(start)
	g.recorder.ObserveStageDuration(stage, elapsed)
	slog.Debug("Stage completed", logfields.Stage(string(stage)), logfields.Elapsed(elapsed))
}

func (g *Generator) finish(start time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailed
	}
	g.recorder.ObserveRunDuration(time.Since(start))
	g.recorder.IncRunOutcome(outcome)

	if g.cfg.MetricsFile == "" {
		return
	}
	exporter, ok := g.recorder.(textfileExporter)
	if !ok {
		return
	}
	data, werr := exporter.Textfile()
	if werr == nil {
		werr = render.WriteAtomic(g.cfg.MetricsFile, data)
	}
	if werr != nil {
		slog.Warn("Failed to write metrics file", logfields.Path(g.cfg.MetricsFile), logfields.Error(werr))
	}
}

func classifyScanError(root string, err error) error {
	switch {
	case errors.Is(err, derrors.ErrRootNotFound), errors.Is(err, derrors.ErrRootNotDirectory):
		return ferrors.FileSystemError("invalid document root").
			WithCause(err).
			WithContext("root", root).
			Build()
	default:
		return ferrors.DocsError("failed to scan document tree").
			WithCause(err).
			WithContext("root", root).
			Build()
	}
}

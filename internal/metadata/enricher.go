// Package metadata resolves display titles and classifications from the
// companion metadata file that may sit next to each document.
package metadata

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/docindex/internal/config"
	"git.home.luguber.info/inful/docindex/internal/docmodel"
	ferrors "git.home.luguber.info/inful/docindex/internal/foundation/errors"
	"git.home.luguber.info/inful/docindex/internal/frontmatter"
	"git.home.luguber.info/inful/docindex/internal/logfields"
	"git.home.luguber.info/inful/docindex/internal/metrics"
)

const (
	keyTitle          = "title"
	keyClassification = "classification"
)

// Status describes the outcome of a companion lookup.
type Status string

const (
	// StatusFound means a header was parsed. It may still hold neither key.
	StatusFound Status = "found"
	// StatusMissing means no companion file exists.
	StatusMissing Status = "missing"
	// StatusAbsent means the companion has no header, or an empty one.
	StatusAbsent Status = "absent"
	// StatusMalformed means the companion could not be read or its header
	// could not be parsed.
	StatusMalformed Status = "malformed"
)

// Options names the extensions that pair documents with companions.
type Options struct {
	DocumentExtension string
	MetadataExtension string
}

// OptionsFromConfig extracts enricher options from the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DocumentExtension: cfg.DocumentExtension,
		MetadataExtension: cfg.MetadataExtension,
	}
}

// Enricher turns raw document paths into entries.
type Enricher struct {
	root     string
	opts     Options
	recorder metrics.Recorder
}

// NewEnricher creates an enricher for documents below root.
func NewEnricher(root string, opts Options) *Enricher {
	return &Enricher{root: root, opts: opts, recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (e *Enricher) WithRecorder(r metrics.Recorder) *Enricher {
	if r != nil {
		e.recorder = r
	}
	return e
}

// CompanionPath returns the companion metadata path for a slash separated
// document path: the document extension replaced by the metadata extension.
func CompanionPath(rel string, opts Options) string {
	base := rel
	if ext := path.Ext(rel); ext == opts.DocumentExtension {
		base = rel[:len(rel)-len(ext)]
	}
	return base + opts.MetadataExtension
}

// Enrich builds the entry for rel. Lookup problems never fail the entry; they
// leave the title and classification empty.
func (e *Enricher) Enrich(rel string) docmodel.Entry {
	entry, _ := e.Lookup(rel)
	return entry
}

// Lookup is Enrich that also reports how the companion lookup went.
func (e *Enricher) Lookup(rel string) (docmodel.Entry, Status) {
	entry := docmodel.Entry{Path: rel}
	companion := CompanionPath(rel, e.opts)

	fields, status, err := e.read(companion)
	e.recorder.IncMetadataResult(metrics.MetadataResult(status))

	switch status {
	case StatusMalformed:
		cerr := ferrors.MetadataError("unusable metadata header").
			WithCause(err).
			WithContext("file", companion).
			Build()
		slog.Warn("Ignoring companion metadata", logfields.File(rel), logfields.Metadata(companion), logfields.Error(cerr))
		return entry, status
	case StatusMissing:
		slog.Debug("No companion metadata", logfields.File(rel))
		return entry, status
	case StatusAbsent:
		slog.Debug("Companion metadata has no header", logfields.File(rel), logfields.Metadata(companion))
		return entry, status
	}

	entry.MetadataPath = companion
	entry.Title = fields[keyTitle]
	entry.Classification = fields[keyClassification]
	slog.Debug("Resolved companion metadata",
		logfields.File(rel),
		logfields.Metadata(companion),
		slog.Bool("titled", entry.HasTitle()),
		logfields.Classification(entry.Classification))
	return entry, status
}

func (e *Enricher) read(companion string) (map[string]string, Status, error) {
	content, err := os.ReadFile(filepath.Join(e.root, filepath.FromSlash(companion)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, StatusMissing, nil
		}
		return nil, StatusMalformed, err
	}

	header, _, had, err := frontmatter.Split(content)
	if err != nil {
		return nil, StatusMalformed, err
	}
	if !had || len(header) == 0 {
		return nil, StatusAbsent, nil
	}

	fields, err := frontmatter.ScalarFields(header)
	if err != nil {
		return nil, StatusMalformed, err
	}
	return fields, StatusFound, nil
}

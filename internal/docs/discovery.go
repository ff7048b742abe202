package docs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/docindex/internal/config"
	derrors "git.home.luguber.info/inful/docindex/internal/docs/errors"
	"git.home.luguber.info/inful/docindex/internal/logfields"
)

// Mode reports how the tree is split into sections.
type Mode string

const (
	// ModeFlat scans the whole tree as one section.
	ModeFlat Mode = "flat"
	// ModeSections scans each top-level subdirectory as its own section.
	ModeSections Mode = "sections"
)

// Options controls what the scanner treats as a document.
type Options struct {
	DocumentExtension string // e.g. ".html"
	OutputFile        string // never listed, at any depth
	GeneratedSegment  string // directories with this name are skipped
	SentinelFile      string // presence at the root selects ModeSections
	DefaultSection    string // header used in ModeFlat
}

// OptionsFromConfig extracts scanner options from the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DocumentExtension: cfg.DocumentExtension,
		OutputFile:        cfg.OutputFile,
		GeneratedSegment:  cfg.GeneratedSegment,
		SentinelFile:      cfg.SentinelFile,
		DefaultSection:    cfg.DefaultSection,
	}
}

// CandidateSet is the candidate documents of one section.
type CandidateSet struct {
	Header string
	Paths  []string // relative to the scan root, slash separated, sorted
}

// Scanner finds candidate documents below a root directory.
type Scanner struct {
	opts Options
}

// NewScanner creates a scanner.
func NewScanner(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// Mode checks the root for the ordering sentinel.
func (s *Scanner) Mode(root string) (Mode, error) {
	sentinel := filepath.Join(root, s.opts.SentinelFile)
	_, err := os.Stat(sentinel)
	if err == nil {
		slog.Debug("Found ordering sentinel", logfields.Path(sentinel))
		return ModeSections, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return ModeFlat, nil
	}
	return "", fmt.Errorf("%w: %w", derrors.ErrSentinelCheckFailed, err)
}

// Scan returns one candidate set per section, in section order. Sections
// without candidates are omitted, so an empty tree yields no sets.
func (s *Scanner) Scan(root string) ([]CandidateSet, error) {
	_, sets, err := s.Discover(root)
	return sets, err
}

// Discover is Scan that also reports the mode the sets were built in.
func (s *Scanner) Discover(root string) (Mode, []CandidateSet, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", derrors.ErrRootNotFound, root)
		}
		return "", nil, fmt.Errorf("%w: %s: %w", derrors.ErrWalkFailed, root, err)
	}
	if !info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", derrors.ErrRootNotDirectory, root)
	}

	mode, err := s.Mode(root)
	if err != nil {
		return "", nil, err
	}

	var sets []CandidateSet
	switch mode {
	case ModeSections:
		entries, err := os.ReadDir(root)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s: %w", derrors.ErrWalkFailed, root, err)
		}
		// os.ReadDir sorts by name.
		for _, entry := range entries {
			if !entry.IsDir() || entry.Name() == s.opts.GeneratedSegment {
				continue
			}
			paths, err := s.collect(filepath.Join(root, entry.Name()), root)
			if err != nil {
				return "", nil, err
			}
			if len(paths) == 0 {
				slog.Debug("Skipping section without documents", logfields.Section(entry.Name()))
				continue
			}
			sets = append(sets, CandidateSet{Header: entry.Name(), Paths: paths})
		}
	default:
		paths, err := s.collect(root, root)
		if err != nil {
			return "", nil, err
		}
		if len(paths) > 0 {
			sets = append(sets, CandidateSet{Header: s.opts.DefaultSection, Paths: paths})
		}
	}

	slog.Debug("Scan completed", logfields.Root(root), logfields.Mode(string(mode)), logfields.Count(len(sets)))
	return mode, sets, nil
}

// IsDocument reports whether a slash separated path relative to the root
// names a candidate document: right extension, not the output file, and not
// below a generated output directory.
func (s *Scanner) IsDocument(rel string) bool {
	dir, name := filepath.Split(filepath.FromSlash(rel))
	if !s.isDocumentName(name) {
		return false
	}
	for d := filepath.Clean(dir); d != "." && d != string(filepath.Separator); d = filepath.Dir(d) {
		if filepath.Base(d) == s.opts.GeneratedSegment {
			return false
		}
	}
	return true
}

func (s *Scanner) isDocumentName(name string) bool {
	return name != s.opts.OutputFile && filepath.Ext(name) == s.opts.DocumentExtension
}

// collect walks dir recursively and returns candidate paths relative to root.
func (s *Scanner) collect(dir, root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != dir && d.Name() == s.opts.GeneratedSegment {
				slog.Debug("Skipping generated output directory", logfields.Path(path))
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isDocumentName(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("%w: %w", derrors.ErrInvalidRelativePath, err)
		}
		rel = filepath.ToSlash(rel)
		paths = append(paths, rel)

		slog.Debug("Discovered document", logfields.File(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrWalkFailed, dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/docindex/internal/foundation/errors"
)

// DateLayout is the accepted format for a pinned date.
const DateLayout = "2006-01-02"

// Validate checks the configuration and canonicalizes enum fields in place.
func Validate(cfg *Config) error {
	layout, err := NormalizeLayout(string(cfg.Layout))
	if err != nil {
		return invalid("layout", err)
	}
	cfg.Layout = layout

	level, err := NormalizeLogLevel(string(cfg.Logging.Level))
	if err != nil {
		return invalid("logging.level", err)
	}
	cfg.Logging.Level = level

	format, err := NormalizeLogFormat(string(cfg.Logging.Format))
	if err != nil {
		return invalid("logging.format", err)
	}
	cfg.Logging.Format = format

	if cfg.Columns < 1 {
		return invalid("columns", fmt.Errorf("must be at least 1, got %d", cfg.Columns))
	}

	for field, ext := range map[string]string{
		"document_extension": cfg.DocumentExtension,
		"metadata_extension": cfg.MetadataExtension,
	} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			return invalid(field, fmt.Errorf("%q is not a file extension", ext))
		}
	}
	if strings.EqualFold(cfg.DocumentExtension, cfg.MetadataExtension) {
		return invalid("metadata_extension", fmt.Errorf("must differ from document_extension %q", cfg.DocumentExtension))
	}

	for field, name := range map[string]string{
		"output_file":       cfg.OutputFile,
		"sentinel_file":     cfg.SentinelFile,
		"generated_segment": cfg.GeneratedSegment,
	} {
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return invalid(field, fmt.Errorf("%q must be a plain file or directory name", name))
		}
	}

	if cfg.Collation != CollationOrdinal {
		if _, err := language.Parse(cfg.Collation); err != nil {
			return invalid("collation", fmt.Errorf("%q is neither %q nor a BCP 47 language tag: %w", cfg.Collation, CollationOrdinal, err))
		}
	}

	if cfg.Date != "" {
		if _, err := time.Parse(DateLayout, cfg.Date); err != nil {
			return invalid("date", fmt.Errorf("%q does not match YYYY-MM-DD", cfg.Date))
		}
	}

	return nil
}

// StampDate returns the date to print in the page header, if any. A pinned
// Date wins over the wall clock; without either the page carries no date.
func (c *Config) StampDate(now time.Time) (time.Time, bool) {
	if c.Date != "" {
		if d, err := time.Parse(DateLayout, c.Date); err == nil {
			return d, true
		}
	}
	if c.DateStamp {
		return now, true
	}
	return time.Time{}, false
}

func invalid(field string, cause error) error {
	return ferrors.ValidationError("invalid configuration value").
		WithCause(cause).
		WithContext("field", field).
		Build()
}

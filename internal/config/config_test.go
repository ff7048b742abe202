package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docindex/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docindex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, ".html", cfg.DocumentExtension)
	assert.Equal(t, ".mmd", cfg.MetadataExtension)
	assert.Equal(t, "index.html", cfg.OutputFile)
	assert.Equal(t, "auto", cfg.GeneratedSegment)
	assert.Equal(t, "index_order.txt", cfg.SentinelFile)
	assert.Equal(t, "Documents", cfg.DefaultSection)
	assert.Equal(t, LayoutList, cfg.Layout)
	assert.Equal(t, 2, cfg.Columns)
	assert.Equal(t, CollationOrdinal, cfg.Collation)
	assert.False(t, cfg.DateStamp)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	require.NoError(t, Validate(cfg))
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
title: Team handbook
layout: Columns
columns: 3
collation: de
date: "2024-03-05"
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "Team handbook", cfg.Title)
	assert.Equal(t, LayoutColumns, cfg.Layout)
	assert.Equal(t, 3, cfg.Columns)
	assert.Equal(t, "de", cfg.Collation)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	// Untouched fields keep their defaults.
	assert.Equal(t, "index.html", cfg.OutputFile)
}

func TestLoad_EmptyFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, cfg.Title)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = Load(writeConfig(t, "title: [unterminated\n"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = Load(writeConfig(t, "no_such_field: true\n"))
	require.Error(t, err, "unknown keys are rejected")
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"layout", func(c *Config) { c.Layout = "carousel" }, "layout"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"columns", func(c *Config) { c.Columns = -1 }, "columns"},
		{"document extension", func(c *Config) { c.DocumentExtension = "html" }, "document_extension"},
		{"metadata extension", func(c *Config) { c.MetadataExtension = "./md" }, "metadata_extension"},
		{"same extensions", func(c *Config) { c.MetadataExtension = ".HTML" }, "metadata_extension"},
		{"output file path", func(c *Config) { c.OutputFile = "out/index.html" }, "output_file"},
		{"generated segment", func(c *Config) { c.GeneratedSegment = ".." }, "generated_segment"},
		{"collation", func(c *Config) { c.Collation = "not a tag!" }, "collation"},
		{"date", func(c *Config) { c.Date = "March 5, 2024" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			classified, ok := ferrors.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, ferrors.CategoryValidation, classified.Category())
			assert.Equal(t, tt.field, classified.Context()["field"])
		})
	}
}

func TestValidate_NormalizesAliases(t *testing.T) {
	cfg := Default()
	cfg.Layout = " GRID "
	cfg.Logging.Level = "Warning"

	require.NoError(t, Validate(cfg))
	assert.Equal(t, LayoutColumns, cfg.Layout)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
}

func TestStampDate(t *testing.T) {
	now := time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

	cfg := Default()
	_, ok := cfg.StampDate(now)
	assert.False(t, ok, "no stamp by default keeps output reproducible")

	cfg.DateStamp = true
	got, ok := cfg.StampDate(now)
	require.True(t, ok)
	assert.Equal(t, now, got)

	cfg.DateStamp = false
	cfg.Date = "2024-03-05"
	got, ok = cfg.StampDate(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestLogLevel_SlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.SlogLevel().String())
	assert.Equal(t, "WARN", LogLevelWarn.SlogLevel().String())
	assert.Equal(t, "ERROR", LogLevelError.SlogLevel().String())
	assert.Equal(t, "INFO", LogLevel("bogus").SlogLevel().String())
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docindex.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	assert.True(t, cfg.DateStamp)
	assert.Equal(t, DefaultTitle, cfg.Title)

	err = Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	require.NoError(t, Init(path, true))
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docindex/internal/foundation/errors"
)

// Config represents the index generation configuration.
type Config struct {
	// Title is the page title and top-level heading.
	Title string `yaml:"title"`

	DocumentExtension string `yaml:"document_extension"`
	MetadataExtension string `yaml:"metadata_extension"`
	OutputFile        string `yaml:"output_file"`
	GeneratedSegment  string `yaml:"generated_segment"`
	SentinelFile      string `yaml:"sentinel_file"`
	DefaultSection    string `yaml:"default_section"`

	Layout  Layout `yaml:"layout"`
	Columns int    `yaml:"columns"`
	// Collation selects title ordering: "ordinal" or a BCP 47 language tag.
	Collation string `yaml:"collation"`

	// DateStamp stamps the page with the generation date. Date pins it (YYYY-MM-DD).
	DateStamp bool   `yaml:"date_stamp"`
	Date      string `yaml:"date,omitempty"`

	Template    string `yaml:"template,omitempty"`
	Intro       string `yaml:"intro,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from the specified file. An empty path yields the defaults.
// The result has defaults applied but is not validated; call Validate after
// applying any command-line overrides.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- path supplied by the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Init creates a new configuration file with the default settings spelled out.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.DateStamp = true

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal config").Fatal().Build()
	}

	// #nosec G306 -- config files are not secret
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return nil
}

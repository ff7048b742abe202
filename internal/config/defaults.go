package config

// Defaults reproduce the behaviour of a run without any configuration.
const (
	DefaultTitle             = "Documents index"
	DefaultDocumentExtension = ".html"
	DefaultMetadataExtension = ".mmd"
	DefaultOutputFile        = "index.html"
	DefaultGeneratedSegment  = "auto"
	DefaultSentinelFile      = "index_order.txt"
	DefaultSectionLabel      = "Documents"
	DefaultColumns           = 2
	CollationOrdinal         = "ordinal"
)

func applyDefaults(cfg *Config) {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.DocumentExtension == "" {
		cfg.DocumentExtension = DefaultDocumentExtension
	}
	if cfg.MetadataExtension == "" {
		cfg.MetadataExtension = DefaultMetadataExtension
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.GeneratedSegment == "" {
		cfg.GeneratedSegment = DefaultGeneratedSegment
	}
	if cfg.SentinelFile == "" {
		cfg.SentinelFile = DefaultSentinelFile
	}
	if cfg.DefaultSection == "" {
		cfg.DefaultSection = DefaultSectionLabel
	}
	if cfg.Layout == "" {
		cfg.Layout = LayoutList
	}
	if cfg.Columns == 0 {
		cfg.Columns = DefaultColumns
	}
	if cfg.Collation == "" {
		cfg.Collation = CollationOrdinal
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

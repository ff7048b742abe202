package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRoot           = "root"
	KeyPath           = "path"
	KeyFile           = "file"
	KeyOutput         = "output"
	KeySection        = "section"
	KeyCount          = "count"
	KeyStage          = "stage"
	KeyDurationMS     = "duration_ms"
	KeyMode           = "mode"
	KeyLayout         = "layout"
	KeyMetadata       = "metadata"
	KeyClassification = "classification"
	KeyEvent          = "event"
	KeyError          = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Root(p string) slog.Attr { return slog.String(KeyRoot, p) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func File(f string) slog.Attr { return slog.String(KeyFile, f) }
func Output(p string) slog.Attr { return slog.String(KeyOutput, p) }
func Section(s string) slog.Attr { return slog.String(KeySection, s) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Mode(m string) slog.Attr { return slog.String(KeyMode, m) }
func Layout(l string) slog.Attr { return slog.String(KeyLayout, l) }
func Metadata(p string) slog.Attr { return slog.String(KeyMetadata, p) }
func Classification(c string) slog.Attr { return slog.String(KeyClassification, c) }
func Event(op string) slog.Attr { return slog.String(KeyEvent, op) }
func Elapsed(d time.Duration) slog.Attr { return DurationMS(float64(d.Microseconds()) / 1000) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

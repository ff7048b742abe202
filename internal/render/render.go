// Package render turns sections of entries into the HTML index page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docindex/internal/config"
	"git.home.luguber.info/inful/docindex/internal/docmodel"
	ferrors "git.home.luguber.info/inful/docindex/internal/foundation/errors"
	"git.home.luguber.info/inful/docindex/internal/logfields"
)

// DateFormat is the layout of the date stamp shown under the title.
const DateFormat = "January 02, 2006"

const (
	partialsFile  = "templates/partials.tmpl"
	layoutName    = "layout"
	sourceDefault = "embedded"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Page is the data every layout template receives.
type Page struct {
	Title string
	// Date is the formatted stamp; empty when no stamp was requested.
	Date string
	// DateTime is the same day in YYYY-MM-DD form for the time element.
	DateTime string
	Intro    template.HTML
	Sections []docmodel.Section
	// Columns holds the sections dealt round-robin across columns. It is
	// only populated for the columns layout.
	Columns    [][]docmodel.Section
	EntryCount int
}

// Header carries the per-run content shown above the sections.
type Header struct {
	// Date is the stamp day. The zero time means no stamp.
	Date  time.Time
	Intro template.HTML
}

// Options controls page rendering.
type Options struct {
	Title   string
	Layout  config.Layout
	Columns int
	// Template is a file overriding the embedded layout. Empty uses the
	// embedded one.
	Template string
	Collator docmodel.Collator
}

// OptionsFromConfig extracts renderer options from the configuration. The
// collator is not part of the configuration values and must be set by the
// caller.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Title:    cfg.Title,
		Layout:   cfg.Layout,
		Columns:  cfg.Columns,
		Template: cfg.Template,
	}
}

// Renderer executes the page template.
type Renderer struct {
	opts   Options
	tpl    *template.Template
	source string
}

// New parses the layout template. An override file that cannot be read or
// parsed is a configuration error.
func New(opts Options) (*Renderer, error) {
	if opts.Columns < 1 {
		opts.Columns = 1
	}
	if opts.Layout == "" {
		opts.Layout = config.LayoutList
	}

	body, source, err := layoutBody(opts)
	if err != nil {
		return nil, err
	}

	tpl, err := template.New("index").Funcs(template.FuncMap{"href": Href}).ParseFS(embeddedTemplates, partialsFile)
	if err != nil {
		panic(fmt.Sprintf("embedded partial templates are invalid: %v", err))
	}
	if _, err := tpl.New(layoutName).Parse(body); err != nil {
		return nil, ferrors.ConfigError("invalid page template").
			WithCause(err).
			WithContext("template", source).
			Build()
	}

	slog.Debug("Loaded page template", logfields.Layout(string(opts.Layout)), slog.String("source", source))
	return &Renderer{opts: opts, tpl: tpl, source: source}, nil
}

// layoutBody returns the override file's content, or the embedded layout.
func layoutBody(opts Options) (string, string, error) {
	if opts.Template != "" {
		// #nosec G304 -- the template path is chosen by the operator.
		b, err := os.ReadFile(opts.Template)
		if err != nil {
			return "", "", ferrors.ConfigError("cannot read page template").
				WithCause(err).
				WithContext("template", opts.Template).
				Build()
		}
		return string(b), opts.Template, nil
	}

	name := fmt.Sprintf("templates/%s.tmpl", opts.Layout)
	b, err := embeddedTemplates.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("embedded default template missing for layout %s: %v", opts.Layout, err))
	}
	return string(b), sourceDefault + ":" + string(opts.Layout), nil
}

// Source names where the layout came from: "embedded:<layout>" or the
// override file path.
func (r *Renderer) Source() string {
	return r.source
}

// Page builds the template data. Each section's entries are sorted with the
// configured collator; section order is kept.
func (r *Renderer) Page(sections []docmodel.Section, h Header) Page {
	sorted := make([]docmodel.Section, 0, len(sections))
	for _, s := range sections {
		sorted = append(sorted, docmodel.NewSection(s.Header, s.Entries, r.opts.Collator))
	}

	page := Page{
		Title:      r.opts.Title,
		Intro:      h.Intro,
		Sections:   sorted,
		EntryCount: docmodel.CountEntries(sorted),
	}
	if !h.Date.IsZero() {
		page.Date = h.Date.Format(DateFormat)
		page.DateTime = h.Date.Format(config.DateLayout)
	}
	if r.opts.Layout == config.LayoutColumns {
		page.Columns = SplitColumns(sorted, r.opts.Columns)
	}
	return page
}

// Render writes the page for sections to w.
func (r *Renderer) Render(w io.Writer, sections []docmodel.Section, h Header) error {
	if err := r.tpl.ExecuteTemplate(w, layoutName, r.Page(sections, h)); err != nil {
		return ferrors.RenderError("execute page template").
			WithCause(err).
			WithContext("template", r.source).
			Build()
	}
	return nil
}

// RenderBytes renders into memory.
func (r *Renderer) RenderBytes(sections []docmodel.Section, h Header) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, sections, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SplitColumns deals sections round-robin into at most n columns, in section
// order. No column is empty.
func SplitColumns(sections []docmodel.Section, n int) [][]docmodel.Section {
	if n < 1 {
		n = 1
	}
	if n > len(sections) {
		n = len(sections)
	}
	columns := make([][]docmodel.Section, n)
	for i, s := range sections {
		columns[i%n] = append(columns[i%n], s)
	}
	return columns
}

// Href turns a slash separated relative path into a link target. Characters
// that are not valid in a URL path are percent-encoded, and a leading segment
// containing a colon is prefixed with "./" so it cannot read as a scheme.
func Href(rel string) string {
	return (&url.URL{Path: filepath.ToSlash(rel)}).String()
}

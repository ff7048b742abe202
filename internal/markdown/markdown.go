// Package markdown renders the optional intro text shown under the index heading.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// maxHeadingLevel is the deepest heading HTML supports.
const maxHeadingLevel = 6

// Renderer converts Markdown to HTML fragments.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer with GitHub flavoured Markdown enabled.
// Raw HTML in the source is not passed through.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(headingDemoter{}, 100)),
		),
	)
	return &Renderer{md: md}
}

// Render converts src to an HTML fragment. Headings are shifted down one level
// so the intro never competes with the page's own h1.
func (r *Renderer) Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	// #nosec G203 -- goldmark escapes text and drops raw HTML without html.WithUnsafe.
	return template.HTML(buf.String()), nil
}

type headingDemoter struct{}

func (headingDemoter) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok && h.Level < maxHeadingLevel {
			h.Level++
		}
		return gmast.WalkContinue, nil
	})
}

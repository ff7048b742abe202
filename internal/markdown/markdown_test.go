package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		src      string
		contains []string
		excludes []string
	}{
		{
			name:     "paragraph with emphasis",
			src:      "Hello *world*",
			contains: []string{"<p>Hello <em>world</em></p>"},
		},
		{
			name:     "headings are demoted",
			src:      "# Title\n\n###### Deep\n",
			contains: []string{"<h2", "Title</h2>", "<h6", "Deep</h6>"},
			excludes: []string{"<h1"},
		},
		{
			name:     "raw html is dropped",
			src:      "before\n\n<script>alert(1)</script>\n\nafter",
			contains: []string{"<p>before</p>", "<p>after</p>"},
			excludes: []string{"<script>"},
		},
		{
			name:     "gfm tables",
			src:      "| a | b |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "links are kept",
			src:      "See [the guide](guide/intro.html).",
			contains: []string{`<a href="guide/intro.html">the guide</a>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render([]byte(tt.src))
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, string(out), want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, string(out), unwanted)
			}
		})
	}
}

func TestRender_Empty(t *testing.T) {
	out, err := NewRenderer().Render(nil)
	require.NoError(t, err)
	assert.Empty(t, string(out))
}

package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Foo\nclassification: internal\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "title: Foo\nclassification: internal\n", string(fm))
	require.Equal(t, "# Title\n", string(body))
}

func TestSplit_DocumentEndMarkerTerminates(t *testing.T) {
	input := []byte("---\ntitle: Foo\n...\nbody\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "title: Foo\n", string(fm))
	require.Equal(t, "body\n", string(body))
}

func TestSplit_ClosingDelimiterAtEOFWithoutNewline(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: Foo\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "title: Foo\n", string(fm))
	require.Empty(t, body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	cases := []string{
		"---\nkey: value\n# Title\n",
		"---\n",
		"---",
	}

	for _, input := range cases {
		_, _, had, err := Split([]byte(input))
		require.Error(t, err, "input %q", input)
		require.False(t, had)
		require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
	}
}

func TestSplit_DelimiterMustBeWholeLine(t *testing.T) {
	cases := []string{
		"----\ntitle: Foo\n---\n",
		"\n---\ntitle: Foo\n---\n",
		"text\n---\ntitle: Foo\n---\n",
	}

	for _, input := range cases {
		_, body, had, err := Split([]byte(input))
		require.NoError(t, err, "input %q", input)
		require.False(t, had, "input %q", input)
		require.Equal(t, input, string(body))
	}
}

func TestSplit_TrailingWhitespaceAfterMarkers(t *testing.T) {
	fm, body, had, err := Split([]byte("--- \t\ntitle: Foo\n---  \r\nbody\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "title: Foo\n", string(fm))
	require.Equal(t, "body\n", string(body))

	fm, _, had, err = Split([]byte("---\ntitle: Bar\n... \n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "title: Bar\n", string(fm))
}

func TestSplit_IndentedMarkerDoesNotClose(t *testing.T) {
	_, _, _, err := Split([]byte("---\ntitle: Foo\n  ---\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_ByteOrderMarkIsIgnored(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("---\ntitle: Foo\n---\n")...)

	fm, _, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "title: Foo\n", string(fm))
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestScalarFields_ReturnsScalarsAsWritten(t *testing.T) {
	fm := []byte("title: abc\nversion: 1.10\ndate: 2024-01-02\ndraft: true\ntags:\n  - one\nowner:\n  name: x\nempty:\nnull: ~\nblank: '  '\n")

	fields, err := ScalarFields(fm)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"title":   "abc",
		"version": "1.10",
		"date":    "2024-01-02",
		"draft":   "true",
	}, fields)
}

func TestScalarFields_ResolvesAliases(t *testing.T) {
	fields, err := ScalarFields([]byte("base: &name Shared\ntitle: *name\n"))
	require.NoError(t, err)
	require.Equal(t, "Shared", fields["title"])
}

func TestScalarFields_TrimsValues(t *testing.T) {
	fields, err := ScalarFields([]byte("title: \"  Padded  \"\n"))
	require.NoError(t, err)
	require.Equal(t, "Padded", fields["title"])
}

func TestScalarFields_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ScalarFields(nil)
	require.NoError(t, err)
	require.Empty(t, fields)

	fields, err = ScalarFields([]byte("  \n"))
	require.NoError(t, err)
	require.Empty(t, fields)

	fields, err = ScalarFields([]byte("# only a comment\n"))
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestScalarFields_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ScalarFields([]byte("title: [unclosed\n"))
	require.Error(t, err)
}

func TestScalarFields_NonMapping_ReturnsError(t *testing.T) {
	_, err := ScalarFields([]byte("- a\n- b\n"))
	require.ErrorIs(t, err, ErrNotMapping)

	_, err = ScalarFields([]byte("just a string\n"))
	require.ErrorIs(t, err, ErrNotMapping)
}

func TestScalarFields_RepeatedKeyKeepsLastValue(t *testing.T) {
	fields, err := ScalarFields([]byte("title: Draft\nclassification: internal\ntitle: Final\n"))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"title": "Final", "classification": "internal"}, fields)

	fields, err = ScalarFields([]byte("title: Draft\ntitle: [a, b]\n"))
	require.NoError(t, err)
	require.Empty(t, fields)
}

package frontmatter

import (
	"bytes"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	openDelimiter = "---"
	endDelimiter  = "..."
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Split separates a YAML header block from the rest of a document.
//
// The block must start on the first line with a line that is `---` and ends
// at the next line that is `---` or `...` (the YAML document end marker).
// Trailing spaces and tabs after a marker are allowed. Both LF and CRLF line
// endings are accepted and a leading UTF-8 byte order mark is ignored.
//
// If the document does not start with the opening delimiter, had is false and
// body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	first, rest := nextLine(content)
	if trimMarker(first) != openDelimiter {
		return nil, content, false, nil
	}

	offset := 0
	for remaining := rest; len(remaining) > 0; {
		line, next := nextLine(remaining)
		if line = trimMarker(line); line == openDelimiter || line == endDelimiter {
			return rest[:offset], next, true, nil
		}
		offset += len(remaining) - len(next)
		remaining = next
	}

	return nil, nil, false, ErrMissingClosingDelimiter
}

// ScalarFields parses raw YAML frontmatter (without delimiters) and returns
// the top-level keys whose values are non-null scalars, as written in the
// source. Sequences, mappings and null values are left out, as are values
// that are blank after trimming. A repeated key takes its last value.
//
// An empty block yields an empty map. A block that is valid YAML but not a
// mapping is an error.
func ScalarFields(frontmatter []byte) (map[string]string, error) {
	fields := map[string]string{}
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return fields, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(frontmatter, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return fields, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		delete(fields, key)

		if value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}
		if value.Kind != yaml.ScalarNode || value.ShortTag() == "!!null" {
			continue
		}
		if v := strings.TrimSpace(value.Value); v != "" {
			fields[key] = v
		}
	}
	return fields, nil
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrNotMapping indicates the frontmatter parsed but is not a key/value mapping.
var ErrNotMapping = errors.New("yaml frontmatter is not a mapping")

func trimMarker(line string) string {
	return strings.TrimRight(line, " \t")
}

// nextLine returns the first line of b without its line terminator, and the
// remainder after the terminator.
func nextLine(b []byte) (string, []byte) {
	idx := bytes.IndexByte(b, '\n')
	if idx < 0 {
		return string(bytes.TrimSuffix(b, []byte("\r"))), b[len(b):]
	}
	return string(bytes.TrimSuffix(b[:idx], []byte("\r"))), b[idx+1:]
}

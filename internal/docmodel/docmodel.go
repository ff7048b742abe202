// Package docmodel holds the values that flow from the scanner through the
// enricher to the renderer.
package docmodel

// Entry is one listed document.
type Entry struct {
	// Path is relative to the scanned root and always uses forward slashes.
	Path string
	// MetadataPath is the companion file that metadata was read from,
	// relative to the root. Empty when no metadata was found.
	MetadataPath   string
	Title          string
	Classification string
}

// HasTitle reports whether a title was resolved from metadata.
func (e Entry) HasTitle() bool {
	return e.Title != ""
}

// DisplayText is the link text: the title, or the path when there is none.
func (e Entry) DisplayText() string {
	if e.HasTitle() {
		return e.Title
	}
	return e.Path
}

// Section is a named group of entries.
type Section struct {
	Header  string
	Entries []Entry
}

// NewSection builds a section whose entries are sorted with c.
// The input slice is not modified.
func NewSection(header string, entries []Entry, c Collator) Section {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	SortEntries(sorted, c)
	return Section{Header: header, Entries: sorted}
}

// CountEntries returns the number of entries across sections.
func CountEntries(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Entries)
	}
	return n
}

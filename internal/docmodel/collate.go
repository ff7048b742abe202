package docmodel

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ordinal is the collation name for byte-wise, case-sensitive comparison.
const Ordinal = "ordinal"

// Collator orders titles.
type Collator interface {
	Compare(a, b string) int
	Name() string
}

type ordinalCollator struct{}

func (ordinalCollator) Compare(a, b string) int { return strings.Compare(a, b) }
func (ordinalCollator) Name() string            { return Ordinal }

// localeCollator wraps a language-specific collator. Not safe for concurrent use.
type localeCollator struct {
	tag language.Tag
	c   *collate.Collator
}

func (l *localeCollator) Compare(a, b string) int { return l.c.CompareString(a, b) }
func (l *localeCollator) Name() string            { return l.tag.String() }

// NewCollator returns the ordinal collator for "" or "ordinal", and a
// locale-aware collator for any other BCP 47 tag.
func NewCollator(name string) (Collator, error) {
	if name == "" || strings.EqualFold(name, Ordinal) {
		return ordinalCollator{}, nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("parse collation %q: %w", name, err)
	}
	return &localeCollator{tag: tag, c: collate.New(tag)}, nil
}

// SortEntries orders entries in place: titled before untitled, titles by c,
// and remaining ties by title bytes then path so the order is total.
func SortEntries(entries []Entry, c Collator) {
	if c == nil {
		c = ordinalCollator{}
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.HasTitle() != b.HasTitle() {
			if a.HasTitle() {
				return -1
			}
			return 1
		}
		if a.HasTitle() {
			if r := c.Compare(a.Title, b.Title); r != 0 {
				return r
			}
			if r := strings.Compare(a.Title, b.Title); r != 0 {
				return r
			}
		}
		return strings.Compare(a.Path, b.Path)
	})
}

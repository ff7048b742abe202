package config

import "git.home.luguber.info/inful/docindex/internal/foundation/normalization"

// Layout selects how sections are arranged on the page.
type Layout string

const (
	// LayoutList renders every section in one flowing column.
	LayoutList Layout = "list"
	// LayoutColumns splits sections across parallel columns.
	LayoutColumns Layout = "columns"
)

var layoutNormalizer = normalization.NewNormalizer(map[string]Layout{
	"list":    LayoutList,
	"flat":    LayoutList,
	"columns": LayoutColumns,
	"grid":    LayoutColumns,
}, LayoutList)

// NormalizeLayout resolves a user supplied layout name, rejecting unknown names.
func NormalizeLayout(raw string) (Layout, error) {
	return layoutNormalizer.NormalizeWithError(raw)
}

package catalog

import (
	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/text"
)

// Derive computes the visible recipe list from the full catalog and
// the active filters. Pure function: the catalog slice is never
// mutated and output preserves its order.
//
// The text predicate is a case-insensitive substring match against the
// title; the category predicate is exact equality. Empty inputs match
// everything. Both predicates must hold.
func Derive(catalog []domain.Recipe, searchTerm, selectedCategory string) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(catalog))
	for _, r := range catalog {
		if !text.ContainsFold(r.Title, searchTerm) {
			continue
		}
		if selectedCategory != "" && r.Category != selectedCategory {
			continue
		}
		out = append(out, r)
	}
	return out
}

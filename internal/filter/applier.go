// internal/filter/applier.go
package filter

import "storefront-filters/internal/models"

// applyOrder fixes the sequence filters are applied in. Intersection is
// commutative, so the order only makes short-circuiting deterministic.
var applyOrder = []models.FacetKind{
	models.FacetKindItem,
	models.FacetKindRange,
	models.FacetKindPrice,
	models.FacetKindStock,
}

// Apply reduces the universe to the final filtered product set by applying
// every active facet, aborting the instant the running set empties. An
// empty result is a valid, silently produced outcome.
func Apply(universe Set, defs []Definition, sel Selection, ix *Index, markup float64) Set {
	run := universe
	for _, kind := range applyOrder {
		for _, def := range defs {
			if def.Kind != kind || !sel.active(def) {
				continue
			}
			run = matchSet(run, ix, def, sel, markup)
			if len(run) == 0 {
				return run
			}
		}
	}
	return run
}

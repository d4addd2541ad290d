// internal/filter/match.go
package filter

import "storefront-filters/internal/models"

// matchSet reduces candidates to the products matching one active facet.
// The stock facet matches stock > 0 and only applies in its default state;
// the price facet compares the displayed price, i.e. the stored price with
// the markup factor applied.
func matchSet(candidates Set, ix *Index, def Definition, sel Selection, markup float64) Set {
	out := make(Set, len(candidates))
	switch def.Kind {
	case models.FacetKindItem:
		tokens := sel.Items[def.GroupID]
		for id := range candidates {
			if v, ok := ix.value(def.GroupID, id); ok {
				if _, hit := tokens[v.Token]; hit {
					out[id] = struct{}{}
				}
			}
		}
	case models.FacetKindRange:
		r := sel.Ranges[def.GroupID]
		for id := range candidates {
			if v, ok := ix.value(def.GroupID, id); ok && v.Num != nil && r.Contains(*v.Num) {
				out[id] = struct{}{}
			}
		}
	case models.FacetKindPrice:
		for id := range candidates {
			if sel.Price.Contains(ix.Prices[id] * markup) {
				out[id] = struct{}{}
			}
		}
	case models.FacetKindStock:
		for id := range candidates {
			if ix.Stock[id] > 0 {
				out[id] = struct{}{}
			}
		}
	}
	return out
}

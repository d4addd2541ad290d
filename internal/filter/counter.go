// internal/filter/counter.go
package filter

// CandidateSets computes, for every facet, the product subset obtained by
// applying every *other* active facet. Counts rendered against that set
// answer "what would remain if I added this option", so a facet's own
// selection never shrinks its own option counts.
//
// This is O(facets²) set intersections over the universe per request;
// listings are bounded, so no caching or incremental maintenance is done.
func CandidateSets(universe Set, defs []Definition, sel Selection, ix *Index, markup float64) map[string]Set {
	sets := make(map[string]Set, len(defs))
	for _, def := range defs {
		run := universe
		for _, other := range defs {
			if other.Key == def.Key || !sel.active(other) {
				continue
			}
			run = matchSet(run, ix, other, sel, markup)
			if len(run) == 0 {
				break
			}
		}
		sets[def.Key] = run
	}
	return sets
}

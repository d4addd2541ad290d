// internal/filter/builder.go
package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"storefront-filters/internal/models"
)

// BuildFacets renders the facet view-models from the per-facet candidate
// sets. Item options carry per-value product counts and are sorted
// alphabetically, or ascending numerically for checkbox-numeric facets.
// A facet with no options, or a range facet with no derivable min/max,
// is omitted.
func BuildFacets(defs []Definition, cands map[string]Set, sel Selection, ix *Index, markup float64) []models.Facet {
	facets := make([]models.Facet, 0, len(defs))
	for _, def := range defs {
		candidates := cands[def.Key]
		var facet models.Facet
		var ok bool
		switch def.Kind {
		case models.FacetKindItem:
			facet, ok = buildItemFacet(def, candidates, sel, ix)
		case models.FacetKindRange:
			facet, ok = buildRangeFacet(def, candidates, sel, ix)
		case models.FacetKindPrice:
			facet, ok = buildPriceFacet(def, candidates, sel, ix, markup)
		case models.FacetKindStock:
			facet, ok = buildStockFacet(def, candidates, sel, ix)
		}
		if ok {
			facets = append(facets, facet)
		}
	}
	return facets
}

func buildItemFacet(def Definition, candidates Set, sel Selection, ix *Index) (models.Facet, bool) {
	counts := make(map[string]*models.FacetOption)
	for id := range candidates {
		v, ok := ix.value(def.GroupID, id)
		if !ok {
			continue
		}
		opt := counts[v.Token]
		if opt == nil {
			opt = &models.FacetOption{Value: v.Token, Label: v.Label}
			counts[v.Token] = opt
		}
		opt.Count++
	}
	if len(counts) == 0 {
		return models.Facet{}, false
	}

	active := sel.ItemTokens(def.GroupID)
	options := lo.MapToSlice(counts, func(token string, opt *models.FacetOption) models.FacetOption {
		_, opt.Active = active[token]
		return *opt
	})
	if def.Checkbox {
		sort.Slice(options, func(i, j int) bool {
			a, _ := strconv.ParseFloat(options[i].Value, 64)
			b, _ := strconv.ParseFloat(options[j].Value, 64)
			return a < b
		})
	} else {
		sort.Slice(options, func(i, j int) bool {
			return strings.ToLower(options[i].Label) < strings.ToLower(options[j].Label)
		})
	}

	return models.Facet{
		Key:     def.Key,
		Label:   def.Label,
		Kind:    models.FacetKindItem,
		Unit:    def.Unit,
		Options: options,
	}, true
}

func buildRangeFacet(def Definition, candidates Set, sel Selection, ix *Index) (models.Facet, bool) {
	var min, max *float64
	for id := range candidates {
		v, ok := ix.value(def.GroupID, id)
		if !ok || v.Num == nil {
			continue
		}
		min, max = widen(min, max, *v.Num)
	}
	if min == nil {
		return models.Facet{}, false
	}
	active := sel.Ranges[def.GroupID]
	return models.Facet{
		Key:       def.Key,
		Label:     def.Label,
		Kind:      models.FacetKindRange,
		Unit:      def.Unit,
		Min:       min,
		Max:       max,
		ActiveMin: active.Min,
		ActiveMax: active.Max,
	}, true
}

func buildPriceFacet(def Definition, candidates Set, sel Selection, ix *Index, markup float64) (models.Facet, bool) {
	var min, max *float64
	for id := range candidates {
		min, max = widen(min, max, ix.Prices[id]*markup)
	}
	if min == nil {
		return models.Facet{}, false
	}
	return models.Facet{
		Key:       def.Key,
		Label:     def.Label,
		Kind:      models.FacetKindPrice,
		Min:       min,
		Max:       max,
		ActiveMin: sel.Price.Min,
		ActiveMax: sel.Price.Max,
	}, true
}

func buildStockFacet(def Definition, candidates Set, sel Selection, ix *Index) (models.Facet, bool) {
	inStock := 0
	for id := range candidates {
		if ix.Stock[id] > 0 {
			inStock++
		}
	}
	if inStock == 0 {
		return models.Facet{}, false
	}
	return models.Facet{
		Key:   def.Key,
		Label: def.Label,
		Kind:  models.FacetKindStock,
		Options: []models.FacetOption{
			{Value: "1", Label: def.Label, Count: inStock, Active: !sel.ShowAll},
		},
	}, true
}

func widen(min, max *float64, v float64) (*float64, *float64) {
	value := v
	if min == nil || v < *min {
		min = &value
	}
	if max == nil || v > *max {
		max = &value
	}
	return min, max
}

// internal/filter/definition.go
package filter

import (
	"sort"
	"strconv"

	"storefront-filters/internal/models"
	"storefront-filters/pkg/filterconfig"
)

// Facet keys of the two fixed facets appended after all parameter facets.
const (
	KeyStock = "stock"
	KeyPrice = "price"
)

// Definition is one resolved facet, not yet populated with counts.
type Definition struct {
	Key      string
	GroupID  int64 // zero for the stock and price facets
	Label    string
	Kind     models.FacetKind
	Unit     string
	Checkbox bool // numeric group rendered as a discrete value list
}

// GroupKey returns the request-parameter key for a parameter group.
func GroupKey(groupID int64) string {
	return "f" + strconv.FormatInt(groupID, 10)
}

// ResolveDefinitions derives the ordered facet definitions for a category
// from its filter configuration. Parameter facets come first, ascending by
// configured sort value (ties keep declaration order), followed by the
// stock toggle and the price range. Entries referencing unknown groups or
// free-text groups are skipped; a nil config yields just stock and price.
func ResolveDefinitions(doc *filterconfig.Document, groups map[int64]models.ParameterGroup) []Definition {
	var entries []filterconfig.Entry
	if doc != nil {
		entries = append(entries, doc.Filters...)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Sort < entries[j].Sort })

	defs := make([]Definition, 0, len(entries)+2)
	for _, e := range entries {
		group, ok := groups[e.GroupID]
		if !ok {
			continue
		}
		def := Definition{
			Key:     GroupKey(group.ID),
			GroupID: group.ID,
			Label:   group.Name,
			Unit:    group.Unit,
		}
		switch group.Kind {
		case models.GroupKindItem:
			def.Kind = models.FacetKindItem
		case models.GroupKindNumeric:
			if e.Display == filterconfig.DisplayCheckbox {
				def.Kind = models.FacetKindItem
				def.Checkbox = true
			} else {
				def.Kind = models.FacetKindRange
			}
		default:
			// free text is not filterable
			continue
		}
		defs = append(defs, def)
	}

	defs = append(defs,
		Definition{Key: KeyStock, Label: "In stock only", Kind: models.FacetKindStock},
		Definition{Key: KeyPrice, Label: "Price", Kind: models.FacetKindPrice},
	)
	return defs
}

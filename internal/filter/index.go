// internal/filter/index.go
package filter

import (
	"strconv"

	"storefront-filters/internal/models"
)

// Value is the canonical per-product value of one parameter group.
type Value struct {
	Token string   // option token: enumerated-item ID or numeric literal
	Label string   // display label for facet options
	Num   *float64 // set for numeric groups
}

// Index is the request-scoped catalog snapshot the matchers run over:
// price and stock per product, plus one value per (group, product) pair.
type Index struct {
	Prices map[int64]float64
	Stock  map[int64]int
	Values map[int64]map[int64]Value
}

// NewIndex builds an index from plain domain records. Parameter values
// whose shape does not fit their group kind are skipped.
func NewIndex(products []models.Product, values []models.ParameterValue) *Index {
	ix := &Index{
		Prices: make(map[int64]float64, len(products)),
		Stock:  make(map[int64]int, len(products)),
		Values: make(map[int64]map[int64]Value),
	}
	for _, p := range products {
		ix.Prices[p.ID] = p.Price
		ix.Stock[p.ID] = p.Stock
	}
	for _, pv := range values {
		var v Value
		switch {
		case pv.ItemID != nil:
			v.Token = strconv.FormatInt(*pv.ItemID, 10)
			v.Label = pv.ItemLabel
			if v.Label == "" {
				v.Label = v.Token
			}
		case pv.Number != nil:
			v.Token = formatNumber(*pv.Number)
			v.Label = v.Token
			v.Num = pv.Number
		default:
			continue
		}
		group := ix.Values[pv.GroupID]
		if group == nil {
			group = make(map[int64]Value)
			ix.Values[pv.GroupID] = group
		}
		group[pv.ProductID] = v
	}
	return ix
}

// value looks up the product's value for a group.
func (ix *Index) value(groupID, productID int64) (Value, bool) {
	v, ok := ix.Values[groupID][productID]
	return v, ok
}

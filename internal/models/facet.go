// internal/models/facet.go
package models

// FacetKind identifies how a facet is rendered and matched.
type FacetKind string

const (
	FacetKindItem  FacetKind = "item"
	FacetKindRange FacetKind = "range"
	FacetKindPrice FacetKind = "price"
	FacetKindStock FacetKind = "stock"
)

// FacetOption is one selectable value of an item facet, with the number of
// products that would remain if it were selected.
type FacetOption struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// Facet is the request-scoped view-model for one filterable dimension.
// Options is populated for item and stock facets; Min/Max for range facets.
type Facet struct {
	Key       string        `json:"key"`
	Label     string        `json:"label"`
	Kind      FacetKind     `json:"kind"`
	Unit      string        `json:"unit,omitempty"`
	Options   []FacetOption `json:"options,omitempty"`
	Min       *float64      `json:"min,omitempty"`
	Max       *float64      `json:"max,omitempty"`
	ActiveMin *float64      `json:"activeMin,omitempty"`
	ActiveMax *float64      `json:"activeMax,omitempty"`
}

// FilteredListing is what the listing endpoint returns: facet view-models
// for rendering plus the final filtered, paginated products.
type FilteredListing struct {
	Facets   []Facet   `json:"facets"`
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// internal/filter/filter_test.go
package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-filters/internal/models"
	"storefront-filters/pkg/filterconfig"
)

const testMarkup = 1.0

func item(product, group, itemID int64, label string) models.ParameterValue {
	return models.ParameterValue{ProductID: product, GroupID: group, ItemID: &itemID, ItemLabel: label}
}

func num(product, group int64, v float64) models.ParameterValue {
	return models.ParameterValue{ProductID: product, GroupID: group, Number: &v}
}

// fixture: colour is group 7 (red=11, blue=12), length is group 8.
func catalogFixture(t *testing.T) ([]Definition, *Index, Set) {
	t.Helper()
	doc := &filterconfig.Document{Filters: []filterconfig.Entry{
		{GroupID: 7, Sort: 1},
		{GroupID: 8, Sort: 2},
	}}
	defs := ResolveDefinitions(doc, testGroups())

	products := []models.Product{
		{ID: 1, Price: 80, Stock: 0},
		{ID: 2, Price: 100, Stock: 5},
		{ID: 3, Price: 120, Stock: 3},
		{ID: 4, Price: 150, Stock: 0},
		{ID: 5, Price: 200, Stock: 9},
	}
	values := []models.ParameterValue{
		item(1, 7, 11, "Red"),
		item(2, 7, 11, "Red"),
		item(3, 7, 12, "Blue"),
		num(3, 8, 40),
		num(4, 8, 80),
		num(5, 8, 100),
	}
	return defs, NewIndex(products, values), NewSet(1, 2, 3, 4, 5)
}

func parseParams(t *testing.T, query string) url.Values {
	t.Helper()
	params, err := url.ParseQuery(query)
	require.NoError(t, err)
	return params
}

func TestApply_DefaultStockToggle(t *testing.T) {
	defs, ix, universe := catalogFixture(t)
	sel := ParseSelection(defs, parseParams(t, ""))

	got := Apply(universe, defs, sel, ix, testMarkup)

	assert.ElementsMatch(t, []int64{2, 3, 5}, got.IDs(), "no selections keep only in-stock products")
}

func TestApply_ShowAllOverridesStock(t *testing.T) {
	defs, ix, universe := catalogFixture(t)
	sel := ParseSelection(defs, parseParams(t, "stock=0"))

	got := Apply(universe, defs, sel, ix, testMarkup)

	assert.Equal(t, universe.Len(), got.Len())
}

func TestApply_ItemSelectionWithDefaultStock(t *testing.T) {
	// products 1 and 2 are red; product 1 is out of stock
	defs, ix, universe := catalogFixture(t)
	sel := ParseSelection(defs, parseParams(t, "f7=11"))

	got := Apply(universe, defs, sel, ix, testMarkup)

	assert.Equal(t, []int64{2}, got.IDs())
}

func TestApply_NumericRange(t *testing.T) {
	defs, ix, universe := catalogFixture(t)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "inclusive bounds", query: "f8=40-80&stock=0", want: []int64{3, 4}},
		{name: "open max", query: "f8=80-&stock=0", want: []int64{4, 5}},
		{name: "open min", query: "f8=-40&stock=0", want: []int64{3}},
		{name: "no overlap", query: "f8=500-900&stock=0", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := ParseSelection(defs, parseParams(t, tt.query))
			got := Apply(universe, defs, sel, ix, testMarkup)
			assert.ElementsMatch(t, tt.want, got.IDs())
		})
	}
}

func TestApply_PriceMarkupFactor(t *testing.T) {
	// stored 80 -> 96.8, 100 -> 121, 120 -> 145.2 at markup 1.21
	defs := ResolveDefinitions(nil, testGroups())
	ix := NewIndex([]models.Product{
		{ID: 1, Price: 80, Stock: 1},
		{ID: 2, Price: 100, Stock: 1},
		{ID: 3, Price: 120, Stock: 1},
	}, nil)
	sel := ParseSelection(defs, parseParams(t, "price=100-150"))

	got := Apply(NewSet(1, 2, 3), defs, sel, ix, 1.21)

	assert.ElementsMatch(t, []int64{2, 3}, got.IDs())
}

func TestApply_Idempotent(t *testing.T) {
	defs, ix, universe := catalogFixture(t)
	sel := ParseSelection(defs, parseParams(t, "f7=11,12&price=100-130"))

	first := Apply(universe, defs, sel, ix, testMarkup)
	second := Apply(universe, defs, sel, ix, testMarkup)

	assert.Equal(t, first.IDs(), second.IDs())
}

func TestCandidateSets_ExcludeOwnFacet(t *testing.T) {
	defs, ix, universe := catalogFixture(t)
	sel := ParseSelection(defs, parseParams(t, "f7=12"))

	cands := CandidateSets(universe, defs, sel, ix, testMarkup)

	// the colour facet's own selection must not shrink its candidate set:
	// it sees every in-stock product, not just blue ones
	assert.ElementsMatch(t, []int64{2, 3, 5}, cands["f7"].IDs())
	// every other facet sees the blue in-stock subset
	assert.Equal(t, []int64{3}, cands["f8"].IDs())
	assert.Equal(t, []int64{3}, cands[KeyPrice].IDs())
}

func TestCandidateSets_SupersetOfFinalResult(t *testing.T) {
	defs, ix, universe := catalogFixture(t)

	queries := []string{
		"",
		"f7=11",
		"f7=11,12&f8=40-100",
		"price=100-130&stock=0",
		"f7=12&f8=40-40&price=110-130",
	}

	for _, query := range queries {
		sel := ParseSelection(defs, parseParams(t, query))
		final := Apply(universe, defs, sel, ix, testMarkup)
		cands := CandidateSets(universe, defs, sel, ix, testMarkup)

		for key, cand := range cands {
			for id := range final {
				assert.True(t, cand.Has(id), "query %q: facet %s candidate set must contain final result %d", query, key, id)
			}
		}
	}
}

func TestCandidateSets_ShortCircuitOnEmpty(t *testing.T) {
	defs, ix, universe := catalogFixture(t)
	// red and a length range no red product has: every other facet empties
	sel := ParseSelection(defs, parseParams(t, "f7=11&f8=900-999"))

	cands := CandidateSets(universe, defs, sel, ix, testMarkup)

	assert.Empty(t, cands[KeyPrice].IDs())
	// the length facet still sees the red in-stock products
	assert.Equal(t, []int64{2}, cands["f8"].IDs())
}

func TestBuildFacets_OptionsAndCounts(t *testing.T) {
	defs, ix, universe := catalogFixture(t)
	sel := ParseSelection(defs, parseParams(t, "f7=12&stock=0"))
	cands := CandidateSets(universe, defs, sel, ix, testMarkup)

	facets := BuildFacets(defs, cands, sel, ix, testMarkup)

	byKey := map[string]models.Facet{}
	for _, f := range facets {
		byKey[f.Key] = f
	}

	colour, ok := byKey["f7"]
	require.True(t, ok)
	require.Len(t, colour.Options, 2)
	// alphabetical: Blue before Red
	assert.Equal(t, "Blue", colour.Options[0].Label)
	assert.Equal(t, 1, colour.Options[0].Count)
	assert.True(t, colour.Options[0].Active)
	assert.Equal(t, "Red", colour.Options[1].Label)
	assert.Equal(t, 2, colour.Options[1].Count)
	assert.False(t, colour.Options[1].Active)

	length, ok := byKey["f8"]
	require.True(t, ok)
	// only product 3 is blue, so the range collapses to its length
	assert.Equal(t, 40.0, *length.Min)
	assert.Equal(t, 40.0, *length.Max)
	assert.Equal(t, "cm", length.Unit)

	price, ok := byKey[KeyPrice]
	require.True(t, ok)
	assert.Equal(t, 120.0, *price.Min)
	assert.Equal(t, 120.0, *price.Max)

	stock, ok := byKey[KeyStock]
	require.True(t, ok)
	require.Len(t, stock.Options, 1)
	assert.Equal(t, 1, stock.Options[0].Count)
	assert.False(t, stock.Options[0].Active, "show-all deactivates the toggle")
}

func TestBuildFacets_CheckboxNumericSortedAscending(t *testing.T) {
	doc := &filterconfig.Document{Filters: []filterconfig.Entry{
		{GroupID: 10, Sort: 1, Display: filterconfig.DisplayCheckbox},
	}}
	defs := ResolveDefinitions(doc, testGroups())
	ix := NewIndex([]models.Product{
		{ID: 1, Price: 10, Stock: 1},
		{ID: 2, Price: 10, Stock: 1},
		{ID: 3, Price: 10, Stock: 1},
	}, []models.ParameterValue{
		num(1, 10, 12),
		num(2, 10, 2),
		num(3, 10, 6),
	})
	sel := ParseSelection(defs, parseParams(t, ""))
	cands := CandidateSets(NewSet(1, 2, 3), defs, sel, ix, testMarkup)

	facets := BuildFacets(defs, cands, sel, ix, testMarkup)

	require.GreaterOrEqual(t, len(facets), 1)
	require.Equal(t, "f10", facets[0].Key)
	var values []string
	for _, opt := range facets[0].Options {
		values = append(values, opt.Value)
	}
	// numeric ascending, not lexicographic ("12" would sort before "2")
	assert.Equal(t, []string{"2", "6", "12"}, values)
}

func TestBuildFacets_EmptyFacetsOmitted(t *testing.T) {
	defs, ix, _ := catalogFixture(t)
	sel := ParseSelection(defs, parseParams(t, ""))
	// empty universe: every candidate set is empty
	cands := CandidateSets(NewSet(), defs, sel, ix, testMarkup)

	facets := BuildFacets(defs, cands, sel, ix, testMarkup)

	assert.Empty(t, facets)
}

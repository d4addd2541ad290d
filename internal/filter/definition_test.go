// internal/filter/definition_test.go
package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-filters/internal/models"
	"storefront-filters/pkg/filterconfig"
)

func testGroups() map[int64]models.ParameterGroup {
	return map[int64]models.ParameterGroup{
		7:  {ID: 7, Name: "Colour", Kind: models.GroupKindItem},
		8:  {ID: 8, Name: "Length", Kind: models.GroupKindNumeric, Unit: "cm"},
		9:  {ID: 9, Name: "Material note", Kind: models.GroupKindText},
		10: {ID: 10, Name: "Bottles per pack", Kind: models.GroupKindNumeric},
	}
}

func keys(defs []Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Key)
	}
	return out
}

func TestResolveDefinitions_OrderingAndKinds(t *testing.T) {
	doc := &filterconfig.Document{Filters: []filterconfig.Entry{
		{GroupID: 8, Sort: 20},
		{GroupID: 7, Sort: 10},
		{GroupID: 10, Sort: 30, Display: filterconfig.DisplayCheckbox},
	}}

	defs := ResolveDefinitions(doc, testGroups())

	require.Equal(t, []string{"f7", "f8", "f10", "stock", "price"}, keys(defs))
	assert.Equal(t, models.FacetKindItem, defs[0].Kind)
	assert.Equal(t, models.FacetKindRange, defs[1].Kind)
	assert.Equal(t, "cm", defs[1].Unit)
	assert.Equal(t, models.FacetKindItem, defs[2].Kind)
	assert.True(t, defs[2].Checkbox)
	assert.Equal(t, models.FacetKindStock, defs[3].Kind)
	assert.Equal(t, models.FacetKindPrice, defs[4].Kind)
}

func TestResolveDefinitions_SortTiesKeepDeclarationOrder(t *testing.T) {
	doc := &filterconfig.Document{Filters: []filterconfig.Entry{
		{GroupID: 8, Sort: 5},
		{GroupID: 7, Sort: 5},
	}}

	defs := ResolveDefinitions(doc, testGroups())

	assert.Equal(t, []string{"f8", "f7", "stock", "price"}, keys(defs))
}

func TestResolveDefinitions_SkipsTextAndUnknownGroups(t *testing.T) {
	doc := &filterconfig.Document{Filters: []filterconfig.Entry{
		{GroupID: 9, Sort: 1},  // free text
		{GroupID: 99, Sort: 2}, // unknown group
		{GroupID: 7, Sort: 3},
	}}

	defs := ResolveDefinitions(doc, testGroups())

	assert.Equal(t, []string{"f7", "stock", "price"}, keys(defs))
}

func TestResolveDefinitions_NilConfigYieldsFixedFacets(t *testing.T) {
	defs := ResolveDefinitions(nil, testGroups())

	require.Len(t, defs, 2)
	assert.Equal(t, KeyStock, defs[0].Key)
	assert.Equal(t, KeyPrice, defs[1].Key)
}

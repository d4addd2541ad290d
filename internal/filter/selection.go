// internal/filter/selection.go
package filter

import (
	"net/url"
	"strconv"
	"strings"

	"storefront-filters/internal/models"
)

// Range is an optional inclusive numeric interval. Both bounds nil means
// the range is inactive.
type Range struct {
	Min *float64
	Max *float64
}

func (r Range) Active() bool { return r.Min != nil || r.Max != nil }

func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Selection holds the parsed active state of every facet for one request.
type Selection struct {
	Items   map[int64]map[string]struct{} // group ID -> selected option tokens
	Ranges  map[int64]Range               // group ID -> numeric range
	Price   Range
	ShowAll bool // stock toggle override: include out-of-stock products
}

func NewSelection() Selection {
	return Selection{
		Items:  make(map[int64]map[string]struct{}),
		Ranges: make(map[int64]Range),
	}
}

// ItemTokens returns the selected option tokens for a group.
func (s Selection) ItemTokens(groupID int64) map[string]struct{} {
	return s.Items[groupID]
}

// active reports whether the selection constrains the given facet. The
// stock toggle is active by default; an explicit "show all" deactivates it.
func (s Selection) active(def Definition) bool {
	switch def.Kind {
	case models.FacetKindItem:
		return len(s.Items[def.GroupID]) > 0
	case models.FacetKindRange:
		return s.Ranges[def.GroupID].Active()
	case models.FacetKindPrice:
		return s.Price.Active()
	case models.FacetKindStock:
		return !s.ShowAll
	}
	return false
}

// Normalize folds both supported query syntaxes into the compact
// "key -> comma-joined list or min-max string" shape:
//
//	compact:  f7=1,2  f7=40-80  price=100-150  stock=0
//	explicit: f7[]=1&f7[]=2  f7_min=40&f7_max=80  price_min=100&price_max=150
//
// Explicit forms win over a compact value for the same key.
func Normalize(params url.Values) map[string]string {
	norm := make(map[string]string)
	mins := make(map[string]string)
	maxs := make(map[string]string)

	for key, values := range params {
		if len(values) == 0 {
			continue
		}
		switch {
		case strings.HasSuffix(key, "[]"):
			base := strings.TrimSuffix(key, "[]")
			norm[base] = strings.Join(values, ",")
		case strings.HasSuffix(key, "_min"):
			mins[strings.TrimSuffix(key, "_min")] = values[0]
		case strings.HasSuffix(key, "_max"):
			maxs[strings.TrimSuffix(key, "_max")] = values[0]
		default:
			if _, ok := norm[key]; !ok {
				norm[key] = values[0]
			}
		}
	}

	for base, min := range mins {
		norm[base] = min + "-" + maxs[base]
		delete(maxs, base)
	}
	for base, max := range maxs {
		norm[base] = "-" + max
	}
	return norm
}

// ParseSelection interprets request parameters against the resolved facet
// definitions. Malformed or missing values leave the facet inactive; no
// input ever produces an error.
func ParseSelection(defs []Definition, params url.Values) Selection {
	norm := Normalize(params)
	sel := NewSelection()

	for _, def := range defs {
		raw, ok := norm[def.Key]
		switch def.Kind {
		case models.FacetKindItem:
			if !ok {
				continue
			}
			tokens := parseTokens(raw, def.Checkbox)
			if len(tokens) > 0 {
				sel.Items[def.GroupID] = tokens
			}
		case models.FacetKindRange:
			if !ok {
				continue
			}
			if r := parseRange(raw); r.Active() {
				sel.Ranges[def.GroupID] = r
			}
		case models.FacetKindPrice:
			if ok {
				sel.Price = parseRange(raw)
			}
		case models.FacetKindStock:
			sel.ShowAll = ok && raw == "0"
		}
	}
	return sel
}

// parseTokens splits a comma-joined option list into canonical tokens.
// Item options are enumerated-item IDs; checkbox options are numeric
// literals. Tokens that do not parse are dropped.
func parseTokens(raw string, numeric bool) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if numeric {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				continue
			}
			tokens[formatNumber(v)] = struct{}{}
		} else {
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				continue
			}
			tokens[strconv.FormatInt(id, 10)] = struct{}{}
		}
	}
	return tokens
}

// parseRange parses a "min-max" string. Either side may be empty; a value
// without a separator or with two unparseable sides is inactive.
func parseRange(raw string) Range {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return Range{}
	}
	return Range{Min: parseBound(parts[0]), Max: parseBound(parts[1])}
}

func parseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// formatNumber renders a numeric value as its canonical option token.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

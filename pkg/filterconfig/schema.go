// pkg/filterconfig/schema.go
package filterconfig

// Document is the category-level filter configuration: which parameter
// groups are filterable, in which order, and how they render.
type Document struct {
	Filters []Entry `json:"filters"`
}

// Entry references one filterable parameter group.
type Entry struct {
	GroupID int64  `json:"groupId"`
	Sort    int    `json:"sort"`
	Display string `json:"display,omitempty"`
}

// DisplayCheckbox renders a numeric group as a discrete value list instead
// of the default range slider.
const DisplayCheckbox = "checkbox"

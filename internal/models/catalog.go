// internal/models/catalog.go
package models

import "encoding/json"

// GroupKind classifies a parameter group. Exactly one kind applies per group.
type GroupKind string

const (
	GroupKindItem    GroupKind = "item"    // enumerated items
	GroupKindText    GroupKind = "text"    // free text, not filterable
	GroupKindNumeric GroupKind = "numeric" // free numeric value
)

// Category is a catalog category. FilterConfig is the raw category-level
// JSON document listing which parameter groups are filterable.
type Category struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	FilterConfig json.RawMessage `json:"filterConfig,omitempty"`
}

// Product is a read-only projection of a catalog record. The filter core
// never mutates it.
type Product struct {
	ID         int64   `json:"id"`
	CategoryID int64   `json:"categoryId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	Visible    bool    `json:"visible"`
}

// ParameterGroup describes one product attribute dimension.
type ParameterGroup struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Kind GroupKind `json:"kind"`
	Unit string    `json:"unit,omitempty"`
}

// ParameterValue is the single value a product carries for a group. The
// populated field depends on the group kind: ItemID/ItemLabel for item
// groups, Number for numeric groups, Text for text groups.
type ParameterValue struct {
	ProductID int64    `json:"productId"`
	GroupID   int64    `json:"groupId"`
	ItemID    *int64   `json:"itemId,omitempty"`
	ItemLabel string   `json:"itemLabel,omitempty"`
	Number    *float64 `json:"number,omitempty"`
	Text      string   `json:"text,omitempty"`
}

// StockAlert is a back-in-stock subscription for a single product.
// Either Email or Phone is set, depending on the requested channel.
type StockAlert struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"createdAt"`
}

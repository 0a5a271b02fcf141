// Package models defines the searchable back-office entities, search results and filters.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EntityType tags which collection a searchable item came from.
type EntityType string

const (
	EntityCustomer EntityType = "customer"
	EntityProduct  EntityType = "product"
	EntityOrder    EntityType = "order"
	EntityPage     EntityType = "page"
)

// ErrUnknownEntityType is returned when a type name does not match any entity.
var ErrUnknownEntityType = errors.New("unknown entity type")

// EntityTypes lists every entity type in the order collections are searched by default.
func EntityTypes() []EntityType {
	return []EntityType{EntityCustomer, EntityProduct, EntityOrder, EntityPage}
}

// ParseEntityType converts a type name ("customer", "products", ...) to an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "customers":
		return EntityCustomer, nil
	case "product", "products":
		return EntityProduct, nil
	case "order", "orders", "sale", "sales":
		return EntityOrder, nil
	case "page", "pages":
		return EntityPage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, s)
}

// Field is one named attribute of an item as seen by the scorer and by match highlighting.
type Field struct {
	// Key is the item's own attribute name (its JSON key).
	Key string
	// Value is the scalar string form of the attribute.
	Value string
	// List holds the members of list-valued attributes such as tags.
	List []string
	// Raw marks identifiers that are matched without case folding.
	Raw bool
}

// String returns the field's string form; list members are joined with commas.
func (f Field) String() string {
	if f.List != nil {
		return strings.Join(f.List, ",")
	}
	return f.Value
}

// Item is the capability every searchable entity exposes to scoring, ranking and filtering.
// Entity-specific attributes stay on the concrete type.
type Item interface {
	// Type returns the entity type of the item.
	Type() EntityType
	// ItemID returns the identifier in string form.
	ItemID() string
	// Fields returns the item's present attributes; absent attributes are omitted.
	Fields() []Field
	// DisplayName returns the best available display name, or "" when there is none.
	DisplayName() string
	// DateText returns the raw date-like attribute, or "".
	DateText() string
	// PriceText returns the raw price-like attribute, or "".
	PriceText() string
	// Categories returns the category values the item can be filtered by.
	Categories() []string
	// Status returns the item's status, or "".
	Status() string
}

// Title returns the heading used when rendering an item: its display name, falling back to its id.
func Title(item Item) string {
	if name := item.DisplayName(); name != "" {
		return name
	}
	return item.ItemID()
}

// fieldSet accumulates non-empty fields in declaration order.
type fieldSet []Field

func (fs *fieldSet) str(key, value string) {
	if value != "" {
		*fs = append(*fs, Field{Key: key, Value: value})
	}
}

func (fs *fieldSet) num(key string, n int64) {
	if n != 0 {
		*fs = append(*fs, Field{Key: key, Value: strconv.FormatInt(n, 10)})
	}
}

func (fs *fieldSet) list(key string, values []string) {
	if len(values) > 0 {
		*fs = append(*fs, Field{Key: key, List: values})
	}
}

func (fs *fieldSet) id(value string) {
	if value != "" {
		*fs = append(*fs, Field{Key: "id", Value: value, Raw: true})
	}
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

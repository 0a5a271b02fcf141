// Package filter applies the date, category, status and price predicates of a
// models.SearchFilters to lists of domain items.
package filter

import (
	"slices"

	"github.com/hyperjump/tafuta/internal/models"
)

// Predicate reports whether an item passes one filter condition.
type Predicate func(models.Item) bool

// Predicates returns the active predicates of f in evaluation order: date range, category,
// status, price range. Inactive conditions are skipped rather than rejecting everything.
func Predicates(f models.SearchFilters) []Predicate {
	var preds []Predicate
	if f.DateRange != nil {
		preds = append(preds, inDateRange(f.DateRange))
	}
	if len(f.Categories) > 0 {
		preds = append(preds, inCategories(f.Categories))
	}
	if len(f.Status) > 0 {
		preds = append(preds, hasStatus(f.Status))
	}
	if f.PriceRange != nil {
		preds = append(preds, inPriceRange(f.PriceRange))
	}
	return preds
}

// Apply returns the items that pass every active predicate, in input order. It does not
// modify items and has no side effects.
func Apply[T models.Item](items []T, f models.SearchFilters) []T {
	preds := Predicates(f)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Match(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

// Match reports whether item passes all preds.
func Match(item models.Item, preds []Predicate) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}

// inDateRange rejects items whose date is missing or unparsable.
func inDateRange(r *models.DateRange) Predicate {
	return func(item models.Item) bool {
		t, ok := models.ParseDate(item.DateText())
		return ok && r.Contains(t)
	}
}

// inCategories accepts an item when its category name or legacy category is in the set.
func inCategories(categories []string) Predicate {
	return func(item models.Item) bool {
		for _, c := range item.Categories() {
			if slices.Contains(categories, c) {
				return true
			}
		}
		return false
	}
}

func hasStatus(statuses []string) Predicate {
	return func(item models.Item) bool {
		return slices.Contains(statuses, item.Status())
	}
}

// inPriceRange rejects items whose price is missing or unparsable.
func inPriceRange(r *models.PriceRange) Predicate {
	return func(item models.Item) bool {
		v, ok := models.ParsePrice(item.PriceText())
		return ok && r.Contains(v)
	}
}

package filter

import (
	"testing"

	"github.com/hyperjump/tafuta/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func products() []*models.Product {
	return []*models.Product{
		{ID: 1, Name: "Wireless Headphones", CategoryName: "Electronics", Price: "KSh 129", CreatedAt: "2024-01-15"},
		{ID: 2, Name: "Desk Lamp", Category: "Home", Price: "$45.50", CreatedAt: "2024-03-02"},
		{ID: 3, Name: "USB Cable", CategoryName: "Electronics", Price: "KSh 1,200", CreatedAt: "2024-06-10"},
		{ID: 4, Name: "Mystery Box", Price: "call us"},
	}
}

func ids(items []*models.Product) []int64 {
	out := make([]int64, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestApply_NoFiltersKeepsAll(t *testing.T) {
	got := Apply(products(), models.DefaultFilters())
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(got))
}

func TestApply_DateRange(t *testing.T) {
	dr, err := models.NewDateRange("2024-01-15", "2024-03-02")
	require.NoError(t, err)

	got := Apply(products(), models.SearchFilters{DateRange: dr})
	assert.Equal(t, []int64{1, 2}, ids(got), "bounds are inclusive; undated items are excluded")
}

func TestApply_CategoryChecksBothFields(t *testing.T) {
	got := Apply(products(), models.SearchFilters{Categories: []string{"Home", "Electronics"}})
	assert.Equal(t, []int64{1, 2, 3}, ids(got))

	got = Apply(products(), models.SearchFilters{Categories: []string{"Home"}})
	assert.Equal(t, []int64{2}, ids(got))
}

func TestApply_PriceRange(t *testing.T) {
	got := Apply(products(), models.SearchFilters{PriceRange: &models.PriceRange{Min: 45.5, Max: 1200}})
	assert.Equal(t, []int64{1, 2, 3}, ids(got), "bounds are inclusive; unparsable prices are excluded")

	got = Apply(products(), models.SearchFilters{PriceRange: &models.PriceRange{Min: 100, Max: 200}})
	assert.Equal(t, []int64{1}, ids(got))
}

func TestApply_Status(t *testing.T) {
	orders := []*models.Order{
		{ID: "1", State: "completed"},
		{ID: "2", State: "pending"},
		{ID: "3"},
		{ID: "4", State: "completed"},
	}
	got := Apply(orders, models.SearchFilters{Status: []string{"completed"}})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
}

func TestApply_CombinesWithAnd(t *testing.T) {
	f := models.SearchFilters{
		Categories: []string{"Electronics"},
		PriceRange: &models.PriceRange{Min: 0, Max: 500},
	}
	assert.Equal(t, []int64{1}, ids(Apply(products(), f)))
}

func TestApply_PureAndOrderPreserving(t *testing.T) {
	items := products()
	f := models.SearchFilters{Categories: []string{"Electronics"}}
	first := Apply(items, f)
	second := Apply(items, f)
	assert.Equal(t, ids(first), ids(second))
	assert.Len(t, items, 4, "input must not be modified")
	assert.Equal(t, []int64{1, 3}, ids(first))
}

func TestApply_MixedItems(t *testing.T) {
	items := []models.Item{
		&models.Customer{ID: 1, Name: "Sarah", IsActive: true},
		&models.Order{ID: "ORD-1", State: "Active"},
		&models.Customer{ID: 2, Name: "Tom"},
	}
	got := Apply(items, models.SearchFilters{Status: []string{"Active"}})
	assert.Len(t, got, 2)
}

func TestPredicates_Order(t *testing.T) {
	dr, _ := models.NewDateRange("2024-01-01", "2024-12-31")
	f := models.SearchFilters{
		DateRange:  dr,
		Categories: []string{"x"},
		Status:     []string{"y"},
		PriceRange: &models.PriceRange{Max: 1},
	}
	assert.Len(t, Predicates(f), 4)
	assert.Empty(t, Predicates(models.SearchFilters{Categories: []string{}}))
}

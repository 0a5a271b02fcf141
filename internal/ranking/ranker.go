package ranking

import (
	"cmp"
	"slices"
	"time"

	"github.com/hyperjump/tafuta/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ranker orders search results by the active sort criterion. Sorting is stable: results with
// equal keys keep their input order.
type Ranker struct {
	tag language.Tag
}

// NewRanker creates a Ranker that collates names for the locale in config.
func NewRanker(config *RankingConfig) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()
	tag, err := language.Parse(config.Locale)
	if err != nil {
		tag = language.English
	}
	return &Ranker{tag: tag}
}

// Rank returns a sorted copy of results. Relevance is always descending; date, name and price
// honour filters.SortOrder.
func (r *Ranker) Rank(results []models.SearchResult, filters models.SearchFilters) []models.SearchResult {
	filters = filters.Normalized()
	ranked := slices.Clone(results)
	desc := filters.SortOrder == models.SortDesc

	switch filters.SortBy {
	case models.SortByDate:
		slices.SortStableFunc(ranked, func(a, b models.SearchResult) int {
			return compareDates(a.Item, b.Item, desc)
		})
	case models.SortByName:
		// Collators keep scratch buffers, so each call gets its own.
		collator := collate.New(r.tag)
		slices.SortStableFunc(ranked, func(a, b models.SearchResult) int {
			c := collator.CompareString(a.Item.DisplayName(), b.Item.DisplayName())
			if desc {
				return -c
			}
			return c
		})
	case models.SortByPrice:
		slices.SortStableFunc(ranked, func(a, b models.SearchResult) int {
			c := cmp.Compare(priceOf(a.Item), priceOf(b.Item))
			if desc {
				return -c
			}
			return c
		})
	default:
		slices.SortStableFunc(ranked, func(a, b models.SearchResult) int {
			return cmp.Compare(b.RelevanceScore, a.RelevanceScore)
		})
	}
	return ranked
}

// compareDates orders by date; items without a parsable date sort after dated ones in
// either direction.
func compareDates(a, b models.Item, desc bool) int {
	ta, okA := dateOf(a)
	tb, okB := dateOf(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	c := ta.Compare(tb)
	if desc {
		return -c
	}
	return c
}

func dateOf(item models.Item) (time.Time, bool) {
	return models.ParseDate(item.DateText())
}

// priceOf returns the item's parsed price, or 0 when it has none.
func priceOf(item models.Item) float64 {
	v, _ := models.ParsePrice(item.PriceText())
	return v
}

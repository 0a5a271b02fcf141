// Package ranking scores back-office entities against a free-text query and orders the hits.
package ranking

import (
	"strings"

	"github.com/hyperjump/tafuta/internal/models"
)

// Scorer computes weighted relevance scores. Each weighted field whose value contains the
// query adds its weight once; weights are summed across fields.
type Scorer struct {
	weights map[string]int
}

// NewScorer creates a Scorer with the weights from config (defaults when nil).
func NewScorer(config *RankingConfig) *Scorer {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()
	return &Scorer{weights: config.Weights()}
}

// Score returns the relevance score of item for query and the keys of every field whose
// string form contains the query case-insensitively. matched is independent of the score.
func (s *Scorer) Score(item models.Item, query string) (score int, matched []string) {
	if item == nil || strings.TrimSpace(query) == "" {
		return 0, nil
	}
	lowerQuery := strings.ToLower(query)

	for _, f := range item.Fields() {
		contains := strings.Contains(strings.ToLower(f.String()), lowerQuery)
		if contains {
			matched = append(matched, f.Key)
		}

		weight, ok := s.weights[f.Key]
		if !ok {
			continue
		}
		if fieldHit(f, query, lowerQuery, contains) {
			score += weight
		}
	}
	return score, matched
}

// fieldHit reports whether a weighted field counts as a hit.
func fieldHit(f models.Field, query, lowerQuery string, contains bool) bool {
	switch {
	case f.Raw:
		return strings.Contains(f.Value, query)
	case f.List != nil:
		for _, member := range f.List {
			if strings.Contains(strings.ToLower(member), lowerQuery) {
				return true
			}
		}
		return false
	default:
		return contains
	}
}

// Weight returns the configured weight of a field key, or 0.
func (s *Scorer) Weight(key string) int {
	return s.weights[key]
}

// Package search runs a free-text query across every configured entity collection and merges
// the hits into one ranked list.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/hyperjump/tafuta/internal/config"
	"github.com/hyperjump/tafuta/internal/models"
	"github.com/hyperjump/tafuta/internal/ranking"
	"github.com/hyperjump/tafuta/internal/source"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine fans a query out over entity sources, scores every item and ranks the survivors.
type Engine struct {
	sources []source.Source
	scorer  *ranking.Scorer
	ranker  *ranking.Ranker
	config  *config.SearchConfig
	logger  *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for source failures (default: no-op).
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a search engine over sources. Their order is the concatenation order that
// decides relevance ties.
func NewEngine(
	sources []source.Source,
	scorer *ranking.Scorer,
	ranker *ranking.Ranker,
	cfg *config.SearchConfig,
	opts ...EngineOption,
) *Engine {
	if cfg == nil {
		cfg = &config.SearchConfig{}
	}
	e := &Engine{
		sources: sources,
		scorer:  scorer,
		ranker:  ranker,
		config:  cfg,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sources returns the configured sources.
func (e *Engine) Sources() []source.Source {
	return e.sources
}

// Search returns the ranked hits for query. A blank query returns an empty list without
// touching any source. Failed sources contribute nothing; the only error is ctx's.
func (e *Engine) Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []models.SearchResult{}, nil
	}
	candidates := e.Collect(ctx, query)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.ranker.Rank(candidates, filters), nil
}

// Collect scores every item of every source against query and returns the unordered
// candidates, grouped by source in configuration order.
func (e *Engine) Collect(ctx context.Context, query string) []models.SearchResult {
	perSource := make([][]models.SearchResult, len(e.sources))

	var g errgroup.Group
	if e.config.MaxConcurrentSources > 0 {
		g.SetLimit(e.config.MaxConcurrentSources)
	}
	for i, src := range e.sources {
		i, src := i, src
		g.Go(func() error {
			perSource[i] = e.scan(ctx, src, query)
			return nil
		})
	}
	_ = g.Wait()

	var total int
	for _, hits := range perSource {
		total += len(hits)
	}
	out := make([]models.SearchResult, 0, total)
	for _, hits := range perSource {
		out = append(out, hits...)
	}
	return out
}

// scan fetches one source and scores its items. Fetch failures are logged and yield no hits.
func (e *Engine) scan(ctx context.Context, src source.Source, query string) []models.SearchResult {
	start := time.Now()
	items, err := src.Fetch(ctx)
	if err != nil {
		e.logger.Warn("entity source failed",
			zap.String("source", src.Name()),
			zap.String("type", string(src.Type())),
			zap.Error(err))
		return nil
	}

	var hits []models.SearchResult
	for _, item := range items {
		if item == nil {
			continue
		}
		score, matched := e.scorer.Score(item, query)
		if score <= 0 {
			continue
		}
		hits = append(hits, models.SearchResult{
			Type:           src.Type(),
			Item:           item,
			RelevanceScore: score,
			MatchedFields:  matched,
		})
	}
	e.logger.Debug("entity source scanned",
		zap.String("source", src.Name()),
		zap.Int("items", len(items)),
		zap.Int("hits", len(hits)),
		zap.Duration("took", time.Since(start)))
	return hits
}

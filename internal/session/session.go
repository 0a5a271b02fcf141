// Package session holds the state of one search UI: the query being typed, the ranked results
// of the latest search, the busy flag, the active filters and the recent-search history.
//
// Every search is tagged with a sequence number when it starts. Only the most recently issued
// search may write its results back; responses from older searches are dropped.
package session

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/tafuta/internal/filter"
	"github.com/hyperjump/tafuta/internal/history"
	"github.com/hyperjump/tafuta/internal/models"
	"github.com/hyperjump/tafuta/internal/search"
	"go.uber.org/zap"
)

// Session is the single source of truth for one search UI. All state changes go through its
// methods; it is safe for concurrent use.
type Session struct {
	id        string
	createdAt time.Time
	engine    *search.Engine
	history   *history.History
	logger    *zap.Logger

	mu        sync.Mutex
	query     string
	results   []models.SearchResult
	filters   models.SearchFilters
	seq       uint64
	searching bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithHistorySize sets the recent-search capacity (default: history.DefaultCapacity).
func WithHistorySize(n int) Option {
	return func(s *Session) { s.history = history.New(n) }
}

// WithFilters sets the initial filters (default: models.DefaultFilters).
func WithFilters(f models.SearchFilters) Option {
	return func(s *Session) { s.filters = f.Normalized().Clone() }
}

// New creates a session searching through engine.
func New(engine *search.Engine, opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		createdAt: time.Now(),
		engine:    engine,
		history:   history.New(history.DefaultCapacity),
		logger:    zap.NewNop(),
		results:   []models.SearchResult{},
		filters:   models.DefaultFilters(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// SetQuery records the text currently typed. It does not search.
func (s *Session) SetQuery(text string) {
	s.mu.Lock()
	s.query = text
	s.mu.Unlock()
}

// Query returns the current query text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// PerformSearch runs query against every source and replaces the results with the ranked hits,
// ordered by the filters in effect when the search started. A blank query empties the results
// without touching any source. If a newer search or a ClearSearch was issued meanwhile, the
// hits are discarded and the session is left untouched.
//
// Source failures never surface here; the only error is ctx's.
func (s *Session) PerformSearch(ctx context.Context, query string) error {
	s.mu.Lock()
	s.seq++
	id := s.seq
	if strings.TrimSpace(query) == "" {
		s.results = []models.SearchResult{}
		s.searching = false
		s.mu.Unlock()
		return nil
	}
	s.searching = true
	filters := s.filters.Clone()
	s.mu.Unlock()

	start := time.Now()
	results, err := s.engine.Search(ctx, query, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.seq {
		s.logger.Debug("discarding stale search",
			zap.String("query", query),
			zap.Uint64("request", id),
			zap.Uint64("latest", s.seq))
		return err
	}
	s.searching = false
	if err != nil {
		return err
	}
	s.results = results
	s.logger.Debug("search completed",
		zap.String("query", query),
		zap.Int("results", len(results)),
		zap.Duration("took", time.Since(start)))
	return nil
}

// ClearSearch resets the query and results. Any search still in flight is abandoned.
func (s *Session) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.query = ""
	s.results = []models.SearchResult{}
	s.searching = false
}

// Results returns a copy of the current ranked results.
func (s *Session) Results() []models.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}

// IsSearching reports whether the latest search is still running.
func (s *Session) IsSearching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searching
}

// RecentSearches returns the history, newest first.
func (s *Session) RecentSearches() []string {
	return s.history.List()
}

// AddRecentSearch records query in the history.
func (s *Session) AddRecentSearch(query string) {
	s.history.Add(query)
}

// Filters returns a copy of the active filters.
func (s *Session) Filters() models.SearchFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

// SetFilters replaces the active filters. Current results keep their order; the new sort
// applies from the next search.
func (s *Session) SetFilters(f models.SearchFilters) {
	f = f.Normalized().Clone()
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
}

// ApplyFilters runs the active filters over items. It does not change the session.
func (s *Session) ApplyFilters(items []models.Item) []models.Item {
	return filter.Apply(items, s.Filters())
}

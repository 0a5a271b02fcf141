// Package source provides the entity collections the search engine scans: in-memory lists,
// fixture files, REST endpoints and the built-in navigation pages.
package source

import (
	"context"
	"slices"

	"github.com/hyperjump/tafuta/internal/models"
)

// Source supplies the current snapshot of one entity collection. Fetch may block on I/O and
// makes no promise about ordering or freshness.
type Source interface {
	// Name identifies the source in logs and status output.
	Name() string
	// Type is the entity type of every item the source returns.
	Type() models.EntityType
	// Fetch returns the collection snapshot.
	Fetch(ctx context.Context) ([]models.Item, error)
}

// FetchFunc fetches a collection snapshot.
type FetchFunc func(ctx context.Context) ([]models.Item, error)

type funcSource struct {
	name  string
	typ   models.EntityType
	fetch FetchFunc
}

// NewFunc adapts fetch into a Source.
func NewFunc(name string, typ models.EntityType, fetch FetchFunc) Source {
	return &funcSource{name: name, typ: typ, fetch: fetch}
}

func (s *funcSource) Name() string            { return s.name }
func (s *funcSource) Type() models.EntityType { return s.typ }

func (s *funcSource) Fetch(ctx context.Context) ([]models.Item, error) {
	return s.fetch(ctx)
}

// Static is a fixed in-memory collection.
type Static struct {
	name  string
	typ   models.EntityType
	items []models.Item
}

// NewStatic creates a Static source over items.
func NewStatic(name string, typ models.EntityType, items ...models.Item) *Static {
	return &Static{name: name, typ: typ, items: items}
}

func (s *Static) Name() string            { return s.name }
func (s *Static) Type() models.EntityType { return s.typ }

// Fetch returns a copy of the items; it fails only when ctx is already done.
func (s *Static) Fetch(ctx context.Context) ([]models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.items), nil
}

// OfType returns the sources in list whose type is t.
func OfType(list []Source, t models.EntityType) []Source {
	var out []Source
	for _, s := range list {
		if s.Type() == t {
			out = append(out, s)
		}
	}
	return out
}

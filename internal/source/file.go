package source

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/hyperjump/tafuta/internal/models"
)

// File serves a collection loaded from a YAML or JSON fixture file. Reload re-reads the file;
// a failed reload keeps the previous snapshot.
type File struct {
	name string
	typ  models.EntityType
	path string

	mu    sync.RWMutex
	items []models.Item
}

// NewFile creates a File source and loads path.
func NewFile(name string, typ models.EntityType, path string) (*File, error) {
	f := &File{name: name, typ: typ, path: path}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Name() string            { return f.name }
func (f *File) Type() models.EntityType { return f.typ }

// Path returns the fixture file path.
func (f *File) Path() string { return f.path }

// Reload re-reads the fixture file and swaps in the new snapshot.
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read %s fixture: %w", f.typ, err)
	}
	items, err := models.DecodeItemsYAML(f.typ, data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", f.path, err)
	}
	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
	return nil
}

func (f *File) Fetch(ctx context.Context) ([]models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.items), nil
}

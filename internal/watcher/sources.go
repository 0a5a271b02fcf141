package watcher

import (
	"path/filepath"

	"github.com/hyperjump/tafuta/internal/source"
	"go.uber.org/zap"
)

// ForSources returns a watcher that reloads each file source when its fixture changes. A reload
// that fails is logged and the source keeps serving its previous snapshot.
func ForSources(files []*source.File, opts ...WatcherOption) *Watcher {
	byPath := make(map[string][]*source.File, len(files))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p := f.Path()
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		p = filepath.Clean(p)
		if _, ok := byPath[p]; !ok {
			paths = append(paths, p)
		}
		byPath[p] = append(byPath[p], f)
	}

	var w *Watcher
	w = NewWatcher(paths, func(path string) {
		for _, f := range byPath[path] {
			if err := f.Reload(); err != nil {
				w.logger.Warn("fixture reload failed",
					zap.String("source", f.Name()),
					zap.String("path", path),
					zap.Error(err))
				continue
			}
			w.logger.Info("fixture reloaded", zap.String("source", f.Name()), zap.String("path", path))
		}
	}, opts...)
	return w
}

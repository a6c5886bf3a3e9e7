package resource

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// DefaultSources returns the data sources the service always
// advertises when neither storage tier can enumerate any.
func DefaultSources() []string {
	return []string{"gss", "yrbs", "mtf"}
}

// ListSources enumerates the available data sources. Unlike document
// resolution, listing tries the object store first, then the local
// data directory, then the static defaults. A remote listing fault
// degrades to the local tier with a warning rather than failing the
// request.
func (r *Resolver) ListSources(ctx context.Context) ([]string, error) {
	if r.store != nil {
		dirs, err := r.store.ListDirs(ctx, r.paths.Prefix)
		if err != nil {
			r.logger.Warn("remote source listing failed",
				zap.String("prefix", r.paths.Prefix),
				zap.Error(err))
		} else if len(dirs) > 0 {
			return dirs, nil
		}
	}

	entries, err := os.ReadDir(r.paths.Dir)
	switch {
	case err == nil:
		sources := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				sources = append(sources, entry.Name())
			}
		}
		if len(sources) > 0 {
			return sources, nil
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("list local sources: %w", err)
	}

	return DefaultSources(), nil
}

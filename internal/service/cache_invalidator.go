package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/church-cms/internal/events"
	"github.com/spec-kit/church-cms/internal/resource"
)

// CacheInvalidator drops cached content projections whenever an entity
// mutates. Deletes can cascade into other entity types (a removed page takes
// its content blocks with it), so every public list key is invalidated rather
// than tracking the dependency graph.
type CacheInvalidator struct {
	cache  ContentCache
	logger *zap.Logger
	keys   []string
}

// NewCacheInvalidator builds the invalidator for all public descriptors.
func NewCacheInvalidator(cache ContentCache, logger *zap.Logger) *CacheInvalidator {
	keys := make([]string, 0)
	for _, desc := range resource.Registry() {
		if desc.PublicRead {
			keys = append(keys, ListCacheKey(desc.Path))
		}
	}
	return &CacheInvalidator{cache: cache, logger: logger, keys: keys}
}

// RegisterHandlers subscribes to content change events.
func (ci *CacheInvalidator) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil || ci.cache == nil {
		return
	}
	dispatcher.Subscribe(events.EventContentChanged, ci.handleContentChanged)
}

func (ci *CacheInvalidator) handleContentChanged(ctx context.Context, event events.Event) error {
	if err := ci.cache.Invalidate(ctx, ci.keys...); err != nil {
		ci.logger.Warn("content cache invalidation failed",
			zap.String("resource", event.Resource),
			zap.Error(err))
		return err
	}
	return nil
}

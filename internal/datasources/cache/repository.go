// Package cache keeps recently listed articles, tags and sources in memory
// in front of a slower DatasetRepository.
package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
)

var _ datasources.DatasetRepository = (*Repository)(nil)

const (
	articlesKey = "articles"
	tagsKey     = "tags"
	sourcesKey  = "sources"
)

// Repository is a read-through cache. Only successful results are stored, so a
// failed fetch is retried on the next call instead of being served as empty data.
type Repository struct {
	next  datasources.DatasetRepository
	items *gocache.Cache
}

func New(next datasources.DatasetRepository, ttl time.Duration) *Repository {
	return &Repository{
		next:  next,
		items: gocache.New(ttl, 2*ttl),
	}
}

func (r *Repository) ListArticles(ctx context.Context) ([]domain.Article, error) {
	return readThrough(ctx, r.items, articlesKey, r.next.ListArticles)
}

func (r *Repository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return readThrough(ctx, r.items, tagsKey, r.next.ListTags)
}

func (r *Repository) ListSources(ctx context.Context) ([]domain.Source, error) {
	return readThrough(ctx, r.items, sourcesKey, r.next.ListSources)
}

// Flush drops every cached list.
func (r *Repository) Flush() {
	r.items.Flush()
}

func readThrough[T any](
	ctx context.Context,
	items *gocache.Cache,
	key string,
	load func(context.Context) ([]T, error),
) ([]T, error) {
	if cached, ok := items.Get(key); ok {
		if values, ok := cached.([]T); ok {
			return append(make([]T, 0, len(values)), values...), nil
		}
	}

	values, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}

	items.SetDefault(key, values)
	logger := domain.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "cached dataset list", "key", key, "count", len(values))

	return append(make([]T, 0, len(values)), values...), nil
}

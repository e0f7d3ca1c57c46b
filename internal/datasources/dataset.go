package datasources

import (
	"context"

	"github.com/techcurrent/article-feed/internal/domain"
)

//go:generate mockery

// DatasetRepository is the read side of the article store.
type DatasetRepository interface {
	ArticleLister
	TagLister
	SourceLister
}

// ArticleLister lists every article with its source and tags joined, newest identifier first.
// An empty store yields an empty slice and a nil error.
type ArticleLister interface {
	ListArticles(ctx context.Context) ([]domain.Article, error)
}

type TagLister interface {
	ListTags(ctx context.Context) ([]domain.Tag, error)
}

type SourceLister interface {
	ListSources(ctx context.Context) ([]domain.Source, error)
}

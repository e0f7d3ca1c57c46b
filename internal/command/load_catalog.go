package command

import (
	"context"
	"fmt"

	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Catalog is the article view derived from a selection, together with the
// reference lists needed to render the filter controls. A section whose fetch
// failed has its error set and is otherwise empty.
type Catalog struct {
	Articles  []domain.Article
	Tags      []domain.Tag
	Sources   []domain.Source
	Selection domain.SelectionState

	ArticlesErr error
	TagsErr     error
	SourcesErr  error
}

// Failed reports whether any section could not be fetched.
func (c Catalog) Failed() bool {
	return c.ArticlesErr != nil || c.TagsErr != nil || c.SourcesErr != nil
}

// LoadCatalog fetches articles, tags and sources concurrently and feeds each
// completion into a single Engine as soon as it arrives.
type LoadCatalog struct {
	Articles datasources.ArticleLister
	Tags     datasources.TagLister
	Sources  datasources.SourceLister
}

var _ Command[domain.SelectionState, Catalog] = (*LoadCatalog)(nil)

func NewLoadCatalog(dataset datasources.DatasetRepository) *LoadCatalog {
	return &LoadCatalog{
		Articles: dataset,
		Tags:     dataset,
		Sources:  dataset,
	}
}

type fetchCompleted struct {
	event    domain.Event
	resource domain.Resource
	err      error
}

// Execute returns an error only when ctx is cancelled; fetch failures are
// reported per section on the returned Catalog.
func (c *LoadCatalog) Execute(ctx context.Context, selection domain.SelectionState) (Catalog, error) {
	engine := domain.NewEngine()
	engine.SetSelection(selection)

	completions := make(chan fetchCompleted, 3)

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		articles, err := c.Articles.ListArticles(grpCtx)
		completions <- fetchCompleted{domain.ArticlesLoaded{Articles: articles}, domain.ResourceArticles, err}
		return nil
	})
	grp.Go(func() error {
		tags, err := c.Tags.ListTags(grpCtx)
		completions <- fetchCompleted{domain.TagsLoaded{Tags: tags}, domain.ResourceTags, err}
		return nil
	})
	grp.Go(func() error {
		sources, err := c.Sources.ListSources(grpCtx)
		completions <- fetchCompleted{domain.SourcesLoaded{Sources: sources}, domain.ResourceSources, err}
		return nil
	})
	go func() {
		_ = grp.Wait()
		close(completions)
	}()

	catalog := Catalog{}
	logger := domain.LoggerFromContext(ctx)
	for done := range completions {
		if done.err != nil {
			failure := &domain.FetchFailure{Resource: done.resource, Err: done.err}
			logger.WarnContext(ctx, "section unavailable", "resource", done.resource, "error", done.err)

			switch done.resource {
			case domain.ResourceArticles:
				catalog.ArticlesErr = failure
			case domain.ResourceTags:
				catalog.TagsErr = failure
			case domain.ResourceSources:
				catalog.SourcesErr = failure
			}
			continue
		}

		engine.Apply(done.event)
	}

	if err := ctx.Err(); err != nil {
		return Catalog{}, fmt.Errorf("loading catalog: %w", err)
	}

	catalog.Articles = engine.View()
	catalog.Tags = engine.Tags()
	catalog.Sources = engine.Sources()
	catalog.Selection = engine.Selection()

	return catalog, nil
}

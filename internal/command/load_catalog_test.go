package command

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/techcurrent/article-feed/internal/datasources/mocks"
	"github.com/techcurrent/article-feed/internal/domain"
)

func testContext() context.Context {
	return domain.ContextWithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func catalogArticles() []domain.Article {
	return []domain.Article{
		{ID: 3, Likes: 1, PublishedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Source: domain.Source{ID: 10}, Tags: []domain.Tag{{ID: 7}}},
		{ID: 2, Likes: 9, PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Source: domain.Source{ID: 11}, Tags: []domain.Tag{{ID: 7}}},
		{ID: 1, Likes: 5, PublishedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Source: domain.Source{ID: 10}, Tags: []domain.Tag{{ID: 8}}},
	}
}

func ids(articles []domain.Article) []int64 {
	out := make([]int64, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

func TestLoadCatalog_Execute(t *testing.T) {
	dbErr := errors.New("database error")

	cases := []struct {
		name         string
		selection    domain.SelectionState
		articlesErr  error
		tagsErr      error
		sourcesErr   error
		wantArticles []int64
		wantTags     int
		wantSources  int
	}{
		{
			name:         "everything_loaded_no_selection",
			selection:    domain.SelectionState{},
			wantArticles: []int64{3, 2, 1},
			wantTags:     2,
			wantSources:  2,
		},
		{
			name:         "selection_is_applied",
			selection:    domain.SelectionState{Tags: domain.NewIDSet(7), Sort: domain.SortByLikes},
			wantArticles: []int64{2, 3},
			wantTags:     2,
			wantSources:  2,
		},
		{
			name:         "combined_selection",
			selection:    domain.SelectionState{Tags: domain.NewIDSet(7), Sources: domain.NewIDSet(10)},
			wantArticles: []int64{3},
			wantTags:     2,
			wantSources:  2,
		},
		{
			name:         "articles_failure_keeps_tags_and_sources",
			articlesErr:  dbErr,
			wantArticles: []int64{},
			wantTags:     2,
			wantSources:  2,
		},
		{
			name:         "tags_failure_keeps_articles",
			selection:    domain.SelectionState{Sort: domain.SortByDate},
			tagsErr:      dbErr,
			wantArticles: []int64{3, 1, 2},
			wantTags:     0,
			wantSources:  2,
		},
		{
			name:         "everything_failed",
			articlesErr:  dbErr,
			tagsErr:      dbErr,
			sourcesErr:   dbErr,
			wantArticles: []int64{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			articles := mocks.NewMockArticleLister(t)
			tags := mocks.NewMockTagLister(t)
			sources := mocks.NewMockSourceLister(t)

			var articlesResult []domain.Article
			if tc.articlesErr == nil {
				articlesResult = catalogArticles()
			}
			var tagsResult []domain.Tag
			if tc.tagsErr == nil {
				tagsResult = []domain.Tag{{ID: 7, Name: "go"}, {ID: 8, Name: "rust"}}
			}
			var sourcesResult []domain.Source
			if tc.sourcesErr == nil {
				sourcesResult = []domain.Source{{ID: 10, Name: "zenn"}, {ID: 11, Name: "qiita"}}
			}

			articles.EXPECT().ListArticles(mock.Anything).Return(articlesResult, tc.articlesErr)
			tags.EXPECT().ListTags(mock.Anything).Return(tagsResult, tc.tagsErr)
			sources.EXPECT().ListSources(mock.Anything).Return(sourcesResult, tc.sourcesErr)

			cmd := &LoadCatalog{Articles: articles, Tags: tags, Sources: sources}
			catalog, err := cmd.Execute(testContext(), tc.selection)
			require.NoError(t, err)

			assert.Equal(t, tc.wantArticles, ids(catalog.Articles))
			assert.Len(t, catalog.Tags, tc.wantTags)
			assert.Len(t, catalog.Sources, tc.wantSources)
			assert.Equal(t, tc.selection.Sort, catalog.Selection.Sort)

			assert.Equal(t, tc.articlesErr != nil, domain.IsFetchFailure(catalog.ArticlesErr, domain.ResourceArticles))
			assert.Equal(t, tc.tagsErr != nil, domain.IsFetchFailure(catalog.TagsErr, domain.ResourceTags))
			assert.Equal(t, tc.sourcesErr != nil, domain.IsFetchFailure(catalog.SourcesErr, domain.ResourceSources))
			if tc.articlesErr != nil {
				assert.ErrorIs(t, catalog.ArticlesErr, dbErr)
			}
			assert.Equal(t, tc.articlesErr != nil || tc.tagsErr != nil || tc.sourcesErr != nil, catalog.Failed())
		})
	}
}

func TestLoadCatalog_ToleratesAnyCompletionOrder(t *testing.T) {
	articles := mocks.NewMockArticleLister(t)
	tags := mocks.NewMockTagLister(t)
	sources := mocks.NewMockSourceLister(t)

	// Articles resolve last, after tags and sources have already been applied.
	tagsDone := make(chan struct{})
	sourcesDone := make(chan struct{})

	tags.EXPECT().ListTags(mock.Anything).
		RunAndReturn(func(context.Context) ([]domain.Tag, error) {
			defer close(tagsDone)
			return []domain.Tag{{ID: 7}}, nil
		})
	sources.EXPECT().ListSources(mock.Anything).
		RunAndReturn(func(context.Context) ([]domain.Source, error) {
			defer close(sourcesDone)
			return []domain.Source{{ID: 10}}, nil
		})
	articles.EXPECT().ListArticles(mock.Anything).
		RunAndReturn(func(context.Context) ([]domain.Article, error) {
			<-tagsDone
			<-sourcesDone
			return catalogArticles(), nil
		})

	cmd := &LoadCatalog{Articles: articles, Tags: tags, Sources: sources}
	catalog, err := cmd.Execute(testContext(), domain.SelectionState{Sources: domain.NewIDSet(10)})
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 1}, ids(catalog.Articles))
	assert.Equal(t, []domain.Tag{{ID: 7}}, catalog.Tags)
	assert.Equal(t, []domain.Source{{ID: 10}}, catalog.Sources)
	assert.False(t, catalog.Failed())
}

func TestLoadCatalog_CancelledContext(t *testing.T) {
	articles := mocks.NewMockArticleLister(t)
	tags := mocks.NewMockTagLister(t)
	sources := mocks.NewMockSourceLister(t)

	articles.EXPECT().ListArticles(mock.Anything).Return(nil, context.Canceled).Maybe()
	tags.EXPECT().ListTags(mock.Anything).Return(nil, context.Canceled).Maybe()
	sources.EXPECT().ListSources(mock.Anything).Return(nil, context.Canceled).Maybe()

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	cmd := &LoadCatalog{Articles: articles, Tags: tags, Sources: sources}
	_, err := cmd.Execute(ctx, domain.SelectionState{})
	assert.ErrorIs(t, err, context.Canceled)
}

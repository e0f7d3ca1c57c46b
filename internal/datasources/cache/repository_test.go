package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/techcurrent/article-feed/internal/datasources/mocks"
	"github.com/techcurrent/article-feed/internal/domain"
)

type mockDataset struct {
	*mocks.MockArticleLister
	*mocks.MockTagLister
	*mocks.MockSourceLister
}

func newMockDataset(t *testing.T) mockDataset {
	return mockDataset{
		MockArticleLister: mocks.NewMockArticleLister(t),
		MockTagLister:     mocks.NewMockTagLister(t),
		MockSourceLister:  mocks.NewMockSourceLister(t),
	}
}

func TestRepository_CachesSuccessfulLists(t *testing.T) {
	ctx := context.Background()
	next := newMockDataset(t)

	next.MockArticleLister.EXPECT().ListArticles(mock.Anything).
		Return([]domain.Article{{ID: 2}, {ID: 1}}, nil).Once()
	next.MockTagLister.EXPECT().ListTags(mock.Anything).
		Return([]domain.Tag{{ID: 7, Name: "go"}}, nil).Once()
	next.MockSourceLister.EXPECT().ListSources(mock.Anything).
		Return([]domain.Source{}, nil).Once()

	repo := New(next, time.Minute)

	for range 3 {
		articles, err := repo.ListArticles(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Article{{ID: 2}, {ID: 1}}, articles)

		tags, err := repo.ListTags(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Tag{{ID: 7, Name: "go"}}, tags)

		sources, err := repo.ListSources(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Source{}, sources)
	}
}

func TestRepository_DoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	next := newMockDataset(t)

	next.MockTagLister.EXPECT().ListTags(mock.Anything).
		Return(nil, errors.New("database error")).Once()
	next.MockTagLister.EXPECT().ListTags(mock.Anything).
		Return([]domain.Tag{{ID: 7}}, nil).Once()

	repo := New(next, time.Minute)

	tags, err := repo.ListTags(ctx)
	assert.Error(t, err)
	assert.Nil(t, tags)

	tags, err = repo.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{ID: 7}}, tags)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	next := newMockDataset(t)

	next.MockArticleLister.EXPECT().ListArticles(mock.Anything).
		Return([]domain.Article{{ID: 1}, {ID: 2}}, nil).Once()

	repo := New(next, time.Minute)

	first, err := repo.ListArticles(ctx)
	require.NoError(t, err)
	first[0], first[1] = first[1], first[0]

	second, err := repo.ListArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Article{{ID: 1}, {ID: 2}}, second)
}

func TestRepository_Flush(t *testing.T) {
	ctx := context.Background()
	next := newMockDataset(t)

	next.MockSourceLister.EXPECT().ListSources(mock.Anything).
		Return([]domain.Source{{ID: 10}}, nil).Twice()

	repo := New(next, time.Minute)

	_, err := repo.ListSources(ctx)
	require.NoError(t, err)
	repo.Flush()
	_, err = repo.ListSources(ctx)
	require.NoError(t, err)
}

package controller

import (
	"net/http"
	"time"

	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
)

type ArticlesList struct {
	Lister      datasources.ArticleLister
	CacheMaxAge time.Duration
}

type ArticlesListResponse struct {
	Data     []domain.Article     `json:"data"`
	Metadata ArticlesListMetadata `json:"metadata"`
}

type ArticlesListMetadata struct {
	TotalRows int `json:"total_rows"`
}

func (c ArticlesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := c.Lister.ListArticles(r.Context())
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch articles", "error", err)

		writeMessage(w, r, http.StatusInternalServerError, "Error fetching articles")
		return
	}

	setPublicCacheControl(w, r, c.CacheMaxAge)
	writeJSON(w, r, http.StatusOK, ArticlesListResponse{
		Data:     articles,
		Metadata: ArticlesListMetadata{TotalRows: len(articles)},
	})
}

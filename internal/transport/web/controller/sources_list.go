package controller

import (
	"net/http"
	"time"

	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
)

type SourcesList struct {
	Lister      datasources.SourceLister
	CacheMaxAge time.Duration
}

type SourcesListResponse struct {
	Data []domain.Source `json:"data"`
}

func (c SourcesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sources, err := c.Lister.ListSources(r.Context())
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch sources", "error", err)

		writeMessage(w, r, http.StatusInternalServerError, "Error fetching sources")
		return
	}

	setPublicCacheControl(w, r, c.CacheMaxAge)
	writeJSON(w, r, http.StatusOK, SourcesListResponse{Data: sources})
}

package controller

import (
	"net/http"
	"time"

	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
)

type TagsList struct {
	Lister      datasources.TagLister
	CacheMaxAge time.Duration
}

type TagsListResponse struct {
	Data []domain.Tag `json:"data"`
}

func (c TagsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tags, err := c.Lister.ListTags(r.Context())
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch tags", "error", err)

		writeMessage(w, r, http.StatusInternalServerError, "Error fetching tags")
		return
	}

	setPublicCacheControl(w, r, c.CacheMaxAge)
	writeJSON(w, r, http.StatusOK, TagsListResponse{Data: tags})
}

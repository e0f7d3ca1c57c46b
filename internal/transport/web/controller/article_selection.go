package controller

import (
	"net/http"
	"time"

	"github.com/techcurrent/article-feed/internal/command"
	"github.com/techcurrent/article-feed/internal/domain"
)

// CatalogResponse carries each section independently. A section that could not be
// fetched is null and has a message under errors; an empty section is [].
type CatalogResponse struct {
	Articles  []domain.Article      `json:"articles"`
	Tags      []domain.Tag          `json:"tags"`
	Sources   []domain.Source       `json:"sources"`
	Selection domain.SelectionState `json:"selection"`
	Errors    CatalogErrors         `json:"errors"`
	UserID    string                `json:"user_id,omitempty"`
}

type CatalogErrors struct {
	Articles string `json:"articles,omitempty"`
	Tags     string `json:"tags,omitempty"`
	Sources  string `json:"sources,omitempty"`
}

func catalogResponse(catalog command.Catalog) CatalogResponse {
	res := CatalogResponse{
		Articles:  catalog.Articles,
		Tags:      catalog.Tags,
		Sources:   catalog.Sources,
		Selection: catalog.Selection,
	}
	if catalog.ArticlesErr != nil {
		res.Articles = nil
		res.Errors.Articles = "Error fetching articles"
	}
	if catalog.TagsErr != nil {
		res.Tags = nil
		res.Errors.Tags = "Error fetching tags"
	}
	if catalog.SourcesErr != nil {
		res.Sources = nil
		res.Errors.Sources = "Error fetching sources"
	}
	return res
}

// ArticleSelection serves the filtered, ordered article view for the selection
// given in the query string, e.g. ?tags=1,2&sources=10&sort=likes.
type ArticleSelection struct {
	Loader      command.Command[domain.SelectionState, command.Catalog]
	CacheMaxAge time.Duration
}

func (c ArticleSelection) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	selection, err := domain.SelectionStateFromQuery(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse selection in query string", "error", err)
		writeMessage(w, r, http.StatusBadRequest, err.Error())
		return
	}

	catalog, err := c.Loader.Execute(ctx, selection)
	if err != nil {
		logger.ErrorContext(ctx, "unable to load catalog", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !catalog.Failed() {
		setPublicCacheControl(w, r, c.CacheMaxAge)
	}
	writeJSON(w, r, http.StatusOK, catalogResponse(catalog))
}

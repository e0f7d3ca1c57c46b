package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/techcurrent/article-feed/internal/command"
	"github.com/techcurrent/article-feed/internal/domain"
)

type RSS struct {
	FeedHostname    string
	FeedPath        string
	FeedAuthorName  string
	FeedAuthorEmail string
	Loader          command.Command[domain.SelectionState, command.Catalog]
	CacheMaxAge     time.Duration
	Now             func() time.Time
}

func (c RSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	selection, err := domain.SelectionStateFromQuery(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse selection in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	catalog, err := c.Loader.Execute(ctx, selection)
	if err != nil {
		logger.ErrorContext(ctx, "unable to load catalog for feed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if catalog.ArticlesErr != nil {
		// A feed with zero items would read as "nothing new" to subscribers.
		logger.ErrorContext(ctx, "unable to fetch articles for feed", "error", catalog.ArticlesErr)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	feed := &feeds.Feed{
		Title:       feedTitle(catalog),
		Link:        &feeds.Link{Href: c.FeedHostname + c.FeedPath},
		Description: "Latest technology articles collected by TechCurrent",
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     now(),
	}

	for _, a := range catalog.Articles {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          strconv.FormatInt(a.ID, 10),
			IsPermaLink: "false",
			Title:       a.Title,
			Link:        &feeds.Link{Href: a.URL},
			Description: a.Summary,
			Author:      &feeds.Author{Name: a.Author},
			Created:     a.PublishedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	setPublicCacheControl(w, r, c.CacheMaxAge)

	if _, err := w.Write([]byte(rss)); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}

// feedTitle names the selected sources so that filtered feeds are distinguishable in a reader.
func feedTitle(catalog command.Catalog) string {
	const base = "TechCurrent"
	if len(catalog.Selection.Sources) == 0 {
		return base
	}

	var names []string
	for _, s := range catalog.Sources {
		if catalog.Selection.Sources.Has(s.ID) {
			names = append(names, s.Name)
		}
	}
	if len(names) == 0 {
		return base
	}
	return base + ": " + strings.Join(names, ", ")
}

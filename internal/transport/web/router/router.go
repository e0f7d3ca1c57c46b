package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/techcurrent/article-feed/internal/command"
	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
	"github.com/techcurrent/article-feed/internal/transport/web/controller"
)

type Config struct {
	RSSFeedBaseURL     string
	RSSFeedAuthorName  string
	RSSFeedAuthorEmail string
	LatestCacheMaxAge  time.Duration
	LoginURL           string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

type Commands struct {
	LoadCatalog    command.Command[domain.SelectionState, command.Catalog]
	CreateAPIToken command.Command[command.CreateAPITokenRequest, command.CreateAPITokenResponse]
	RevokeAPIToken command.Command[command.RevokeAPITokenRequest, command.Empty]
}

func MakeRouter(
	ctx context.Context,
	cfg Config,
	dataset datasources.DatasetRepository,
	tokens datasources.UserAPITokenLister,
	cmds Commands,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(requestLogMiddleware(ctx))
	r.Use(corsMiddleware)
	r.Use(rateLimitMiddleware(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	r.Use(authMiddleware)

	r.Handle("/v1/articles", controller.ArticlesList{
		Lister:      dataset,
		CacheMaxAge: cfg.LatestCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/articles/selection", controller.ArticleSelection{
		Loader:      cmds.LoadCatalog,
		CacheMaxAge: cfg.LatestCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/tags", controller.TagsList{
		Lister:      dataset,
		CacheMaxAge: cfg.LatestCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/sources", controller.SourcesList{
		Lister:      dataset,
		CacheMaxAge: cfg.LatestCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/tokens", requireAuthMiddleware(controller.APITokenList{
		Lister: tokens,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/tokens", requireAuthMiddleware(controller.APITokenCreate{
		Creator: cmds.CreateAPIToken,
	})).Methods(http.MethodPost)

	r.Handle("/v1/tokens/{token_id}", requireAuthMiddleware(controller.APITokenRevoke{
		Revoker: cmds.RevokeAPIToken,
	})).Methods(http.MethodDelete, http.MethodOptions)

	r.Handle("/protected", requireAuthRedirectMiddleware(cfg.LoginURL)(controller.Dashboard{
		Loader: cmds.LoadCatalog,
	})).Methods(http.MethodGet)

	rssFeeds := []controller.RSS{
		{
			FeedHostname:    cfg.RSSFeedBaseURL,
			FeedPath:        "/rss",
			FeedAuthorName:  cfg.RSSFeedAuthorName,
			FeedAuthorEmail: cfg.RSSFeedAuthorEmail,
			Loader:          cmds.LoadCatalog,
			CacheMaxAge:     cfg.LatestCacheMaxAge,
		},
	}

	for _, feed := range rssFeeds {
		r.Handle(feed.FeedPath, feed).Methods(http.MethodGet)
	}

	return r, nil
}

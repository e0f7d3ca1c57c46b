package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/techcurrent/article-feed/internal/command"
	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/datasources/cache"
	"github.com/techcurrent/article-feed/internal/datasources/database"
	"github.com/techcurrent/article-feed/internal/transport/web/router"
	"github.com/techcurrent/article-feed/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	store, err := setupDatabase(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up database: %w", err)
	}

	dataset := setupDatasetCache(ctx, store)

	authMiddleware, err := setupAuthMiddleware(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("setting up auth middleware: %w", err)
	}

	httpRouter, err := router.MakeRouter(
		ctx,
		router.Config{
			RSSFeedBaseURL:     MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
			RSSFeedAuthorName:  MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
			RSSFeedAuthorEmail: MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
			LatestCacheMaxAge:  MustGetEnvAsDuration(ctx, "LATEST_CACHE_MAX_AGE"),
			LoginURL:           MustGetEnvAsString(ctx, "LOGIN_URL"),
			RateLimitPerSecond: MustGetEnvAsFloat(ctx, "RATE_LIMIT_PER_SECOND"),
			RateLimitBurst:     MustGetEnvAsInt(ctx, "RATE_LIMIT_BURST"),
		},
		dataset,
		store,
		router.Commands{
			LoadCatalog:    command.NewLoadCatalog(dataset),
			CreateAPIToken: command.NewCreateAPIToken(store, store),
			RevokeAPIToken: command.NewRevokeAPIToken(store),
		},
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	var hostnames []string
	tlsDisabled := MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED")
	if !tlsDisabled {
		hostnames = MustGetEnvAsStrings(ctx, "HTTP_AUTOCERT_HOSTNAMES")
	}

	return []Component{
		&server.Server{
			TLSDisabled:       tlsDisabled,
			TLSDisabledPort:   MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostnames: hostnames,
			Router:            httpRouter,
		},
	}, nil
}

func setupDatabase(ctx context.Context) (*database.Repository, error) {
	driver := GetEnvAsStringOr("DATABASE_DRIVER", database.DriverMySQL)
	db, flavor, err := database.Connect(ctx, driver, MustGetEnvAsString(ctx, "DATABASE_URI"))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", driver, err)
	}
	return database.New(db, flavor), nil
}

// setupDatasetCache puts the in-memory cache in front of the store unless
// DATASET_CACHE_TTL is zero.
func setupDatasetCache(ctx context.Context, store datasources.DatasetRepository) datasources.DatasetRepository {
	ttl := MustGetEnvAsDuration(ctx, "DATASET_CACHE_TTL")
	if ttl <= 0 {
		return store
	}
	return cache.New(store, ttl)
}

func setupAuthMiddleware(
	ctx context.Context, tokens datasources.APITokenRepository,
) (func(http.Handler) http.Handler, error) {
	var validators []router.AuthValidator

	for _, driver := range MustGetEnvAsStrings(ctx, "AUTH_DRIVERS") {
		switch driver {
		case "auth0":
			v, err := router.NewAuth0Validator(
				MustGetEnvAsString(ctx, "AUTH0_DOMAIN"),
				MustGetEnvAsString(ctx, "AUTH0_AUDIENCE"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating Auth0 validator: %w", err)
			}
			validators = append(validators, v)
		case "api_token":
			validators = append(validators, router.NewAPITokenValidator(ctx, tokens, tokens, time.Now))
		default:
			return nil, fmt.Errorf("unknown auth driver [%s]", driver)
		}
	}

	return router.NewAuthMiddleware(validators), nil
}

package datasources

import (
	"context"
	"errors"
	"time"

	"github.com/techcurrent/article-feed/internal/domain"
)

// ErrAPITokenNotFound is returned when no token matches the lookup.
var ErrAPITokenNotFound = errors.New("api token not found")

type APITokenCreator interface {
	CreateAPIToken(ctx context.Context, token domain.APIToken) error
}

type APITokenByHashGetter interface {
	GetAPITokenByHash(ctx context.Context, tokenHash string) (domain.APIToken, error)
}

type APITokenLastUsedUpdater interface {
	UpdateAPITokenLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error
}

type UserAPITokenLister interface {
	ListUserAPITokens(ctx context.Context, userID string) ([]domain.APIToken, error)
}

// UserAPITokenCounter counts tokens that are neither revoked nor expired.
type UserAPITokenCounter interface {
	CountUserActiveAPITokens(ctx context.Context, userID string, now time.Time) (int64, error)
}

// APITokenRevoker revokes a token owned by userID; tokens of other users yield ErrAPITokenNotFound.
type APITokenRevoker interface {
	RevokeAPIToken(ctx context.Context, tokenID, userID string, revokedAt time.Time) error
}

type APITokenRepository interface {
	APITokenCreator
	APITokenByHashGetter
	APITokenLastUsedUpdater
	UserAPITokenLister
	UserAPITokenCounter
	APITokenRevoker
}

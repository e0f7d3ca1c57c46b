package command

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
)

// MaxAPITokensPerUser is the maximum number of active tokens a user can have.
const MaxAPITokensPerUser = 10

// ErrTokenLimitExceeded is returned when a user has reached the maximum number of active tokens.
var ErrTokenLimitExceeded = errors.New("user has reached maximum number of active tokens")

// APITokenPrefix is the prefix for API tokens in the Authorization header.
const APITokenPrefix = "user_api|"

type CreateAPITokenRequest struct {
	UserID    string
	Name      *string
	ExpiresIn time.Duration
}

type CreateAPITokenResponse struct {
	Token     domain.APIToken
	FullToken string
}

type CreateAPIToken struct {
	TokenCounter datasources.UserAPITokenCounter
	TokenCreator datasources.APITokenCreator
	Now          func() time.Time
}

var _ Command[CreateAPITokenRequest, CreateAPITokenResponse] = (*CreateAPIToken)(nil)

func NewCreateAPIToken(
	tokenCounter datasources.UserAPITokenCounter,
	tokenCreator datasources.APITokenCreator,
) *CreateAPIToken {
	return &CreateAPIToken{
		TokenCounter: tokenCounter,
		TokenCreator: tokenCreator,
		Now:          time.Now,
	}
}

// HashAPIToken returns the stored form of a full token.
func HashAPIToken(fullToken string) string {
	hash := sha256.Sum256([]byte(fullToken))
	return hex.EncodeToString(hash[:])
}

func (c *CreateAPIToken) Execute(ctx context.Context, req CreateAPITokenRequest) (CreateAPITokenResponse, error) {
	if req.UserID == "" {
		return CreateAPITokenResponse{}, domain.ErrAuthRequired
	}

	now := c.Now()

	count, err := c.TokenCounter.CountUserActiveAPITokens(ctx, req.UserID, now)
	if err != nil {
		return CreateAPITokenResponse{}, fmt.Errorf("counting user tokens: %w", err)
	}
	if count >= MaxAPITokensPerUser {
		return CreateAPITokenResponse{}, ErrTokenLimitExceeded
	}

	// 32 random bytes, 64 hex characters
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return CreateAPITokenResponse{}, fmt.Errorf("generating random token: %w", err)
	}
	tokenHex := hex.EncodeToString(tokenBytes)
	fullToken := APITokenPrefix + tokenHex

	token := domain.APIToken{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		TokenHash: HashAPIToken(fullToken),
		Prefix:    tokenHex[:8],
		Name:      req.Name,
		CreatedAt: now,
	}
	if req.ExpiresIn > 0 {
		expiresAt := now.Add(req.ExpiresIn)
		token.ExpiresAt = &expiresAt
	}

	if err := c.TokenCreator.CreateAPIToken(ctx, token); err != nil {
		return CreateAPITokenResponse{}, fmt.Errorf("creating token: %w", err)
	}

	return CreateAPITokenResponse{
		Token:     token,
		FullToken: fullToken,
	}, nil
}

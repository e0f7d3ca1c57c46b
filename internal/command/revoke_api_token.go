package command

import (
	"context"
	"fmt"
	"time"

	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
)

type RevokeAPITokenRequest struct {
	UserID  string
	TokenID string
}

type RevokeAPIToken struct {
	Revoker datasources.APITokenRevoker
	Now     func() time.Time
}

var _ Command[RevokeAPITokenRequest, Empty] = (*RevokeAPIToken)(nil)

func NewRevokeAPIToken(revoker datasources.APITokenRevoker) *RevokeAPIToken {
	return &RevokeAPIToken{Revoker: revoker, Now: time.Now}
}

func (c *RevokeAPIToken) Execute(ctx context.Context, req RevokeAPITokenRequest) (Empty, error) {
	if req.UserID == "" {
		return Empty{}, domain.ErrAuthRequired
	}

	if err := c.Revoker.RevokeAPIToken(ctx, req.TokenID, req.UserID, c.Now()); err != nil {
		return Empty{}, fmt.Errorf("revoking token [%s]: %w", req.TokenID, err)
	}
	return Empty{}, nil
}

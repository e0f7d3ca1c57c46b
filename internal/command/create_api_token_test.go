package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/datasources/mocks"
	"github.com/techcurrent/article-feed/internal/domain"
)

func TestCreateAPIToken_Execute(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	name := "laptop"

	cases := []struct {
		name        string
		req         CreateAPITokenRequest
		count       int64
		countErr    error
		createErr   error
		skipCount   bool
		skipCreate  bool
		wantErr     error
		wantExpires *time.Time
	}{
		{
			name:  "creates_token",
			req:   CreateAPITokenRequest{UserID: "user-1", Name: &name},
			count: 2,
		},
		{
			name:        "creates_expiring_token",
			req:         CreateAPITokenRequest{UserID: "user-1", ExpiresIn: 24 * time.Hour},
			wantExpires: func() *time.Time { e := now.Add(24 * time.Hour); return &e }(),
		},
		{
			name:       "limit_reached",
			req:        CreateAPITokenRequest{UserID: "user-1"},
			count:      MaxAPITokensPerUser,
			skipCreate: true,
			wantErr:    ErrTokenLimitExceeded,
		},
		{
			name:       "anonymous_user",
			req:        CreateAPITokenRequest{},
			skipCount:  true,
			skipCreate: true,
			wantErr:    domain.ErrAuthRequired,
		},
		{
			name:       "count_error",
			req:        CreateAPITokenRequest{UserID: "user-1"},
			countErr:   errors.New("database error"),
			skipCreate: true,
		},
		{
			name:      "create_error",
			req:       CreateAPITokenRequest{UserID: "user-1"},
			createErr: errors.New("database error"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			counter := mocks.NewMockUserAPITokenCounter(t)
			creator := mocks.NewMockAPITokenCreator(t)

			if !tc.skipCount {
				counter.EXPECT().CountUserActiveAPITokens(mock.Anything, tc.req.UserID, now).
					Return(tc.count, tc.countErr)
			}

			var stored domain.APIToken
			if !tc.skipCreate {
				creator.EXPECT().CreateAPIToken(mock.Anything, mock.Anything).
					Run(func(_ context.Context, token domain.APIToken) { stored = token }).
					Return(tc.createErr)
			}

			cmd := &CreateAPIToken{
				TokenCounter: counter,
				TokenCreator: creator,
				Now:          func() time.Time { return now },
			}
			res, err := cmd.Execute(context.Background(), tc.req)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			if tc.countErr != nil || tc.createErr != nil {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(res.FullToken, APITokenPrefix))
			assert.Len(t, res.FullToken, len(APITokenPrefix)+64)
			assert.Equal(t, res.FullToken[len(APITokenPrefix):len(APITokenPrefix)+8], res.Token.Prefix)
			assert.Equal(t, HashAPIToken(res.FullToken), stored.TokenHash)
			assert.NotEqual(t, res.FullToken, stored.TokenHash)
			assert.Equal(t, tc.req.UserID, stored.UserID)
			assert.Equal(t, tc.req.Name, stored.Name)
			assert.Equal(t, now, stored.CreatedAt)
			assert.Equal(t, tc.wantExpires, stored.ExpiresAt)
			assert.NotEmpty(t, stored.ID)
			assert.Equal(t, stored, res.Token)
		})
	}
}

func TestRevokeAPIToken_Execute(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("revokes_own_token", func(t *testing.T) {
		revoker := mocks.NewMockAPITokenRevoker(t)
		revoker.EXPECT().RevokeAPIToken(mock.Anything, "tok-1", "user-1", now).Return(nil)

		cmd := &RevokeAPIToken{Revoker: revoker, Now: func() time.Time { return now }}
		_, err := cmd.Execute(context.Background(), RevokeAPITokenRequest{UserID: "user-1", TokenID: "tok-1"})
		assert.NoError(t, err)
	})

	t.Run("unknown_token", func(t *testing.T) {
		revoker := mocks.NewMockAPITokenRevoker(t)
		revoker.EXPECT().RevokeAPIToken(mock.Anything, "tok-1", "user-1", now).Return(datasources.ErrAPITokenNotFound)

		cmd := &RevokeAPIToken{Revoker: revoker, Now: func() time.Time { return now }}
		_, err := cmd.Execute(context.Background(), RevokeAPITokenRequest{UserID: "user-1", TokenID: "tok-1"})
		assert.ErrorIs(t, err, datasources.ErrAPITokenNotFound)
	})

	t.Run("anonymous_user", func(t *testing.T) {
		cmd := &RevokeAPIToken{Revoker: mocks.NewMockAPITokenRevoker(t), Now: func() time.Time { return now }}
		_, err := cmd.Execute(context.Background(), RevokeAPITokenRequest{TokenID: "tok-1"})
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})
}

package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/techcurrent/article-feed/internal/command"
	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/datasources/mocks"
	"github.com/techcurrent/article-feed/internal/domain"
)

var tokenTestNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestAPITokenCreate_ServeHTTP(t *testing.T) {
	cases := []struct {
		name         string
		body         string
		setupContext func(r *http.Request) *http.Request
		count        int64
		countErr     error
		createErr    error
		skipCount    bool
		skipCreate   bool
		wantStatus   int
		wantName     *string
		wantExpiry   bool
	}{
		{
			name:         "created_without_body",
			setupContext: testContextWithUserID("user123"),
			wantStatus:   http.StatusCreated,
		},
		{
			name:         "created_with_name_and_expiry",
			body:         `{"name":"ci","expires_in_days":30}`,
			setupContext: testContextWithUserID("user123"),
			wantStatus:   http.StatusCreated,
			wantName:     func() *string { s := "ci"; return &s }(),
			wantExpiry:   true,
		},
		{
			name:         "unauthenticated",
			setupContext: testContext(),
			skipCount:    true,
			skipCreate:   true,
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name:         "invalid_body",
			body:         `{"name":`,
			setupContext: testContextWithUserID("user123"),
			skipCount:    true,
			skipCreate:   true,
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:         "negative_expiry",
			body:         `{"expires_in_days":-1}`,
			setupContext: testContextWithUserID("user123"),
			skipCount:    true,
			skipCreate:   true,
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:         "limit_reached",
			setupContext: testContextWithUserID("user123"),
			count:        command.MaxAPITokensPerUser,
			skipCreate:   true,
			wantStatus:   http.StatusConflict,
		},
		{
			name:         "store_failure",
			setupContext: testContextWithUserID("user123"),
			createErr:    errors.New("database error"),
			wantStatus:   http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			counter := mocks.NewMockUserAPITokenCounter(t)
			creator := mocks.NewMockAPITokenCreator(t)

			if !tc.skipCount {
				counter.EXPECT().
					CountUserActiveAPITokens(mock.Anything, "user123", tokenTestNow).
					Return(tc.count, tc.countErr)
			}
			var stored domain.APIToken
			if !tc.skipCreate {
				creator.EXPECT().
					CreateAPIToken(mock.Anything, mock.AnythingOfType("domain.APIToken")).
					Run(func(_ context.Context, token domain.APIToken) { stored = token }).
					Return(tc.createErr)
			}

			controller := APITokenCreate{
				Creator: &command.CreateAPIToken{
					TokenCounter: counter,
					TokenCreator: creator,
					Now:          func() time.Time { return tokenTestNow },
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/v1/tokens", strings.NewReader(tc.body))
			req = tc.setupContext(req)
			rec := httptest.NewRecorder()

			controller.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus != http.StatusCreated {
				return
			}

			var response APITokenCreateResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.Equal(t, stored.ID, response.ID)
			assert.Equal(t, stored.Prefix, response.Prefix)
			assert.True(t, strings.HasPrefix(response.Token, command.APITokenPrefix))
			assert.Equal(t, command.HashAPIToken(response.Token), stored.TokenHash)
			assert.Equal(t, tc.wantName, stored.Name)

			if tc.wantExpiry {
				require.NotNil(t, response.ExpiresAt)
				assert.True(t, response.ExpiresAt.Equal(tokenTestNow.Add(30*24*time.Hour)))
			} else {
				assert.Nil(t, response.ExpiresAt)
			}
		})
	}
}

func TestAPITokenList_ServeHTTP(t *testing.T) {
	expired := tokenTestNow.Add(-time.Hour)
	name := "laptop"

	cases := []struct {
		name         string
		setupContext func(r *http.Request) *http.Request
		tokens       []domain.APIToken
		listErr      error
		skipList     bool
		wantStatus   int
		wantItems    []APITokenListItem
	}{
		{
			name:         "lists_tokens",
			setupContext: testContextWithUserID("user123"),
			tokens: []domain.APIToken{
				{ID: "tok-1", UserID: "user123", Prefix: "aaaa1111", Name: &name, CreatedAt: tokenTestNow},
				{ID: "tok-2", UserID: "user123", Prefix: "bbbb2222", CreatedAt: tokenTestNow, ExpiresAt: &expired},
			},
			wantStatus: http.StatusOK,
			wantItems: []APITokenListItem{
				{ID: "tok-1", Prefix: "aaaa1111", Name: &name, CreatedAt: tokenTestNow, Active: true},
				{ID: "tok-2", Prefix: "bbbb2222", CreatedAt: tokenTestNow, ExpiresAt: &expired, Active: false},
			},
		},
		{
			name:         "no_tokens",
			setupContext: testContextWithUserID("user123"),
			tokens:       []domain.APIToken{},
			wantStatus:   http.StatusOK,
			wantItems:    []APITokenListItem{},
		},
		{
			name:         "unauthenticated",
			setupContext: testContext(),
			skipList:     true,
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name:         "store_failure",
			setupContext: testContextWithUserID("user123"),
			listErr:      errors.New("database error"),
			wantStatus:   http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lister := mocks.NewMockUserAPITokenLister(t)
			if !tc.skipList {
				lister.EXPECT().ListUserAPITokens(mock.Anything, "user123").Return(tc.tokens, tc.listErr)
			}

			controller := APITokenList{
				Lister: lister,
				Now:    func() time.Time { return tokenTestNow },
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/tokens", nil)
			req = tc.setupContext(req)
			rec := httptest.NewRecorder()

			controller.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus != http.StatusOK {
				return
			}

			var response APITokenListResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			require.Len(t, response.Data, len(tc.wantItems))
			for i, want := range tc.wantItems {
				got := response.Data[i]
				assert.Equal(t, want.ID, got.ID)
				assert.Equal(t, want.Prefix, got.Prefix)
				assert.Equal(t, want.Name, got.Name)
				assert.Equal(t, want.Active, got.Active)
				assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
			}
			assert.NotContains(t, rec.Body.String(), "token_hash")
		})
	}
}

func TestAPITokenRevoke_ServeHTTP(t *testing.T) {
	cases := []struct {
		name         string
		setupContext func(r *http.Request) *http.Request
		revokeErr    error
		skipRevoke   bool
		wantStatus   int
	}{
		{
			name:         "revoked",
			setupContext: testContextWithUserID("user123"),
			wantStatus:   http.StatusNoContent,
		},
		{
			name:         "not_found",
			setupContext: testContextWithUserID("user123"),
			revokeErr:    datasources.ErrAPITokenNotFound,
			wantStatus:   http.StatusNotFound,
		},
		{
			name:         "store_failure",
			setupContext: testContextWithUserID("user123"),
			revokeErr:    errors.New("database error"),
			wantStatus:   http.StatusInternalServerError,
		},
		{
			name:         "unauthenticated",
			setupContext: testContext(),
			skipRevoke:   true,
			wantStatus:   http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			revoker := mocks.NewMockAPITokenRevoker(t)
			if !tc.skipRevoke {
				revoker.EXPECT().
					RevokeAPIToken(mock.Anything, "tok-1", "user123", tokenTestNow).
					Return(tc.revokeErr)
			}

			controller := APITokenRevoke{
				Revoker: &command.RevokeAPIToken{
					Revoker: revoker,
					Now:     func() time.Time { return tokenTestNow },
				},
			}

			req := httptest.NewRequest(http.MethodDelete, "/v1/tokens/tok-1", nil)
			req = tc.setupContext(req)
			req = mux.SetURLVars(req, map[string]string{"token_id": "tok-1"})
			rec := httptest.NewRecorder()

			controller.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_ServeHTTP(t *testing.T) {
	cases := []struct {
		name         string
		queryString  string
		setupContext func(r *http.Request) *http.Request
		expectLoad   bool
		wantStatus   int
		wantIDs      []int64
	}{
		{
			name:         "authenticated",
			setupContext: testContextWithUserID("user123"),
			expectLoad:   true,
			wantStatus:   http.StatusOK,
			wantIDs:      []int64{3, 2, 1},
		},
		{
			name:         "authenticated_with_selection",
			queryString:  "sources=10",
			setupContext: testContextWithUserID("user123"),
			expectLoad:   true,
			wantStatus:   http.StatusOK,
			wantIDs:      []int64{3},
		},
		{
			name:         "unauthenticated",
			setupContext: testContext(),
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name:         "invalid_selection",
			queryString:  "sort=random",
			setupContext: testContextWithUserID("user123"),
			wantStatus:   http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			controller := Dashboard{
				Loader: newTestLoader(t, defaultCatalogFixture(), tc.expectLoad),
			}

			req := httptest.NewRequest(http.MethodGet, "/protected?"+tc.queryString, nil)
			req = tc.setupContext(req)
			rec := httptest.NewRecorder()

			controller.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus != http.StatusOK {
				return
			}

			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

			var response CatalogResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.Equal(t, "user123", response.UserID)
			assert.Equal(t, tc.wantIDs, responseArticleIDs(response.Articles))
		})
	}
}

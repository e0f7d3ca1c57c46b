package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/techcurrent/article-feed/internal/command"
	"github.com/techcurrent/article-feed/internal/domain"
)

// APITokenCreateRequest is the JSON request body for creating a token.
type APITokenCreateRequest struct {
	Name          string `json:"name,omitempty"`
	ExpiresInDays int    `json:"expires_in_days,omitempty"`
}

// APITokenCreateResponse is the JSON response for a created token. The full
// token is only ever returned here.
type APITokenCreateResponse struct {
	ID        string     `json:"id"`
	Token     string     `json:"token"`
	Prefix    string     `json:"prefix"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// APITokenCreate handles POST /v1/tokens.
type APITokenCreate struct {
	Creator command.Command[command.CreateAPITokenRequest, command.CreateAPITokenResponse]
}

func (c APITokenCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	userID, err := domain.RequireUserID(ctx)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var body APITokenCreateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			logger.ErrorContext(ctx, "unable to parse request body", "error", err)
			writeMessage(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if body.ExpiresInDays < 0 {
		writeMessage(w, r, http.StatusBadRequest, "expires_in_days must not be negative")
		return
	}

	req := command.CreateAPITokenRequest{
		UserID:    userID,
		ExpiresIn: time.Duration(body.ExpiresInDays) * 24 * time.Hour,
	}
	if body.Name != "" {
		req.Name = &body.Name
	}

	result, err := c.Creator.Execute(ctx, req)
	if errors.Is(err, command.ErrTokenLimitExceeded) {
		logger.WarnContext(ctx, "api token limit reached", "user_id", userID)
		writeMessage(w, r, http.StatusConflict, err.Error())
		return
	} else if err != nil {
		logger.ErrorContext(ctx, "unable to create API token", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusCreated, APITokenCreateResponse{
		ID:        result.Token.ID,
		Token:     result.FullToken,
		Prefix:    result.Token.Prefix,
		ExpiresAt: result.Token.ExpiresAt,
	})
}

package controller

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/techcurrent/article-feed/internal/command"
	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
)

// APITokenRevoke handles DELETE /v1/tokens/{token_id}.
type APITokenRevoke struct {
	Revoker command.Command[command.RevokeAPITokenRequest, command.Empty]
}

func (c APITokenRevoke) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	userID, err := domain.RequireUserID(ctx)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	tokenID := mux.Vars(r)["token_id"]
	if tokenID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	_, err = c.Revoker.Execute(ctx, command.RevokeAPITokenRequest{UserID: userID, TokenID: tokenID})
	if errors.Is(err, datasources.ErrAPITokenNotFound) {
		writeMessage(w, r, http.StatusNotFound, "Token not found")
		return
	} else if err != nil {
		logger.ErrorContext(ctx, "unable to revoke API token", "error", err, "token_id", tokenID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package controller

import (
	"net/http"

	"github.com/techcurrent/article-feed/internal/command"
	"github.com/techcurrent/article-feed/internal/domain"
)

// Dashboard is the protected article view. It must be mounted behind middleware
// that redirects anonymous users; it still refuses to render without a user.
type Dashboard struct {
	Loader command.Command[domain.SelectionState, command.Catalog]
}

func (c Dashboard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	userID, err := domain.RequireUserID(ctx)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	selection, err := domain.SelectionStateFromQuery(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse selection in query string", "error", err)
		writeMessage(w, r, http.StatusBadRequest, err.Error())
		return
	}

	catalog, err := c.Loader.Execute(ctx, selection)
	if err != nil {
		logger.ErrorContext(ctx, "unable to load dashboard", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	res := catalogResponse(catalog)
	res.UserID = userID

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, r, http.StatusOK, res)
}

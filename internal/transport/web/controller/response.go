package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/techcurrent/article-feed/internal/domain"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, MessageResponse{Message: message})
}

// setPublicCacheControl marks anonymous responses as cacheable; per-user responses are never cached.
func setPublicCacheControl(w http.ResponseWriter, r *http.Request, maxAge time.Duration) {
	if domain.UserIDFromContext(r.Context()) == "" {
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))
	}
}

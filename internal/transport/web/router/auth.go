package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/techcurrent/article-feed/internal/command"
	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
)

const auth0TokenPrefix = "auth0|"

// AuthResult represents the result of a successful authentication.
type AuthResult struct {
	UserID string
	Method domain.AuthMethod
}

// AuthValidator attempts to validate the bearer token of a request.
// Returns nil, nil if this validator doesn't apply to the token.
// Returns AuthResult, nil on success.
// Returns nil, error if validation was attempted but failed.
type AuthValidator func(ctx context.Context, token string) (*AuthResult, error)

// NewAuthMiddleware attaches the authenticated user to the request context.
// Requests without credentials pass through unchanged, so endpoints that are
// public but personalise for logged in users share the same chain.
func NewAuthMiddleware(validators []AuthValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Headers that are not "Bearer <token>" carry no credentials we
			// understand, so the request continues as anonymous.
			token, err := jwtmiddleware.AuthHeaderTokenExtractor(r)
			if err != nil || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			for _, validate := range validators {
				result, err := validate(ctx, token)
				if result == nil && err == nil {
					continue
				}
				if err != nil {
					writeAuthError(w, r, err)
					return
				}

				ctx = domain.ContextWithUserID(ctx, result.UserID)
				ctx = domain.ContextWithAuthMethod(ctx, result.Method)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// Unrecognised token schemes are treated as anonymous.
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)
	logger.WarnContext(ctx, "authentication failed", "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if encErr := json.NewEncoder(w).Encode(map[string]string{"message": err.Error()}); encErr != nil {
		logger.ErrorContext(ctx, "unable to write response", "error", encErr)
	}
}

// NewAuth0Validator creates a validator for tokens of the form auth0|<jwt>.
func NewAuth0Validator(auth0Domain, auth0Audience string) (AuthValidator, error) {
	issuerURL, err := url.Parse("https://" + auth0Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{auth0Audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	return func(ctx context.Context, token string) (*AuthResult, error) {
		if !strings.HasPrefix(token, auth0TokenPrefix) {
			return nil, nil
		}

		validated, err := jwtValidator.ValidateToken(ctx, strings.TrimPrefix(token, auth0TokenPrefix))
		if err != nil {
			return nil, errors.New("invalid JWT token")
		}

		claims, ok := validated.(*validator.ValidatedClaims)
		if !ok || claims.RegisteredClaims.Subject == "" {
			return nil, errors.New("JWT token has no subject")
		}
		return &AuthResult{
			UserID: claims.RegisteredClaims.Subject,
			Method: domain.AuthMethodAuth0,
		}, nil
	}, nil
}

type tokenUse struct {
	tokenID string
	usedAt  time.Time
}

// NewAPITokenValidator creates a validator for tokens issued by CreateAPIToken.
// Last used times are recorded in the background until ctx is done; updates
// are dropped rather than delaying requests when the queue is full.
func NewAPITokenValidator(
	ctx context.Context,
	tokenGetter datasources.APITokenByHashGetter,
	lastUsedUpdater datasources.APITokenLastUsedUpdater,
	now func() time.Time,
) AuthValidator {
	uses := make(chan tokenUse, 100)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case use := <-uses:
				updateCtx := context.WithoutCancel(ctx)
				if err := lastUsedUpdater.UpdateAPITokenLastUsed(updateCtx, use.tokenID, use.usedAt); err != nil {
					logger := domain.LoggerFromContext(ctx).With("token", use.tokenID)
					logger.WarnContext(updateCtx, "failed to update last used time for token", "error", err)
				}
			}
		}
	}()

	return func(reqCtx context.Context, token string) (*AuthResult, error) {
		if !strings.HasPrefix(token, command.APITokenPrefix) {
			return nil, nil
		}

		stored, err := tokenGetter.GetAPITokenByHash(reqCtx, command.HashAPIToken(token))
		if err != nil {
			if !errors.Is(err, datasources.ErrAPITokenNotFound) {
				logger := domain.LoggerFromContext(reqCtx)
				logger.ErrorContext(reqCtx, "unable to look up API token", "error", err)
			}
			return nil, errors.New("invalid API token")
		}

		usedAt := now()
		if !stored.ActiveAt(usedAt) {
			return nil, errors.New("API token is revoked or expired")
		}

		select {
		case uses <- tokenUse{tokenID: stored.ID, usedAt: usedAt}:
		default:
		}

		return &AuthResult{
			UserID: stored.UserID,
			Method: domain.AuthMethodAPIToken,
		}, nil
	}
}

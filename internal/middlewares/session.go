package middlewares

//go:generate mockgen -source=session.go -destination=mock_session.go -package=middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-login-console/internal/logger"
	"github.com/sbilibin2017/gw-login-console/internal/models"
)

// TokenSource reads the stored access token.
type TokenSource interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// Tokener validates a stored access token.
type Tokener interface {
	Validate(ctx context.Context, tokenString string) error
}

// SessionMiddleware rejects requests with 401 unless a valid access token is stored.
func SessionMiddleware(store TokenSource, tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasSession(r.Context(), store, tokener) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(models.LoginErrorResponse{Error: "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionPageMiddleware redirects to /login unless a valid access token is stored.
// This is for HTML page routes; the JSON API uses SessionMiddleware.
func SessionPageMiddleware(store TokenSource, tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasSession(r.Context(), store, tokener) {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasSession(ctx context.Context, store TokenSource, tokener Tokener) bool {
	token, ok, err := store.Get(ctx, models.AccessTokenKey)
	if err != nil {
		logger.Log.Errorw("session check failed", "err", err)
		return false
	}
	if !ok || token == "" {
		logger.Log.Debugw("no stored access token")
		return false
	}
	if err := tokener.Validate(ctx, token); err != nil {
		logger.Log.Infow("stored access token rejected", "err", err)
		return false
	}
	return true
}

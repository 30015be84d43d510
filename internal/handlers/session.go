package handlers

//go:generate mockgen -source=session.go -destination=mock_session.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-login-console/internal/jwt"
	"github.com/sbilibin2017/gw-login-console/internal/logger"
	"github.com/sbilibin2017/gw-login-console/internal/models"
	"github.com/sbilibin2017/gw-login-console/internal/services"
)

// SessionManager defines access to the stored login state.
type SessionManager interface {
	Session(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
}

// ClaimsGetter reads claims from a stored token.
type ClaimsGetter interface {
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// NewGetSessionHandler returns an HTTP handler describing the stored session.
// @Summary Current session
// @Description Returns the stored user id and, for JWT tokens, subject and expiry
// @Tags session
// @Produce json
// @Success 200 {object} models.SessionResponse "Stored session"
// @Failure 401 {object} models.LoginErrorResponse "Not logged in"
// @Failure 500 {object} models.LoginErrorResponse "Internal server error"
// @Router /session [get]
func NewGetSessionHandler(sessions SessionManager, claims ClaimsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session, err := sessions.Session(ctx)
		if err != nil {
			if errors.Is(err, services.ErrNoSession) {
				writeJSON(w, http.StatusUnauthorized, models.LoginErrorResponse{Error: "Unauthorized"})
				return
			}
			logger.Log.Errorw("failed to read session", "error", err)
			writeJSON(w, http.StatusInternalServerError, models.LoginErrorResponse{Error: "Internal server error"})
			return
		}

		resp := models.SessionResponse{UserID: session.UserID}
		if c, err := claims.GetClaims(ctx, session.AccessToken); err == nil {
			resp.Subject = c.Subject
			resp.ExpiresAt = c.ExpiresAt
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// NewLogoutHandler returns an HTTP handler that removes the stored session.
// @Summary Log out
// @Description Removes the stored access token and user id
// @Tags session
// @Success 204 "Session removed"
// @Failure 500 {object} models.LoginErrorResponse "Internal server error"
// @Router /session [delete]
func NewLogoutHandler(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Logout(r.Context()); err != nil {
			logger.Log.Errorw("failed to log out", "error", err)
			writeJSON(w, http.StatusInternalServerError, models.LoginErrorResponse{Error: "Internal server error"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

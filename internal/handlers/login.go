package handlers

//go:generate mockgen -source=login.go -destination=mock_login.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-login-console/internal/async"
	"github.com/sbilibin2017/gw-login-console/internal/facades"
	"github.com/sbilibin2017/gw-login-console/internal/logger"
	"github.com/sbilibin2017/gw-login-console/internal/models"
	"github.com/sbilibin2017/gw-login-console/internal/services"
)

// LoginViewer defines the login view operations the handlers drive.
type LoginViewer interface {
	Login(ctx context.Context, email, password string) *async.Result[models.LoginResult]
	CleanErrors()
	Error() string
}

// NewLoginHandler returns an HTTP handler that performs a login attempt.
// @Summary Log in
// @Description Forwards the credentials to the authentication service and stores the returned token
// @Tags auth
// @Accept json
// @Produce json
// @Param credential body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginSuccessResponse "Token stored"
// @Failure 400 {object} models.LoginErrorResponse "Invalid request body"
// @Failure 401 {object} models.LoginErrorResponse "Rejected by the authentication service"
// @Failure 502 {object} models.LoginErrorResponse "Unexpected response from the authentication service"
// @Failure 503 {object} models.LoginErrorResponse "Authentication service unreachable"
// @Router /login [post]
func NewLoginHandler(view LoginViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.LoginErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		res, err := view.Login(r.Context(), req.Email, req.Password).Await(r.Context())
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Log.Infow("login request abandoned", "error", err)
				return
			}
			writeJSON(w, loginErrorStatus(err), models.LoginErrorResponse{
				Error: services.DisplayMessage(err),
			})
			return
		}

		writeJSON(w, http.StatusOK, models.LoginSuccessResponse{
			UserID: string(res.UserID),
		})
	}
}

// NewGetLoginStateHandler returns an HTTP handler that reports the displayed error.
// @Summary Login view state
// @Description Returns the error currently displayed by the login view
// @Tags auth
// @Produce json
// @Success 200 {object} models.LoginStateResponse "Current state"
// @Router /login [get]
func NewGetLoginStateHandler(view LoginViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.LoginStateResponse{
			Error: view.Error(),
		})
	}
}

// NewCleanErrorsHandler returns an HTTP handler that clears the displayed error.
// @Summary Clear login error
// @Description Resets the error displayed by the login view
// @Tags auth
// @Success 204 "Error cleared"
// @Router /login/error [delete]
func NewCleanErrorsHandler(view LoginViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.CleanErrors()
		w.WriteHeader(http.StatusNoContent)
	}
}

func loginErrorStatus(err error) int {
	var authErr *facades.AuthError
	if !errors.As(err, &authErr) {
		logger.Log.Errorw("internal server error", "err", err)
		return http.StatusInternalServerError
	}
	switch authErr.Kind {
	case facades.AuthErrorRejected:
		return http.StatusUnauthorized
	case facades.AuthErrorMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusServiceUnavailable
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "status", status, "error", err)
	}
}

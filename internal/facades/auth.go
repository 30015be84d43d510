package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-login-console/internal/async"
	"github.com/sbilibin2017/gw-login-console/internal/logger"
	"github.com/sbilibin2017/gw-login-console/internal/models"
)

const loginPath = "auth/login"

// HTTPDoer is the subset of *http.Client used by the facade.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// AuthHTTPFacade authenticates credentials against the backend over HTTP.
type AuthHTTPFacade struct {
	client   HTTPDoer
	loginURL string
}

// NewAuthHTTPFacade creates a facade for the API rooted at apiURL.
// A nil client means http.DefaultClient.
func NewAuthHTTPFacade(client HTTPDoer, apiURL string) *AuthHTTPFacade {
	if client == nil {
		client = http.DefaultClient
	}
	return &AuthHTTPFacade{
		client:   client,
		loginURL: strings.TrimRight(apiURL, "/") + "/" + loginPath,
	}
}

// LoginURL returns the endpoint login requests are posted to.
func (f *AuthHTTPFacade) LoginURL() string {
	return f.loginURL
}

// Login posts the credential pair to the login endpoint.
// The request runs on its own goroutine; the returned Result resolves with the
// decoded LoginResult on a 2xx response and with an *AuthError otherwise.
func (f *AuthHTTPFacade) Login(ctx context.Context, email, password string) *async.Result[models.LoginResult] {
	return async.Go(ctx, func(ctx context.Context) (models.LoginResult, error) {
		return f.login(ctx, email, password)
	})
}

// maxResponseBytes caps how much of a backend response is read.
const maxResponseBytes = 1 << 20

func (f *AuthHTTPFacade) login(ctx context.Context, email, password string) (models.LoginResult, error) {
	body, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.LoginResult{}, &AuthError{Kind: AuthErrorTransport, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.loginURL, bytes.NewReader(body))
	if err != nil {
		return models.LoginResult{}, &AuthError{Kind: AuthErrorTransport, Err: err}
	}
	reqID := logger.RequestID(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("login request failed", "request_id", reqID, "url", f.loginURL, "error", err)
		return models.LoginResult{}, &AuthError{Kind: AuthErrorTransport, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Log.Errorw("failed to read login response", "request_id", reqID, "status", resp.StatusCode, "error", err)
		return models.LoginResult{}, &AuthError{Kind: AuthErrorTransport, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var result models.LoginResult
		if err := json.Unmarshal(payload, &result); err != nil {
			logger.Log.Errorw("failed to decode login response", "request_id", reqID, "status", resp.StatusCode, "error", err)
			return models.LoginResult{}, &AuthError{Kind: AuthErrorMalformed, StatusCode: resp.StatusCode, Err: err}
		}
		logger.Log.Infow("login succeeded", "request_id", reqID, "status", resp.StatusCode, "user_id", result.UserID)
		return result, nil
	}

	authErr := decodeAuthError(resp.StatusCode, payload)
	logger.Log.Infow("login rejected",
		"request_id", reqID,
		"status", resp.StatusCode,
		"kind", authErr.Kind.String(),
		"message", authErr.Message,
	)
	return models.LoginResult{}, authErr
}

func decodeAuthError(status int, payload []byte) *AuthError {
	var body models.ErrorResponse
	if err := json.Unmarshal(payload, &body); err != nil {
		return &AuthError{Kind: AuthErrorMalformed, StatusCode: status, Err: err}
	}

	msg, ok := body.ErrorMessage()
	if !ok {
		return &AuthError{
			Kind:       AuthErrorMalformed,
			StatusCode: status,
			Err:        errors.New("response has no error message"),
		}
	}

	return &AuthError{Kind: AuthErrorRejected, StatusCode: status, Message: msg}
}

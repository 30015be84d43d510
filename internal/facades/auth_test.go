package facades

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sbilibin2017/gw-login-console/internal/logger"
	"github.com/sbilibin2017/gw-login-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake HTTP doer ---
type failingDoer struct {
	err error
}

func (d *failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, d.err
}

// --- Tests ---
func TestNewAuthHTTPFacade_LoginURL(t *testing.T) {
	tests := []struct {
		apiURL string
		want   string
	}{
		{"http://api.local/api/", "http://api.local/api/auth/login"},
		{"http://api.local/api", "http://api.local/api/auth/login"},
		{"http://api.local/api//", "http://api.local/api/auth/login"},
	}

	for _, tt := range tests {
		t.Run(tt.apiURL, func(t *testing.T) {
			f := NewAuthHTTPFacade(nil, tt.apiURL)
			assert.Equal(t, tt.want, f.LoginURL())
		})
	}
}

func TestAuthHTTPFacade_Login_Request(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"regular credentials", "john@example.com", "secret123"},
		{"empty credentials forwarded", "", ""},
		{"unicode and spaces untouched", "  jöhn@example.com ", "pä ss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)

				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/auth/login", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

				raw, err := io.ReadAll(r.Body)
				require.NoError(t, err)

				var body map[string]any
				require.NoError(t, json.Unmarshal(raw, &body))
				assert.Equal(t, map[string]any{"email": tt.email, "password": tt.password}, body)

				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"token":"abc","userId":"123"}`))
			}))
			defer srv.Close()

			f := NewAuthHTTPFacade(srv.Client(), srv.URL+"/api/")
			_, err := f.Login(context.Background(), tt.email, tt.password).Await(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestAuthHTTPFacade_Login_Responses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		want       models.LoginResult
		wantKind   AuthErrorKind
		wantMsg    string
		wantErr    bool
		wantStatus int
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"token":"abc","userId":"123"}`,
			want:   models.LoginResult{Token: "abc", UserID: "123"},
		},
		{
			name:   "success with numeric user id",
			status: http.StatusOK,
			body:   `{"token":"abc","userId":7,"isValid":true}`,
			want:   models.LoginResult{Token: "abc", UserID: "7"},
		},
		{
			name:   "created counts as success",
			status: http.StatusCreated,
			body:   `{"token":"t","userId":"u"}`,
			want:   models.LoginResult{Token: "t", UserID: "u"},
		},
		{
			name:       "nested error message",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"message":"Invalid credentials"}}`,
			wantErr:    true,
			wantKind:   AuthErrorRejected,
			wantMsg:    "Invalid credentials",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "top-level error message",
			status:     http.StatusUnauthorized,
			body:       `{"message":"Username or email not found"}`,
			wantErr:    true,
			wantKind:   AuthErrorRejected,
			wantMsg:    "Username or email not found",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "error body without message",
			status:     http.StatusInternalServerError,
			body:       `{"status":500}`,
			wantErr:    true,
			wantKind:   AuthErrorMalformed,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "error body not json",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantErr:    true,
			wantKind:   AuthErrorMalformed,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "success body not json",
			status:     http.StatusOK,
			body:       `not json`,
			wantErr:    true,
			wantKind:   AuthErrorMalformed,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewAuthHTTPFacade(srv.Client(), srv.URL+"/")
			got, err := f.Login(context.Background(), "john@example.com", "secret").Await(context.Background())

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.ErrorIs(t, err, ErrAuthenticationFailed)
			assert.Equal(t, tt.wantKind, authErr.Kind)
			assert.Equal(t, tt.wantMsg, authErr.Message)
			assert.Equal(t, tt.wantStatus, authErr.StatusCode)
			assert.Equal(t, models.LoginResult{}, got)
		})
	}
}

func TestAuthHTTPFacade_Login_TransportError(t *testing.T) {
	cause := errors.New("connection refused")
	f := NewAuthHTTPFacade(&failingDoer{err: cause}, "http://unreachable/")

	_, err := f.Login(context.Background(), "john@example.com", "secret").Await(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, AuthErrorTransport, authErr.Kind)
	assert.Zero(t, authErr.StatusCode)
	assert.ErrorIs(t, err, cause)
}

func TestAuthHTTPFacade_Login_IndependentRequests(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"token":"abc","userId":"1"}`))
	}))
	defer srv.Close()

	f := NewAuthHTTPFacade(srv.Client(), srv.URL)
	first := f.Login(context.Background(), "a@example.com", "p")
	second := f.Login(context.Background(), "a@example.com", "p")

	_, err := first.Await(context.Background())
	assert.NoError(t, err)
	_, err = second.Await(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestAuthError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AuthError
		want string
	}{
		{
			name: "rejected",
			err:  &AuthError{Kind: AuthErrorRejected, StatusCode: 401, Message: "Invalid password"},
			want: "authentication rejected (status 401): Invalid password",
		},
		{
			name: "malformed",
			err:  &AuthError{Kind: AuthErrorMalformed, StatusCode: 500},
			want: "malformed authentication response (status 500)",
		},
		{
			name: "transport",
			err:  &AuthError{Kind: AuthErrorTransport, Err: errors.New("dial tcp: refused")},
			want: "authentication request failed: dial tcp: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestAuthHTTPFacade_Login_PropagatesRequestID(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"token":"abc","userId":"1"}`))
	}))
	defer srv.Close()

	ctx := logger.WithRequestID(context.Background(), "req-42")
	_, err := NewAuthHTTPFacade(srv.Client(), srv.URL).Login(ctx, "a@example.com", "p").Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "req-42", <-got)
}

func TestAuthHTTPFacade_Login_OversizedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"token":"`+strings.Repeat("a", 2*maxResponseBytes)+`","userId":"1"}`)
	}))
	defer srv.Close()

	facade := NewAuthHTTPFacade(srv.Client(), srv.URL+"/api/")
	_, err := facade.Login(context.Background(), "a@b.c", "pw").Await(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, AuthErrorMalformed, authErr.Kind)
}

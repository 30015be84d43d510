package services

//go:generate mockgen -source=login.go -destination=mock_login.go -package=services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-login-console/internal/async"
	"github.com/sbilibin2017/gw-login-console/internal/facades"
	"github.com/sbilibin2017/gw-login-console/internal/logger"
	"github.com/sbilibin2017/gw-login-console/internal/models"
	"github.com/segmentio/kafka-go"
)

// Messages displayed when the server gives no usable message.
const (
	MsgMalformedResponse  = "unexpected response from authentication service"
	MsgServiceUnreachable = "authentication service unreachable"
)

// ErrNoSession is returned when the store holds no access token.
var ErrNoSession = errors.New("no active session")

// AuthClient authenticates a credential pair against the backend.
type AuthClient interface {
	Login(ctx context.Context, email, password string) *async.Result[models.LoginResult]
}

// Storage is the persistent key/value store the login state is written to.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// EventWriter defines a Kafka writer abstraction.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// LoginService holds the state of the login view and drives login attempts.
//
// The only retained state is the displayed error. Attempts are not serialized:
// whichever response resolves last determines the stored and displayed state.
type LoginService struct {
	client AuthClient
	store  Storage
	events EventWriter

	mu  sync.RWMutex
	err string

	// applyMu serializes attempt outcomes so the error and both stored keys
	// always come from the same attempt.
	applyMu sync.Mutex
}

// NewLoginService creates a new LoginService. events may be nil.
func NewLoginService(client AuthClient, store Storage, events EventWriter) *LoginService {
	return &LoginService{
		client: client,
		store:  store,
		events: events,
	}
}

// Error returns the currently displayed error, empty when none.
func (s *LoginService) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// CleanErrors resets the displayed error regardless of pending attempts.
func (s *LoginService) CleanErrors() {
	s.setError("")
}

func (s *LoginService) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// Login clears the displayed error and starts an attempt for the given credentials.
// The returned Result resolves with the attempt's outcome after the view state and
// the store have been updated.
func (s *LoginService) Login(ctx context.Context, email, password string) *async.Result[models.LoginResult] {
	s.CleanErrors()

	done, resolve := async.New[models.LoginResult]()

	// An attempt outlives its caller: the request and its side effects always complete.
	applyCtx := context.WithoutCancel(ctx)

	s.client.Login(applyCtx, email, password).Subscribe(
		func(res models.LoginResult) {
			s.onLoginSuccess(applyCtx, email, res)
			resolve(res, nil)
		},
		func(err error) {
			s.onLoginError(applyCtx, email, err)
			resolve(models.LoginResult{}, err)
		},
	)

	return done
}

func (s *LoginService) onLoginSuccess(ctx context.Context, email string, res models.LoginResult) {
	s.applyMu.Lock()
	s.setError("")
	// No rollback: a failed write leaves whatever the other write produced.
	if err := s.store.Set(ctx, models.AccessTokenKey, res.Token); err != nil {
		logger.Log.Errorw("failed to store access token", "key", models.AccessTokenKey, "error", err)
	}
	if err := s.store.Set(ctx, models.UserIDKey, string(res.UserID)); err != nil {
		logger.Log.Errorw("failed to store user id", "key", models.UserIDKey, "error", err)
	}
	s.applyMu.Unlock()

	logger.Log.Infow("login applied", "user_id", res.UserID)

	s.publishEvent(ctx, models.LoginEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Email:     email,
		Outcome:   models.LoginOutcomeSuccess,
		UserID:    string(res.UserID),
	})
}

func (s *LoginService) onLoginError(ctx context.Context, email string, err error) {
	msg := DisplayMessage(err)
	s.applyMu.Lock()
	s.setError(msg)
	s.applyMu.Unlock()

	logger.Log.Infow("login failed", "email", email, "display", msg, "error", err)

	s.publishEvent(ctx, models.LoginEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Email:     email,
		Outcome:   models.LoginOutcomeFailure,
		Reason:    msg,
	})
}

// DisplayMessage maps a failed attempt to the text shown to the user.
// Server supplied messages are shown verbatim.
func DisplayMessage(err error) string {
	var authErr *facades.AuthError
	if !errors.As(err, &authErr) {
		return MsgServiceUnreachable
	}
	switch authErr.Kind {
	case facades.AuthErrorRejected:
		return authErr.Message
	case facades.AuthErrorMalformed:
		return MsgMalformedResponse
	default:
		return MsgServiceUnreachable
	}
}

// publishEvent publishes a login event to Kafka.
func (s *LoginService) publishEvent(ctx context.Context, event models.LoginEvent) {
	if s.events == nil {
		logger.Log.Debugw("event writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal login event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Email),
		Value: data,
	}

	if err := s.events.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish login event", "event_id", event.EventID, "error", err)
		return
	}
	logger.Log.Debugw("login event published", "event_id", event.EventID, "outcome", event.Outcome)
}

// Session returns the login state currently held by the store.
func (s *LoginService) Session(ctx context.Context) (*models.Session, error) {
	token, ok, err := s.store.Get(ctx, models.AccessTokenKey)
	if err != nil {
		logger.Log.Errorw("failed to read access token", "error", err)
		return nil, err
	}
	if !ok || token == "" {
		return nil, ErrNoSession
	}

	userID, _, err := s.store.Get(ctx, models.UserIDKey)
	if err != nil {
		logger.Log.Errorw("failed to read user id", "error", err)
		return nil, err
	}

	return &models.Session{AccessToken: token, UserID: userID}, nil
}

// Logout removes the stored access token and user id.
func (s *LoginService) Logout(ctx context.Context) error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	if err := s.store.Remove(ctx, models.AccessTokenKey); err != nil {
		logger.Log.Errorw("failed to remove access token", "error", err)
		return err
	}
	if err := s.store.Remove(ctx, models.UserIDKey); err != nil {
		logger.Log.Errorw("failed to remove user id", "error", err)
		return err
	}
	return nil
}

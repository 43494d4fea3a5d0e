package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"portfolio/api/internal/config"
	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
	"portfolio/api/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	GetByID(ctx context.Context, id string) (models.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewAuthService(users UserStore, sessions SessionStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
	}
}

// Authenticate verifies the credentials against the stored scrypt hash.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// EstablishSession creates a durable session record and returns it. The
// session id is the opaque handle handed to the client as a cookie value.
func (s *AuthService) EstablishSession(ctx context.Context, user models.User) (models.Session, error) {
	token, err := security.NewSessionToken()
	if err != nil {
		return models.Session{}, err
	}

	session := models.Session{
		ID:        token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.cfg.Session.TTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return models.Session{}, err
	}

	return session, nil
}

// ResolveSession maps a session handle to its principal. A missing or
// expired session resolves to anonymous (nil user), never an error.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.GetByID(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		if err := s.sessions.DeleteByID(ctx, session.ID); err != nil {
			s.log.Warn().Err(err).Msg("delete expired session failed")
		}
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// TerminateSession is idempotent. Terminating a session that is already
// gone is not an error.
func (s *AuthService) TerminateSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByID(ctx, token)
}

// PurgeExpiredSessions removes sessions past their expiry.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, time.Now())
}

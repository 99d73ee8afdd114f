package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pjessen/partywords/internal/dependencies/clock"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/storage"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidSession     = errors.New("invalid session token")
	ErrNotElevated        = errors.New("host account required")
)

// Session ties a token to a user. Guests get a session on first contact;
// hosts get one by logging in with a registered account.
type Session struct {
	Token     string
	UserID    model.UserID
	Username  string
	AvatarURL string
	Host      bool
}

// Service issues guest identities and authenticates registered hosts.
// Sessions live in memory; host accounts persist through storage.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService creates a new auth Service
func NewService(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		clock:    clock,
		logger:   logger.With(slog.String("component", "auth")),
		sessions: make(map[string]*Session),
	}
}

// CreateGuestSession issues a session for an anonymous player
func (s *Service) CreateGuestSession(username, avatarURL string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		Token:     uuid.NewString(),
		UserID:    model.UserID(uuid.NewString()),
		Username:  username,
		AvatarURL: avatarURL,
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	s.logger.Debug("guest session created", slog.String("user_id", string(session.UserID)))
	return session, nil
}

// RegisterHost creates a host account with a bcrypt-hashed password
func (s *Service) RegisterHost(ctx context.Context, username, password, avatarURL string) (*model.HostAccount, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.storage.GetHostByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, model.ErrHostNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	host := &model.HostAccount{
		UserID:       model.UserID(uuid.NewString()),
		Username:     username,
		PasswordHash: string(hash),
		AvatarURL:    avatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.storage.SaveHost(ctx, host); err != nil {
		return nil, err
	}

	s.logger.Info("host registered", slog.String("user_id", string(host.UserID)))
	return host, nil
}

// Login verifies a host's credentials and issues an elevated session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	host, err := s.storage.GetHostByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, model.ErrHostNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(host.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		Token:     uuid.NewString(),
		UserID:    host.UserID,
		Username:  host.Username,
		AvatarURL: host.AvatarURL,
		Host:      true,
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	s.logger.Info("host logged in", slog.String("user_id", string(host.UserID)))
	return session, nil
}

// ValidateSession resolves a token to its session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidSession
	}
	return session, nil
}

// RequireHost resolves a token and rejects non-host sessions
func (s *Service) RequireHost(token string) (*Session, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	if !session.Host {
		return nil, ErrNotElevated
	}
	return session, nil
}

// RevokeSession forgets a token. Revoking an unknown token is a no-op.
func (s *Service) RevokeSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Member builds the membership identity carried into parties
func (sess *Session) Member() model.Member {
	return model.Member{
		UserID:    sess.UserID,
		Username:  sess.Username,
		AvatarURL: sess.AvatarURL,
		Role:      model.RoleUnassigned,
	}
}

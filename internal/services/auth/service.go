package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/lobby-accounts/internal/dependencies/clock"
	"github.com/mcoot/lobby-accounts/internal/dependencies/hasher"
	"github.com/mcoot/lobby-accounts/internal/dependencies/random"
	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// TokenLength is the length of generated access tokens
const TokenLength = 32

// Session is an issued access token bound to one account
type Session struct {
	Token     string
	Name      string
	Role      model.Role // role at login; callers are re-resolved from the store
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service issues, resolves and revokes access tokens
type Service struct {
	storage storage.Storage
	hasher  hasher.Hasher
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 30 * time.Minute,
	}
}

// New creates a new auth Service
func New(
	storage storage.Storage,
	hasher hasher.Hasher,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		hasher:          hasher,
		clock:           clock,
		random:          random,
		logger:          logger.With("component", "auth"),
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Login checks the account credentials and issues a new token
func (s *Service) Login(ctx context.Context, name, password string) (*Session, error) {
	player, err := s.storage.GetPlayer(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, player.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	session := s.createSession(player)
	s.logger.Info("token issued", "name", name, "role", player.Role)
	return session, nil
}

// ValidateSession checks if a token is valid and returns its session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Authenticate resolves a token to the caller it was issued to. The role set
// is read from the stored account, so a token never carries stale authority.
func (s *Service) Authenticate(ctx context.Context, token string) (model.Caller, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return model.Caller{}, err
	}

	player, err := s.storage.GetPlayer(ctx, session.Name)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			s.InvalidateSession(token)
			return model.Caller{}, ErrInvalidSession
		}
		return model.Caller{}, err
	}

	return model.Caller{
		Name:  player.Name,
		Roles: model.RoleSet{player.Role},
	}, nil
}

// InvalidateSession removes a single token
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// RevokeTokens removes every token issued to name. Revoking an account with
// no tokens is not an error.
func (s *Service) RevokeTokens(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	revoked := 0
	for token, session := range s.sessions {
		if session.Name == name {
			delete(s.sessions, token)
			revoked++
		}
	}
	s.mu.Unlock()

	if revoked > 0 {
		s.logger.Info("tokens revoked", "name", name, "count", revoked)
	}
	return nil
}

// createSession issues a token for a player
func (s *Service) createSession(player *model.Player) *Session {
	now := s.clock.Now()

	session := &Session{
		Token:     s.random.Token(TokenLength),
		Name:      player.Name,
		Role:      player.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// CleanExpiredSessions removes expired tokens (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// SessionDuration returns the lifetime of issued tokens
func (s *Service) SessionDuration() time.Duration {
	return s.sessionDuration
}

package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/lobby-accounts/internal/dependencies/clock"
	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/storage"
)

// Errors
var (
	ErrIdentifierMismatch = errors.New("game server is owned by another admin")
	ErrAdminRequired      = errors.New("only admins can manage game servers")
	ErrInvalidGameServer  = errors.New("invalid game server registration")
)

// SessionRemover drops every session running on a game server
type SessionRemover interface {
	RemoveSessionsForGame(ctx context.Context, game string) error
}

// Service tracks the game servers admins have registered
type Service struct {
	storage  storage.Storage
	sessions SessionRemover
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new registry Service
func New(storage storage.Storage, sessions SessionRemover, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		sessions: sessions,
		clock:    clock,
		logger:   logger.With("component", "registry"),
	}
}

// Register adds or replaces a game server. Re-registering is allowed for
// the owning admin only.
func (s *Service) Register(ctx context.Context, caller model.Caller, form model.GameServerForm) (*model.GameServer, error) {
	if !caller.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGameServer, err)
	}

	createdAt := s.clock.Now()
	existing, err := s.storage.GetGameServer(ctx, form.Name)
	switch {
	case err == nil:
		if existing.Owner != caller.Name {
			return nil, ErrIdentifierMismatch
		}
		createdAt = existing.CreatedAt
	case !errors.Is(err, model.ErrGameServerNotFound):
		return nil, err
	}

	gs := &model.GameServer{
		Name:        form.Name,
		DisplayName: form.DisplayName,
		Location:    form.Location,
		MinPlayers:  form.MinPlayers,
		MaxPlayers:  form.MaxPlayers,
		Owner:       caller.Name,
		CreatedAt:   createdAt,
	}
	if err := s.storage.SaveGameServer(ctx, gs); err != nil {
		return nil, err
	}

	s.logger.Info("game server registered", "game", gs.Name, "owner", gs.Owner)
	return gs, nil
}

// Get returns a registered game server
func (s *Service) Get(ctx context.Context, name string) (*model.GameServer, error) {
	return s.storage.GetGameServer(ctx, name)
}

// List returns every registered game server
func (s *Service) List(ctx context.Context) ([]*model.GameServer, error) {
	return s.storage.ListGameServers(ctx)
}

// Unregister removes a game server and its sessions. Only the owning admin
// may do so.
func (s *Service) Unregister(ctx context.Context, caller model.Caller, name string) error {
	if !caller.IsAdmin() {
		return ErrAdminRequired
	}
	return s.unregister(ctx, caller.Name, name)
}

// UnregisterAllOwnedBy removes every game server registered by owner,
// together with their sessions. Owners without registrations are fine.
func (s *Service) UnregisterAllOwnedBy(ctx context.Context, owner string) error {
	servers, err := s.storage.ListGameServers(ctx)
	if err != nil {
		return err
	}

	for _, gs := range servers {
		if gs.Owner != owner {
			continue
		}
		if err := s.unregister(ctx, owner, gs.Name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) unregister(ctx context.Context, owner, name string) error {
	gs, err := s.storage.GetGameServer(ctx, name)
	if err != nil {
		return err
	}
	if gs.Owner != owner {
		return ErrIdentifierMismatch
	}

	if err := s.sessions.RemoveSessionsForGame(ctx, name); err != nil {
		return fmt.Errorf("remove sessions of %s: %w", name, err)
	}
	if err := s.storage.DeleteGameServer(ctx, name); err != nil {
		return err
	}

	s.logger.Info("game server unregistered", "game", name, "owner", owner)
	return nil
}

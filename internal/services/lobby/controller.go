package lobby

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/lobby-accounts/internal/dependencies/clock"
	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/storage"
)

// Listener is told about every session change
type Listener interface {
	SessionChanged(event model.SessionEvent)
}

// Controller manages lobby sessions and their membership
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	newID   func() string

	mu        sync.RWMutex
	listeners []Listener
}

// NewController creates a new lobby Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		logger:  logger.With("component", "lobby"),
		newID:   uuid.NewString,
	}
}

// AddListener subscribes l to session events
func (c *Controller) AddListener(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

func (c *Controller) notify(eventType model.SessionEventType, id model.SessionID, player string) {
	event := model.SessionEvent{
		Type:      eventType,
		SessionID: id,
		Player:    player,
		Timestamp: c.clock.Now(),
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, l := range c.listeners {
		l.SessionChanged(event)
	}
}

// CreateSession opens a session on a registered game server with the
// creator as its first player
func (c *Controller) CreateSession(ctx context.Context, creator, game string) (*model.Session, error) {
	if _, err := c.storage.GetGameServer(ctx, game); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	session := &model.Session{
		ID:         model.SessionID(c.newID()),
		GameServer: game,
		Creator:    creator,
		Players:    []string{creator},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created", "session", session.ID, "game", game, "creator", creator)
	c.notify(model.EventSessionCreated, session.ID, creator)
	return session, nil
}

// GetSession retrieves a session by id
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// ListSessions returns every open or launched session
func (c *Controller) ListSessions(ctx context.Context) ([]*model.Session, error) {
	return c.storage.ListSessions(ctx)
}

// JoinSession adds a player to an unlaunched session
func (c *Controller) JoinSession(ctx context.Context, id model.SessionID, player string) error {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.Launched {
		return model.ErrSessionLaunched
	}
	if session.HasPlayer(player) {
		return model.ErrAlreadyInSession
	}

	gs, err := c.storage.GetGameServer(ctx, session.GameServer)
	if err != nil {
		return err
	}
	if len(session.Players) >= gs.MaxPlayers {
		return model.ErrSessionFull
	}

	session.Players = append(session.Players, player)
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.notify(model.EventPlayerJoined, id, player)
	return nil
}

// LeaveSession removes a player from an unlaunched session. When the
// creator leaves, the session is removed.
func (c *Controller) LeaveSession(ctx context.Context, id model.SessionID, player string) error {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.Launched {
		return model.ErrSessionLaunched
	}
	if !session.HasPlayer(player) {
		return model.ErrNotInSession
	}

	if session.Creator == player {
		return c.removeSession(ctx, session)
	}

	session.RemovePlayer(player)
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.notify(model.EventPlayerLeft, id, player)
	return nil
}

// LaunchSession starts the game. Only the creator may launch, and only
// once enough players have joined.
func (c *Controller) LaunchSession(ctx context.Context, id model.SessionID, requester string) error {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.Creator != requester {
		return model.ErrNotCreator
	}
	if session.Launched {
		return model.ErrSessionLaunched
	}

	gs, err := c.storage.GetGameServer(ctx, session.GameServer)
	if err != nil {
		return err
	}
	if len(session.Players) < gs.MinPlayers {
		return model.ErrTooFewPlayers
	}

	session.Launched = true
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("session launched", "session", id, "game", session.GameServer, "players", len(session.Players))
	c.notify(model.EventSessionLaunched, id, requester)
	return nil
}

// RemoveSessionsForGame drops every session of a game server, launched or not
func (c *Controller) RemoveSessionsForGame(ctx context.Context, game string) error {
	sessions, err := c.storage.ListSessions(ctx)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		if session.GameServer != game {
			continue
		}
		if err := c.removeSession(ctx, session); err != nil {
			return err
		}
	}
	return nil
}

// RemovePlayerFromAllSessions withdraws a player everywhere: sessions they
// created are removed, and they leave every unlaunched session they joined.
// Launched sessions keep their roster.
func (c *Controller) RemovePlayerFromAllSessions(ctx context.Context, player string) error {
	sessions, err := c.storage.ListSessions(ctx)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		switch {
		case session.Creator == player:
			if err := c.removeSession(ctx, session); err != nil {
				return err
			}
		case !session.Launched && session.HasPlayer(player):
			session.RemovePlayer(player)
			session.UpdatedAt = c.clock.Now()
			if err := c.storage.SaveSession(ctx, session); err != nil {
				return err
			}
			c.notify(model.EventPlayerLeft, session.ID, player)
		}
	}
	return nil
}

func (c *Controller) removeSession(ctx context.Context, session *model.Session) error {
	if err := c.storage.DeleteSession(ctx, session.ID); err != nil {
		return err
	}
	c.logger.Info("session removed", "session", session.ID, "game", session.GameServer)
	c.notify(model.EventSessionRemoved, session.ID, "")
	return nil
}

// ControllerInterface is the session manager surface used by handlers
type ControllerInterface interface {
	CreateSession(ctx context.Context, creator, game string) (*model.Session, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	ListSessions(ctx context.Context) ([]*model.Session, error)
	JoinSession(ctx context.Context, id model.SessionID, player string) error
	LeaveSession(ctx context.Context, id model.SessionID, player string) error
	LaunchSession(ctx context.Context, id model.SessionID, requester string) error
	RemoveSessionsForGame(ctx context.Context, game string) error
	RemovePlayerFromAllSessions(ctx context.Context, player string) error
}

var _ ControllerInterface = (*Controller)(nil)

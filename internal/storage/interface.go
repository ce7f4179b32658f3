package storage

import (
	"context"

	"github.com/mcoot/lobby-accounts/internal/model"
)

// Storage defines the interface for data persistence. Every operation is
// atomic per key; nothing spans keys transactionally.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, name string) (*model.Player, error)
	PlayerExists(ctx context.Context, name string) (bool, error)
	DeletePlayer(ctx context.Context, name string) error
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Game server operations
	SaveGameServer(ctx context.Context, gs *model.GameServer) error
	GetGameServer(ctx context.Context, name string) (*model.GameServer, error)
	DeleteGameServer(ctx context.Context, name string) error
	ListGameServers(ctx context.Context) ([]*model.GameServer, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	ListSessions(ctx context.Context) ([]*model.Session, error)
}

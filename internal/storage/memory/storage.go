package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on the way in and out so callers never share records.
type Storage struct {
	mu sync.RWMutex

	players     map[string]*model.Player
	gameServers map[string]*model.GameServer
	sessions    map[model.SessionID]*model.Session
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:     make(map[string]*model.Player),
		gameServers: make(map[string]*model.GameServer),
		sessions:    make(map[model.SessionID]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[p.Name] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) PlayerExists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.players[name]
	return ok, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, name)
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		p := *player
		players = append(players, &p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

// Game server operations

func (s *Storage) SaveGameServer(ctx context.Context, gs *model.GameServer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := *gs
	s.gameServers[g.Name] = &g
	return nil
}

func (s *Storage) GetGameServer(ctx context.Context, name string) (*model.GameServer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gs, ok := s.gameServers[name]
	if !ok {
		return nil, model.ErrGameServerNotFound
	}
	g := *gs
	return &g, nil
}

func (s *Storage) DeleteGameServer(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.gameServers, name)
	return nil
}

func (s *Storage) ListGameServers(ctx context.Context) ([]*model.GameServer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	servers := make([]*model.GameServer, 0, len(s.gameServers))
	for _, gs := range s.gameServers {
		g := *gs
		servers = append(servers, &g)
	}
	sort.Slice(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })
	return servers, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session.Clone())
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt) ||
			(sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) && sessions[i].ID < sessions[j].ID)
	})
	return sessions, nil
}

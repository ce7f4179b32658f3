package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	return s.saveIndexed(ctx, playerKey(player.Name), playersIndexKey(), player, 0)
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	var player model.Player
	if err := s.get(ctx, playerKey(name), &player); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (s *Storage) PlayerExists(ctx context.Context, name string) (bool, error) {
	exists, err := s.client.Exists(ctx, playerKey(name)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, name string) error {
	return s.deleteIndexed(ctx, playerKey(name), playersIndexKey())
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	values, err := s.listIndexed(ctx, playersIndexKey())
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		var player model.Player
		if err := json.Unmarshal([]byte(val), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

// Game server operations

func (s *Storage) SaveGameServer(ctx context.Context, gs *model.GameServer) error {
	return s.saveIndexed(ctx, gameServerKey(gs.Name), gameServersIndexKey(), gs, 0)
}

func (s *Storage) GetGameServer(ctx context.Context, name string) (*model.GameServer, error) {
	var gs model.GameServer
	if err := s.get(ctx, gameServerKey(name), &gs); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameServerNotFound
		}
		return nil, err
	}
	return &gs, nil
}

func (s *Storage) DeleteGameServer(ctx context.Context, name string) error {
	return s.deleteIndexed(ctx, gameServerKey(name), gameServersIndexKey())
}

func (s *Storage) ListGameServers(ctx context.Context) ([]*model.GameServer, error) {
	values, err := s.listIndexed(ctx, gameServersIndexKey())
	if err != nil {
		return nil, err
	}

	servers := make([]*model.GameServer, 0, len(values))
	for _, val := range values {
		var gs model.GameServer
		if err := json.Unmarshal([]byte(val), &gs); err != nil {
			continue
		}
		servers = append(servers, &gs)
	}
	sort.Slice(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })
	return servers, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	return s.saveIndexed(ctx, sessionKey(session.ID), sessionsIndexKey(), session, s.cfg.SessionTTL)
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	var session model.Session
	if err := s.get(ctx, sessionKey(id), &session); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	return s.deleteIndexed(ctx, sessionKey(id), sessionsIndexKey())
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.Session, error) {
	values, err := s.listIndexed(ctx, sessionsIndexKey())
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.Session, 0, len(values))
	for _, val := range values {
		var session model.Session
		if err := json.Unmarshal([]byte(val), &session); err != nil {
			continue
		}
		sessions = append(sessions, &session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt) ||
			(sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) && sessions[i].ID < sessions[j].ID)
	})
	return sessions, nil
}

// Helpers

func (s *Storage) get(ctx context.Context, key string, dst any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// saveIndexed writes the value and registers its key in the index set in one
// pipeline. A zero ttl means no expiry.
func (s *Storage) saveIndexed(ctx context.Context, key, indexKey string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.SAdd(ctx, indexKey, key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) deleteIndexed(ctx context.Context, key, indexKey string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, indexKey, key)
	_, err := pipe.Exec(ctx)
	return err
}

// listIndexed fetches every value referenced by an index set. Keys that have
// expired since being indexed are pruned from the index.
func (s *Storage) listIndexed(ctx context.Context, indexKey string) ([]string, error) {
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []string{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(values))
	var stale []any
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			stale = append(stale, keys[i])
			continue
		}
		result = append(result, str)
	}

	if len(stale) > 0 {
		_ = s.client.SRem(ctx, indexKey, stale...).Err()
	}

	return result, nil
}

package redis

import (
	"fmt"

	"github.com/mcoot/lobby-accounts/internal/model"
)

// Key prefix for all account-service data
const keyPrefix = "lsacc"

// playerKey returns the Redis key for a Player
func playerKey(name string) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, name)
}

// playersIndexKey returns the Redis key for the SET of player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// gameServerKey returns the Redis key for a GameServer
func gameServerKey(name string) string {
	return fmt.Sprintf("%s:gameserver:%s", keyPrefix, name)
}

// gameServersIndexKey returns the Redis key for the SET of game server keys
func gameServersIndexKey() string {
	return fmt.Sprintf("%s:idx:gameservers", keyPrefix)
}

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionsIndexKey returns the Redis key for the SET of session keys
func sessionsIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}

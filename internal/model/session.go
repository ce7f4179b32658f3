package model

import "time"

// SessionID identifies a lobby session
type SessionID string

// Session is a group of players gathering to play one game server
type Session struct {
	ID         SessionID
	GameServer string
	Creator    string
	Players    []string // includes the creator
	Launched   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasPlayer reports whether name is enrolled in the session
func (s *Session) HasPlayer(name string) bool {
	for _, p := range s.Players {
		if p == name {
			return true
		}
	}
	return false
}

// RemovePlayer drops name from the player list, reporting whether it was present
func (s *Session) RemovePlayer(name string) bool {
	for i, p := range s.Players {
		if p == name {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	c.Players = append([]string(nil), s.Players...)
	return &c
}

// SessionEventType identifies what happened to a session
type SessionEventType string

const (
	EventSessionCreated  SessionEventType = "session_created"
	EventPlayerJoined    SessionEventType = "player_joined"
	EventPlayerLeft      SessionEventType = "player_left"
	EventSessionLaunched SessionEventType = "session_launched"
	EventSessionRemoved  SessionEventType = "session_removed"
)

// SessionEvent is delivered to session listeners after every change
type SessionEvent struct {
	Type      SessionEventType `json:"type"`
	SessionID SessionID        `json:"session_id"`
	Player    string           `json:"player,omitempty"` // affected player, if any
	Timestamp time.Time        `json:"timestamp"`
}

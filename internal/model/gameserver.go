package model

import "time"

// GameServer is a game registered with the platform by an admin
type GameServer struct {
	Name        string // unique game name
	DisplayName string
	Location    string // base URL the game server listens on
	MinPlayers  int
	MaxPlayers  int
	Owner       string // name of the registering admin
	CreatedAt   time.Time
}

package response

import (
	"time"

	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/services/auth"
)

// Player represents an account in API responses. The password hash is
// never part of it.
type Player struct {
	Name            string    `json:"name"`
	PreferredColour string    `json:"preferredColour"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Name:            p.Name,
		PreferredColour: p.PreferredColour,
		Role:            string(p.Role),
		CreatedAt:       p.CreatedAt,
	}
}

// PlayersFromModel converts a list of players
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Colour is the body of a colour query
type Colour = model.ColourForm

// Token is the response for token issuance
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	Role        string `json:"role"`
}

// TokenFromSession creates a Token response from an auth session
func TokenFromSession(s *auth.Session) Token {
	return Token{
		AccessToken: s.Token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.ExpiresAt.Sub(s.CreatedAt).Seconds()),
		Role:        string(s.Role),
	}
}

// Roles is the response for a role query
type Roles struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// RolesFromCaller converts a resolved caller
func RolesFromCaller(c model.Caller) Roles {
	roles := make([]string, len(c.Roles))
	for i, r := range c.Roles {
		roles[i] = string(r)
	}
	return Roles{Name: c.Name, Roles: roles}
}

// GameServer represents a registered game server
type GameServer struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Location    string `json:"location"`
	MinPlayers  int    `json:"minPlayers"`
	MaxPlayers  int    `json:"maxPlayers"`
	Owner       string `json:"owner"`
}

// GameServerFromModel converts model.GameServer
func GameServerFromModel(gs *model.GameServer) GameServer {
	return GameServer{
		Name:        gs.Name,
		DisplayName: gs.DisplayName,
		Location:    gs.Location,
		MinPlayers:  gs.MinPlayers,
		MaxPlayers:  gs.MaxPlayers,
		Owner:       gs.Owner,
	}
}

// GameServersFromModel converts a list of game servers
func GameServersFromModel(servers []*model.GameServer) []GameServer {
	out := make([]GameServer, len(servers))
	for i, gs := range servers {
		out[i] = GameServerFromModel(gs)
	}
	return out
}

// Session represents a lobby session
type Session struct {
	ID         string    `json:"id"`
	GameServer string    `json:"gameServer"`
	Creator    string    `json:"creator"`
	Players    []string  `json:"players"`
	Launched   bool      `json:"launched"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session) Session {
	return Session{
		ID:         string(s.ID),
		GameServer: s.GameServer,
		Creator:    s.Creator,
		Players:    append([]string{}, s.Players...),
		Launched:   s.Launched,
		CreatedAt:  s.CreatedAt,
	}
}

// SessionsFromModel converts a list of sessions
func SessionsFromModel(sessions []*model.Session) []Session {
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = SessionFromModel(s)
	}
	return out
}

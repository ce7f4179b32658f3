package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case Token:
		o.printToken(v)
	case Roles:
		_, _ = fmt.Fprintf(o.w, "%s: %s\n", v.Name, strings.Join(v.Roles, ", "))
	case Colour:
		_, _ = fmt.Fprintln(o.w, v.Colour)
	case GameServer:
		o.printGameServer(v)
	case []GameServer:
		o.printGameServers(v)
	case Session:
		o.printSession(v)
	case []Session:
		o.printSessions(v)
	case HealthResult:
		_, _ = fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Name            string    `json:"name"`
	PreferredColour string    `json:"preferredColour"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Token response type
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Role        string `json:"role"`
}

// Roles response type
type Roles struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// Colour is both the colour request and response body
type Colour struct {
	Colour string `json:"colour"`
}

// GameServer response type
type GameServer struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Location    string `json:"location"`
	MinPlayers  int    `json:"minPlayers"`
	MaxPlayers  int    `json:"maxPlayers"`
	Owner       string `json:"owner,omitempty"`
}

// Session response type
type Session struct {
	ID         string    `json:"id"`
	GameServer string    `json:"gameServer"`
	Creator    string    `json:"creator"`
	Players    []string  `json:"players"`
	Launched   bool      `json:"launched"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	_, _ = fmt.Fprintf(o.w, "Name: %s\n", p.Name)
	_, _ = fmt.Fprintf(o.w, "Role: %s\n", p.Role)
	_, _ = fmt.Fprintf(o.w, "Colour: %s\n", p.PreferredColour)
}

func (o *Output) printPlayers(players []Player) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tROLE\tCOLOUR")
	for _, p := range players {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Role, p.PreferredColour)
	}
	_ = tw.Flush()
}

func (o *Output) printToken(t Token) {
	_, _ = fmt.Fprintf(o.w, "Logged in as %s\n", t.Role)
	_, _ = fmt.Fprintf(o.w, "Token expires in %s\n", time.Duration(t.ExpiresIn)*time.Second)
}

func (o *Output) printGameServer(gs GameServer) {
	_, _ = fmt.Fprintf(o.w, "Game server: %s\n", gs.Name)
	if gs.DisplayName != "" {
		_, _ = fmt.Fprintf(o.w, "Display name: %s\n", gs.DisplayName)
	}
	_, _ = fmt.Fprintf(o.w, "Location: %s\n", gs.Location)
	_, _ = fmt.Fprintf(o.w, "Players: %d-%d\n", gs.MinPlayers, gs.MaxPlayers)
	_, _ = fmt.Fprintf(o.w, "Owner: %s\n", gs.Owner)
}

func (o *Output) printGameServers(servers []GameServer) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tOWNER\tPLAYERS\tLOCATION")
	for _, gs := range servers {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d-%d\t%s\n", gs.Name, gs.Owner, gs.MinPlayers, gs.MaxPlayers, gs.Location)
	}
	_ = tw.Flush()
}

func (o *Output) printSession(s Session) {
	state := "waiting"
	if s.Launched {
		state = "launched"
	}
	_, _ = fmt.Fprintf(o.w, "Session: %s\n", s.ID)
	_, _ = fmt.Fprintf(o.w, "Game server: %s\n", s.GameServer)
	_, _ = fmt.Fprintf(o.w, "Creator: %s\n", s.Creator)
	_, _ = fmt.Fprintf(o.w, "State: %s\n", state)
	_, _ = fmt.Fprintf(o.w, "Players (%d): %s\n", len(s.Players), strings.Join(s.Players, ", "))
}

func (o *Output) printSessions(sessions []Session) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tGAME\tCREATOR\tPLAYERS\tLAUNCHED")
	for _, s := range sessions {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%t\n", s.ID, s.GameServer, s.Creator, len(s.Players), s.Launched)
	}
	_ = tw.Flush()
}

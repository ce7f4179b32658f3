package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/services/lobby"
)

// Broadcaster forwards session events to the hub as JSON
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

var _ lobby.Listener = (*Broadcaster)(nil)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// SessionChanged publishes event under its type name
func (b *Broadcaster) SessionChanged(event model.SessionEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("sse failed to encode session event",
			slog.String("session", string(event.SessionID)),
			slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent(string(event.Type), string(data))
}

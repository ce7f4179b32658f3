package lobby

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/lobby-accounts/internal/dependencies/mocks"
	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/storage/memory"
	"github.com/mcoot/lobby-accounts/internal/testutil"
)

type recordingListener struct {
	mu     sync.Mutex
	events []model.SessionEvent
}

func (l *recordingListener) SessionChanged(event model.SessionEvent) {
	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()
}

func (l *recordingListener) types() []model.SessionEventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.SessionEventType, len(l.events))
	for i, e := range l.events {
		out[i] = e.Type
	}
	return out
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	listener   *recordingListener
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.controller = NewController(s.storage, s.clock, testutil.NopLogger())
	s.listener = &recordingListener{}
	s.controller.AddListener(s.listener)
	s.ctx = context.Background()

	s.Require().NoError(s.storage.SaveGameServer(s.ctx, &model.GameServer{
		Name:       "splendor",
		MinPlayers: 2,
		MaxPlayers: 3,
		Owner:      "maex",
	}))
}

func (s *ControllerSuite) createSession(creator string) model.SessionID {
	session, err := s.controller.CreateSession(s.ctx, creator, "splendor")
	s.Require().NoError(err)
	return session.ID
}

func (s *ControllerSuite) session(id model.SessionID) *model.Session {
	session, err := s.controller.GetSession(s.ctx, id)
	s.Require().NoError(err)
	return session
}

func (s *ControllerSuite) sessionGone(id model.SessionID) bool {
	_, err := s.controller.GetSession(s.ctx, id)
	return err != nil
}

// CreateSession tests

func (s *ControllerSuite) TestCreateSessionEnrolsCreator() {
	session, err := s.controller.CreateSession(s.ctx, "alice", "splendor")
	s.Require().NoError(err)

	s.NotEmpty(session.ID)
	s.Equal("alice", session.Creator)
	s.Equal([]string{"alice"}, session.Players)
	s.False(session.Launched)
	s.Equal([]model.SessionEventType{model.EventSessionCreated}, s.listener.types())
}

func (s *ControllerSuite) TestCreateSessionUnknownGame() {
	_, err := s.controller.CreateSession(s.ctx, "alice", "nope")
	s.ErrorIs(err, model.ErrGameServerNotFound)
}

func (s *ControllerSuite) TestCreateSessionGeneratesDistinctIDs() {
	a := s.createSession("alice")
	b := s.createSession("alice")
	s.NotEqual(a, b)
}

// JoinSession / LeaveSession tests

func (s *ControllerSuite) TestJoinSession() {
	id := s.createSession("alice")

	s.Require().NoError(s.controller.JoinSession(s.ctx, id, "bob"))
	s.Equal([]string{"alice", "bob"}, s.session(id).Players)

	s.ErrorIs(s.controller.JoinSession(s.ctx, id, "bob"), model.ErrAlreadyInSession)
}

func (s *ControllerSuite) TestJoinSessionFull() {
	id := s.createSession("alice")
	_ = s.controller.JoinSession(s.ctx, id, "bob")
	_ = s.controller.JoinSession(s.ctx, id, "carol")

	s.ErrorIs(s.controller.JoinSession(s.ctx, id, "dave"), model.ErrSessionFull)
}

func (s *ControllerSuite) TestLeaveSessionByParticipant() {
	id := s.createSession("alice")
	_ = s.controller.JoinSession(s.ctx, id, "bob")

	s.Require().NoError(s.controller.LeaveSession(s.ctx, id, "bob"))
	s.Equal([]string{"alice"}, s.session(id).Players)

	s.ErrorIs(s.controller.LeaveSession(s.ctx, id, "bob"), model.ErrNotInSession)
}

func (s *ControllerSuite) TestLeaveSessionByCreatorRemovesSession() {
	id := s.createSession("alice")
	_ = s.controller.JoinSession(s.ctx, id, "bob")

	s.Require().NoError(s.controller.LeaveSession(s.ctx, id, "alice"))
	s.True(s.sessionGone(id))
	s.Contains(s.listener.types(), model.EventSessionRemoved)
}

// LaunchSession tests

func (s *ControllerSuite) TestLaunchSession() {
	id := s.createSession("alice")

	s.ErrorIs(s.controller.LaunchSession(s.ctx, id, "alice"), model.ErrTooFewPlayers)

	_ = s.controller.JoinSession(s.ctx, id, "bob")
	s.ErrorIs(s.controller.LaunchSession(s.ctx, id, "bob"), model.ErrNotCreator)

	s.Require().NoError(s.controller.LaunchSession(s.ctx, id, "alice"))
	s.True(s.session(id).Launched)

	s.ErrorIs(s.controller.LaunchSession(s.ctx, id, "alice"), model.ErrSessionLaunched)
	s.ErrorIs(s.controller.JoinSession(s.ctx, id, "carol"), model.ErrSessionLaunched)
	s.ErrorIs(s.controller.LeaveSession(s.ctx, id, "bob"), model.ErrSessionLaunched)
}

// RemoveSessionsForGame tests

func (s *ControllerSuite) TestRemoveSessionsForGame() {
	_ = s.storage.SaveGameServer(s.ctx, &model.GameServer{Name: "xox", MinPlayers: 1, MaxPlayers: 2})
	a := s.createSession("alice")
	other, _ := s.controller.CreateSession(s.ctx, "bob", "xox")

	s.Require().NoError(s.controller.RemoveSessionsForGame(s.ctx, "splendor"))

	s.True(s.sessionGone(a))
	s.False(s.sessionGone(other.ID))
}

// RemovePlayerFromAllSessions tests

func (s *ControllerSuite) TestRemovePlayerFromAllSessions() {
	created := s.createSession("alice")
	_ = s.controller.JoinSession(s.ctx, created, "bob")

	joined := s.createSession("bob")
	_ = s.controller.JoinSession(s.ctx, joined, "alice")

	launched := s.createSession("carol")
	_ = s.controller.JoinSession(s.ctx, launched, "alice")
	s.Require().NoError(s.controller.LaunchSession(s.ctx, launched, "carol"))

	untouched := s.createSession("dave")

	s.Require().NoError(s.controller.RemovePlayerFromAllSessions(s.ctx, "alice"))

	s.True(s.sessionGone(created), "sessions created by the player are removed")
	s.Equal([]string{"bob"}, s.session(joined).Players)
	s.Equal([]string{"carol", "alice"}, s.session(launched).Players, "launched sessions keep their roster")
	s.Equal([]string{"dave"}, s.session(untouched).Players)
}

func (s *ControllerSuite) TestRemovePlayerFromAllSessionsNotifies() {
	created := s.createSession("alice")
	joined := s.createSession("bob")
	_ = s.controller.JoinSession(s.ctx, joined, "alice")
	s.listener.events = nil

	s.Require().NoError(s.controller.RemovePlayerFromAllSessions(s.ctx, "alice"))

	s.ElementsMatch(
		[]model.SessionEventType{model.EventSessionRemoved, model.EventPlayerLeft},
		s.listener.types())
	for _, e := range s.listener.events {
		switch e.Type {
		case model.EventSessionRemoved:
			s.Equal(created, e.SessionID)
		case model.EventPlayerLeft:
			s.Equal(joined, e.SessionID)
			s.Equal("alice", e.Player)
		}
	}
}

func (s *ControllerSuite) TestRemovePlayerFromAllSessionsIsIdempotent() {
	_ = s.createSession("alice")

	s.Require().NoError(s.controller.RemovePlayerFromAllSessions(s.ctx, "alice"))
	s.Require().NoError(s.controller.RemovePlayerFromAllSessions(s.ctx, "alice"))
}

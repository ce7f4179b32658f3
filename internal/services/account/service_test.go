package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/lobby-accounts/internal/dependencies/mocks"
	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/storage/memory"
	"github.com/mcoot/lobby-accounts/internal/testutil"
)

// recorder collects collaborator calls in order
type recorder struct {
	calls []string
}

type fakeTokens struct {
	rec *recorder
	err error
}

func (f *fakeTokens) RevokeTokens(ctx context.Context, name string) error {
	f.rec.calls = append(f.rec.calls, "tokens:"+name)
	return f.err
}

type fakeRegistry struct {
	rec *recorder
	err error
}

func (f *fakeRegistry) UnregisterAllOwnedBy(ctx context.Context, name string) error {
	f.rec.calls = append(f.rec.calls, "registry:"+name)
	return f.err
}

type fakeSessions struct {
	rec *recorder
	err error
}

func (f *fakeSessions) RemovePlayerFromAllSessions(ctx context.Context, name string) error {
	f.rec.calls = append(f.rec.calls, "sessions:"+name)
	return f.err
}

var (
	admin = model.Caller{Name: "maex", Roles: model.RoleSet{model.RoleAdmin}}
	alice = model.Caller{Name: "alice", Roles: model.RoleSet{model.RolePlayer}}
	bob   = model.Caller{Name: "bob", Roles: model.RoleSet{model.RolePlayer}}
)

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	hasher   *mocks.MockHasher
	clock    *mocks.MockClock
	rec      *recorder
	tokens   *fakeTokens
	registry *fakeRegistry
	sessions *fakeSessions
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.hasher = mocks.NewMockHasher()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.rec = &recorder{}
	s.tokens = &fakeTokens{rec: s.rec}
	s.registry = &fakeRegistry{rec: s.rec}
	s.sessions = &fakeSessions{rec: s.rec}
	s.service = New(s.storage, s.hasher, s.tokens, s.registry, s.sessions, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	s.seed("maex", "Admin1!x", model.RoleAdmin)
	s.seed("alice", "Secret1!", model.RolePlayer)
}

func (s *ServiceSuite) seed(name, password string, role model.Role) {
	hash, _ := s.hasher.Hash(password)
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		Name:            name,
		PasswordHash:    hash,
		PreferredColour: "#000000",
		Role:            role,
	}))
}

func (s *ServiceSuite) exists(name string) bool {
	ok, err := s.storage.PlayerExists(s.ctx, name)
	s.Require().NoError(err)
	return ok
}

func (s *ServiceSuite) storedHash(name string) string {
	p, err := s.storage.GetPlayer(s.ctx, name)
	s.Require().NoError(err)
	return p.PasswordHash
}

func (s *ServiceSuite) assertRejected(err error, kind error, reason string) {
	s.Require().Error(err)
	s.ErrorIs(err, kind)
	s.Equal(reason, err.Error())
}

func carolForm() model.AccountForm {
	return model.AccountForm{
		Name:            "carol",
		Password:        "Secret1!",
		PreferredColour: "#112233",
		Role:            model.RoleAdmin,
	}
}

// ListPlayers tests

func (s *ServiceSuite) TestListPlayersAsAdmin() {
	players, err := s.service.ListPlayers(s.ctx, admin)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("alice", players[0].Name)
	s.Equal("maex", players[1].Name)
}

func (s *ServiceSuite) TestListPlayersForbiddenForPlayer() {
	_, err := s.service.ListPlayers(s.ctx, alice)
	s.assertRejected(err, model.ErrForbidden, reasonListForbidden)
}

// CreatePlayer tests

func (s *ServiceSuite) TestCreatePlayerSucceeds() {
	msg, err := s.service.CreatePlayer(s.ctx, admin, "carol", carolForm())
	s.Require().NoError(err)
	s.Equal(PlayerAdded, msg)

	s.True(s.exists("carol"))
	player, _ := s.storage.GetPlayer(s.ctx, "carol")
	s.Equal("#112233", player.PreferredColour)
	s.Equal(model.RoleAdmin, player.Role)
	s.Equal(s.clock.Now(), player.CreatedAt)
}

func (s *ServiceSuite) TestCreatePlayerNeverStoresPlaintext() {
	_, err := s.service.CreatePlayer(s.ctx, admin, "carol", carolForm())
	s.Require().NoError(err)

	hash := s.storedHash("carol")
	s.NotEqual("Secret1!", hash)
	s.True(s.hasher.Verify("Secret1!", hash))
}

func (s *ServiceSuite) TestCreatePlayerRequiresAdmin() {
	_, err := s.service.CreatePlayer(s.ctx, alice, "carol", carolForm())
	s.assertRejected(err, model.ErrForbidden, reasonCreateForbidden)
	s.False(s.exists("carol"))
}

func (s *ServiceSuite) TestCreatePlayerNameMismatch() {
	_, err := s.service.CreatePlayer(s.ctx, admin, "dave", carolForm())
	s.assertRejected(err, model.ErrValidation, reasonNameMismatch)
	s.False(s.exists("carol"))
	s.False(s.exists("dave"))
}

func (s *ServiceSuite) TestCreatePlayerMismatchWinsOverInvalidForm() {
	form := carolForm()
	form.Password = "weak"
	_, err := s.service.CreatePlayer(s.ctx, admin, "dave", form)
	s.assertRejected(err, model.ErrValidation, reasonNameMismatch)
}

func (s *ServiceSuite) TestCreatePlayerWeakPassword() {
	form := carolForm()
	form.Password = "password"
	_, err := s.service.CreatePlayer(s.ctx, admin, "carol", form)
	s.assertRejected(err, model.ErrValidation, model.ReasonPasswordPolicy)
	s.False(s.exists("carol"))
}

func (s *ServiceSuite) TestCreatePlayerBadColour() {
	form := carolForm()
	form.PreferredColour = "red"
	_, err := s.service.CreatePlayer(s.ctx, admin, "carol", form)
	s.assertRejected(err, model.ErrValidation, model.ReasonInvalidColour)
}

func (s *ServiceSuite) TestCreatePlayerInvalidFormWinsOverConflict() {
	form := carolForm()
	form.Name = "alice"
	form.PreferredColour = "#ZZZ"
	_, err := s.service.CreatePlayer(s.ctx, admin, "alice", form)
	s.assertRejected(err, model.ErrValidation, model.ReasonInvalidColour)
}

func (s *ServiceSuite) TestCreatePlayerNameTaken() {
	before := s.storedHash("alice")

	form := carolForm()
	form.Name = "alice"
	form.Password = "Other1!x"
	_, err := s.service.CreatePlayer(s.ctx, admin, "alice", form)
	s.assertRejected(err, model.ErrConflict, reasonNameTaken)

	s.Equal(before, s.storedHash("alice"))
	player, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(model.RolePlayer, player.Role)
}

func (s *ServiceSuite) TestCreatePlayerHashFailureWritesNothing() {
	s.hasher.FailHash = true
	_, err := s.service.CreatePlayer(s.ctx, admin, "carol", carolForm())
	s.Error(err)
	s.False(s.exists("carol"))
}

// EnsureAdmin tests

func (s *ServiceSuite) TestEnsureAdminCreatesMissingAdmin() {
	form := carolForm()
	form.Role = model.RolePlayer

	s.Require().NoError(s.service.EnsureAdmin(s.ctx, form))

	player, err := s.storage.GetPlayer(s.ctx, "carol")
	s.Require().NoError(err)
	s.Equal(model.RoleAdmin, player.Role)
}

func (s *ServiceSuite) TestEnsureAdminLeavesExistingAccount() {
	before := s.storedHash("maex")
	form := carolForm()
	form.Name = "maex"

	s.Require().NoError(s.service.EnsureAdmin(s.ctx, form))
	s.Equal(before, s.storedHash("maex"))
}

// DeletePlayer tests

func (s *ServiceSuite) TestDeletePlayerRunsCascadeInOrder() {
	err := s.service.DeletePlayer(s.ctx, admin, "alice")
	s.Require().NoError(err)

	s.Equal([]string{"tokens:alice", "registry:alice", "sessions:alice"}, s.rec.calls)
	s.False(s.exists("alice"))
}

func (s *ServiceSuite) TestDeletePlayerMissingTarget() {
	err := s.service.DeletePlayer(s.ctx, admin, "nobody")
	s.assertRejected(err, model.ErrNotFound, reasonDeleteNoSuchUser)
	s.Empty(s.rec.calls)
}

func (s *ServiceSuite) TestDeletePlayerAdminCannotRemoveSelf() {
	err := s.service.DeletePlayer(s.ctx, admin, "maex")
	s.assertRejected(err, model.ErrForbidden, reasonAdminSelfRemoval)
	s.Empty(s.rec.calls)
	s.True(s.exists("maex"))
}

func (s *ServiceSuite) TestDeletePlayerNonAdminCanRemoveSelf() {
	err := s.service.DeletePlayer(s.ctx, alice, "alice")
	s.Require().NoError(err)

	// Registry step is skipped for non-admin callers
	s.Equal([]string{"tokens:alice", "sessions:alice"}, s.rec.calls)
	s.False(s.exists("alice"))
}

func (s *ServiceSuite) TestDeletePlayerNonAdminCannotRemoveOthers() {
	s.seed("bob", "Secret1!", model.RolePlayer)

	err := s.service.DeletePlayer(s.ctx, bob, "alice")
	s.assertRejected(err, model.ErrForbidden, reasonDeleteForbidden)
	s.True(s.exists("alice"))
}

func (s *ServiceSuite) TestDeletePlayerAdminRemovesOtherAdmin() {
	s.seed("carol", "Secret1!", model.RoleAdmin)

	s.Require().NoError(s.service.DeletePlayer(s.ctx, admin, "carol"))
	s.False(s.exists("carol"))
}

func (s *ServiceSuite) TestDeletePlayerTokenFailureAborts() {
	s.tokens.err = errors.New("token store down")

	err := s.service.DeletePlayer(s.ctx, admin, "alice")
	s.assertRejected(err, model.ErrCascade, reasonTokenRevocation)
	s.Equal([]string{"tokens:alice"}, s.rec.calls)
	s.True(s.exists("alice"))
}

func (s *ServiceSuite) TestDeletePlayerRegistryFailureAborts() {
	mismatch := errors.New("identifier mismatch")
	s.registry.err = mismatch

	err := s.service.DeletePlayer(s.ctx, admin, "alice")
	s.assertRejected(err, model.ErrCascade, reasonRegistryMismatch)
	s.ErrorIs(err, mismatch)
	s.Equal([]string{"tokens:alice", "registry:alice"}, s.rec.calls)
	s.True(s.exists("alice"))
}

func (s *ServiceSuite) TestDeletePlayerSessionFailureAborts() {
	s.sessions.err = errors.New("session is locked")

	err := s.service.DeletePlayer(s.ctx, admin, "alice")
	s.assertRejected(err, model.ErrCascade, "session is locked")
	s.True(s.exists("alice"))
}

func (s *ServiceSuite) TestDeletePlayerRetryAfterCascadeFailure() {
	s.sessions.err = errors.New("session is locked")
	s.Require().Error(s.service.DeletePlayer(s.ctx, admin, "alice"))

	s.sessions.err = nil
	s.Require().NoError(s.service.DeletePlayer(s.ctx, admin, "alice"))
	s.False(s.exists("alice"))
}

func (s *ServiceSuite) TestDeletePlayerCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.service.DeletePlayer(ctx, admin, "alice")
	s.ErrorIs(err, context.Canceled)
	s.True(s.exists("alice"))
}

// UpdatePassword tests

func (s *ServiceSuite) TestUpdatePasswordSelf() {
	err := s.service.UpdatePassword(s.ctx, alice, "alice", model.PasswordForm{
		OldPassword:  "Secret1!",
		NextPassword: "Better2?",
	})
	s.Require().NoError(err)
	s.True(s.hasher.Verify("Better2?", s.storedHash("alice")))
}

func (s *ServiceSuite) TestUpdatePasswordAdminStillNeedsOldPassword() {
	before := s.storedHash("alice")

	err := s.service.UpdatePassword(s.ctx, admin, "alice", model.PasswordForm{
		OldPassword:  "Guess1!x",
		NextPassword: "Better2?",
	})
	s.assertRejected(err, model.ErrValidation, reasonPasswordIncorrect)
	s.Equal(before, s.storedHash("alice"))

	err = s.service.UpdatePassword(s.ctx, admin, "alice", model.PasswordForm{
		OldPassword:  "Secret1!",
		NextPassword: "Better2?",
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestUpdatePasswordMissingTarget() {
	err := s.service.UpdatePassword(s.ctx, admin, "nobody", model.PasswordForm{})
	s.assertRejected(err, model.ErrNotFound, reasonPasswordNoSuchUser)
}

func (s *ServiceSuite) TestUpdatePasswordOtherPlayerForbidden() {
	s.seed("bob", "Secret1!", model.RolePlayer)

	err := s.service.UpdatePassword(s.ctx, bob, "alice", model.PasswordForm{
		OldPassword:  "Secret1!",
		NextPassword: "Better2?",
	})
	s.assertRejected(err, model.ErrForbidden, reasonPasswordForbidden)
}

func (s *ServiceSuite) TestUpdatePasswordPolicy() {
	before := s.storedHash("alice")

	err := s.service.UpdatePassword(s.ctx, alice, "alice", model.PasswordForm{
		OldPassword:  "Secret1!",
		NextPassword: "weakpass",
	})
	s.assertRejected(err, model.ErrValidation, model.ReasonPasswordPolicy)
	s.Equal(before, s.storedHash("alice"))
}

func (s *ServiceSuite) TestUpdatePasswordRejectsNoOp() {
	before := s.storedHash("alice")

	err := s.service.UpdatePassword(s.ctx, alice, "alice", model.PasswordForm{
		OldPassword:  "Secret1!",
		NextPassword: "Secret1!",
	})
	s.assertRejected(err, model.ErrValidation, reasonPasswordUnchanged)
	s.Equal(before, s.storedHash("alice"))
}

func (s *ServiceSuite) TestUpdatePasswordWrongOldPassword() {
	before := s.storedHash("alice")

	err := s.service.UpdatePassword(s.ctx, alice, "alice", model.PasswordForm{
		OldPassword:  "Wrong1!x",
		NextPassword: "Better2?",
	})
	s.assertRejected(err, model.ErrValidation, reasonPasswordIncorrect)
	s.Equal(before, s.storedHash("alice"))
}

// Colour tests

func (s *ServiceSuite) TestUpdateColour() {
	tests := []struct {
		colour string
		valid  bool
	}{
		{"#A1B2C3", true},
		{"#abc", true},
		{"red", false},
		{"#ZZZ", false},
		{"", false},
	}

	for _, tt := range tests {
		err := s.service.UpdateColour(s.ctx, alice, "alice", tt.colour)
		if tt.valid {
			s.Require().NoError(err, tt.colour)
			colour, _ := s.service.GetColour(s.ctx, alice, "alice")
			s.Equal(tt.colour, colour)
		} else {
			s.assertRejected(err, model.ErrValidation, model.ReasonInvalidColour)
		}
	}
}

func (s *ServiceSuite) TestUpdateColourByOtherPlayerForbiddenRegardlessOfPayload() {
	s.seed("bob", "Secret1!", model.RolePlayer)

	for _, colour := range []string{"#A1B2C3", "red"} {
		err := s.service.UpdateColour(s.ctx, bob, "alice", colour)
		s.assertRejected(err, model.ErrForbidden, reasonColourForbidden)
	}

	colour, _ := s.service.GetColour(s.ctx, alice, "alice")
	s.Equal("#000000", colour)
}

func (s *ServiceSuite) TestUpdateColourByAdmin() {
	s.Require().NoError(s.service.UpdateColour(s.ctx, admin, "alice", "#FFFFFF"))
}

func (s *ServiceSuite) TestUpdateColourMissingTarget() {
	err := s.service.UpdateColour(s.ctx, admin, "nobody", "#FFFFFF")
	s.assertRejected(err, model.ErrNotFound, reasonColourNoSuchUser)
}

func (s *ServiceSuite) TestGetColourGate() {
	_, err := s.service.GetColour(s.ctx, bob, "alice")
	s.assertRejected(err, model.ErrForbidden, reasonColourQueryDenied)

	_, err = s.service.GetColour(s.ctx, bob, "nobody")
	s.assertRejected(err, model.ErrNotFound, reasonColourQueryMissing)

	colour, err := s.service.GetColour(s.ctx, admin, "alice")
	s.Require().NoError(err)
	s.Equal("#000000", colour)
}

// GetPlayer tests

func (s *ServiceSuite) TestGetPlayerSelfOrAdmin() {
	tests := []struct {
		caller  model.Caller
		allowed bool
	}{
		{alice, true},
		{bob, false},
		{model.Caller{Name: "bob", Roles: model.RoleSet{model.RoleAdmin}}, true},
	}

	for _, tt := range tests {
		player, err := s.service.GetPlayer(s.ctx, tt.caller, "alice")
		if tt.allowed {
			s.Require().NoError(err)
			s.Equal("alice", player.Name)
		} else {
			s.assertRejected(err, model.ErrForbidden, reasonDetailsForbidden)
		}
	}
}

func (s *ServiceSuite) TestGetPlayerMissingTarget() {
	_, err := s.service.GetPlayer(s.ctx, admin, "nobody")
	s.assertRejected(err, model.ErrNotFound, reasonDetailsNoSuchUser)
}

// Scenario: an admin created through the service cannot remove itself

func (s *ServiceSuite) TestCarolScenario() {
	_, err := s.service.CreatePlayer(s.ctx, admin, "carol", carolForm())
	s.Require().NoError(err)

	players, err := s.service.ListPlayers(s.ctx, admin)
	s.Require().NoError(err)
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	s.Contains(names, "carol")

	carol := model.Caller{Name: "carol", Roles: model.RoleSet{model.RoleAdmin}}
	err = s.service.DeletePlayer(s.ctx, carol, "carol")
	s.assertRejected(err, model.ErrForbidden, reasonAdminSelfRemoval)

	s.True(s.exists("carol"))
}

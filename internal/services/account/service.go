package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/lobby-accounts/internal/dependencies/clock"
	"github.com/mcoot/lobby-accounts/internal/dependencies/hasher"
	"github.com/mcoot/lobby-accounts/internal/model"
)

// Confirmation returned by a successful CreatePlayer
const PlayerAdded = "Player added."

// Rejection reasons
const (
	reasonListForbidden      = "Only admins can list all users."
	reasonCreateForbidden    = "Only admins can create users."
	reasonNameMismatch       = "Username mismatch, comparing body and URL parameters."
	reasonNameTaken          = "Name already taken."
	reasonDeleteNoSuchUser   = "User cannot be deleted. Does not exist."
	reasonDeleteForbidden    = "Only admins can remove other users."
	reasonAdminSelfRemoval   = "Admins are not allowed to remove themselves."
	reasonTokenRevocation    = "Implicit revocation of the user's tokens failed."
	reasonRegistryMismatch   = "Implicit of removal of associated games and sessions failed due to admin identifier mismatch."
	reasonPasswordNoSuchUser = "Password can not be updated. No such user."
	reasonPasswordForbidden  = "Only admins can update the password of other users."
	reasonPasswordUnchanged  = "New password must not be identical to old password."
	reasonPasswordIncorrect  = "Password can not be updated. Provided old password is incorrect."
	reasonColourNoSuchUser   = "Colour can not be updated. No such user."
	reasonColourForbidden    = "Colour can not be altered on behalf of another user."
	reasonColourQueryMissing = "Colour can not be queried. No such user."
	reasonColourQueryDenied  = "Colour can not be queried on behalf of another user."
	reasonDetailsNoSuchUser  = "User details can not be queried. No such user."
	reasonDetailsForbidden   = "User details can only be queried by admins or for one-self."
)

// Store is the identity store the service reads and mutates
type Store interface {
	PlayerExists(ctx context.Context, name string) (bool, error)
	GetPlayer(ctx context.Context, name string) (*model.Player, error)
	SavePlayer(ctx context.Context, player *model.Player) error
	DeletePlayer(ctx context.Context, name string) error
	ListPlayers(ctx context.Context) ([]*model.Player, error)
}

// TokenRevoker invalidates every token issued to an account
type TokenRevoker interface {
	RevokeTokens(ctx context.Context, name string) error
}

// RegistryManager removes game-server registrations owned by an admin
type RegistryManager interface {
	UnregisterAllOwnedBy(ctx context.Context, name string) error
}

// SessionManager withdraws a player from the lobby sessions they take part in
type SessionManager interface {
	RemovePlayerFromAllSessions(ctx context.Context, name string) error
}

// Service manages player accounts on behalf of authenticated callers
type Service struct {
	store    Store
	hasher   hasher.Hasher
	tokens   TokenRevoker
	registry RegistryManager
	sessions SessionManager
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new account Service
func New(
	store Store,
	hasher hasher.Hasher,
	tokens TokenRevoker,
	registry RegistryManager,
	sessions SessionManager,
	clock clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		registry: registry,
		sessions: sessions,
		clock:    clock,
		logger:   logger.With("component", "account"),
	}
}

// ListPlayers returns every account, sorted by name. Admin only.
func (s *Service) ListPlayers(ctx context.Context, caller model.Caller) ([]*model.Player, error) {
	if !caller.IsAdmin() {
		return nil, model.NewAccountError(model.ErrForbidden, reasonListForbidden)
	}
	return s.store.ListPlayers(ctx)
}

// CreatePlayer adds a new account under pathName. Admin only.
func (s *Service) CreatePlayer(ctx context.Context, caller model.Caller, pathName string, form model.AccountForm) (string, error) {
	if !caller.IsAdmin() {
		return "", model.NewAccountError(model.ErrForbidden, reasonCreateForbidden)
	}
	if pathName != form.Name {
		return "", model.NewAccountError(model.ErrValidation, reasonNameMismatch)
	}
	if err := form.Validate(); err != nil {
		return "", err
	}

	exists, err := s.store.PlayerExists(ctx, form.Name)
	if err != nil {
		return "", err
	}
	if exists {
		return "", model.NewAccountError(model.ErrConflict, reasonNameTaken)
	}

	if err := s.save(ctx, form); err != nil {
		return "", err
	}

	s.logger.Info("player created", "name", form.Name, "role", form.Role, "by", caller.Name)
	return PlayerAdded, nil
}

// EnsureAdmin creates the given admin account unless one with that name
// already exists. Used to seed a fresh store.
func (s *Service) EnsureAdmin(ctx context.Context, form model.AccountForm) error {
	form.Role = model.RoleAdmin
	if err := form.Validate(); err != nil {
		return err
	}

	exists, err := s.store.PlayerExists(ctx, form.Name)
	if err != nil || exists {
		return err
	}

	if err := s.save(ctx, form); err != nil {
		return err
	}
	s.logger.Info("admin account seeded", "name", form.Name)
	return nil
}

func (s *Service) save(ctx context.Context, form model.AccountForm) error {
	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	return s.store.SavePlayer(ctx, &model.Player{
		Name:            form.Name,
		PasswordHash:    hash,
		PreferredColour: form.PreferredColour,
		Role:            form.Role,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

// DeletePlayer removes an account and everything hanging off it: its tokens,
// the game servers it registered and its session memberships. The record is
// removed last, so a failed step leaves the account in place for a retry.
//
// Admins may remove anyone but themselves; players may only remove themselves.
func (s *Service) DeletePlayer(ctx context.Context, caller model.Caller, name string) error {
	exists, err := s.store.PlayerExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewAccountError(model.ErrNotFound, reasonDeleteNoSuchUser)
	}

	if caller.Name == name && caller.IsAdmin() {
		return model.NewAccountError(model.ErrForbidden, reasonAdminSelfRemoval)
	}
	if !caller.CanActOn(name) {
		return model.NewAccountError(model.ErrForbidden, reasonDeleteForbidden)
	}

	if err := runCascade(ctx, s.deletionCascade(caller, name)); err != nil {
		s.logger.Warn("player deletion aborted", "name", name, "by", caller.Name, "error", err)
		return err
	}

	if err := s.store.DeletePlayer(ctx, name); err != nil {
		return err
	}

	s.logger.Info("player deleted", "name", name, "by", caller.Name)
	return nil
}

// UpdatePassword replaces the password of name. The current password must
// always be proven, whoever the caller is.
func (s *Service) UpdatePassword(ctx context.Context, caller model.Caller, name string, form model.PasswordForm) error {
	player, err := s.lookup(ctx, name, reasonPasswordNoSuchUser)
	if err != nil {
		return err
	}
	if !caller.CanActOn(name) {
		return model.NewAccountError(model.ErrForbidden, reasonPasswordForbidden)
	}
	if !model.ValidPassword(form.NextPassword) {
		return model.NewAccountError(model.ErrValidation, model.ReasonPasswordPolicy)
	}
	if form.NextPassword == form.OldPassword {
		return model.NewAccountError(model.ErrValidation, reasonPasswordUnchanged)
	}
	if !s.hasher.Verify(form.OldPassword, player.PasswordHash) {
		return model.NewAccountError(model.ErrValidation, reasonPasswordIncorrect)
	}

	hash, err := s.hasher.Hash(form.NextPassword)
	if err != nil {
		return err
	}
	player.PasswordHash = hash
	player.UpdatedAt = s.clock.Now()

	if err := s.store.SavePlayer(ctx, player); err != nil {
		return err
	}

	s.logger.Info("password updated", "name", name, "by", caller.Name)
	return nil
}

// UpdateColour sets the preferred colour of name
func (s *Service) UpdateColour(ctx context.Context, caller model.Caller, name, colour string) error {
	player, err := s.lookup(ctx, name, reasonColourNoSuchUser)
	if err != nil {
		return err
	}
	if !caller.CanActOn(name) {
		return model.NewAccountError(model.ErrForbidden, reasonColourForbidden)
	}
	if !model.ValidColour(colour) {
		return model.NewAccountError(model.ErrValidation, model.ReasonInvalidColour)
	}

	player.PreferredColour = colour
	player.UpdatedAt = s.clock.Now()
	return s.store.SavePlayer(ctx, player)
}

// GetColour returns the preferred colour of name
func (s *Service) GetColour(ctx context.Context, caller model.Caller, name string) (string, error) {
	player, err := s.lookup(ctx, name, reasonColourQueryMissing)
	if err != nil {
		return "", err
	}
	if !caller.CanActOn(name) {
		return "", model.NewAccountError(model.ErrForbidden, reasonColourQueryDenied)
	}
	return player.PreferredColour, nil
}

// GetPlayer returns the full record of name
func (s *Service) GetPlayer(ctx context.Context, caller model.Caller, name string) (*model.Player, error) {
	player, err := s.lookup(ctx, name, reasonDetailsNoSuchUser)
	if err != nil {
		return nil, err
	}
	if !caller.CanActOn(name) {
		return nil, model.NewAccountError(model.ErrForbidden, reasonDetailsForbidden)
	}
	return player, nil
}

// lookup fetches name, turning a missing record into a NotFound rejection
// carrying the operation's reason
func (s *Service) lookup(ctx context.Context, name, missing string) (*model.Player, error) {
	player, err := s.store.GetPlayer(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, model.NewAccountError(model.ErrNotFound, missing)
		}
		return nil, err
	}
	return player, nil
}

package account

import (
	"context"
	"fmt"

	"github.com/mcoot/lobby-accounts/internal/model"
)

// cascadeStep is one fallible stage of account deletion
type cascadeStep struct {
	name string
	run  func(ctx context.Context) error
	// reason is reported to the caller on failure; empty means the
	// collaborator's own error text is used
	reason string
}

// deletionCascade lists, in order, what must be torn down before the record
// of name can go: tokens first so nothing can act as name mid-way, then the
// game servers name owns, then their session memberships.
func (s *Service) deletionCascade(caller model.Caller, name string) []cascadeStep {
	steps := []cascadeStep{
		{
			name:   "revoke tokens",
			run:    func(ctx context.Context) error { return s.tokens.RevokeTokens(ctx, name) },
			reason: reasonTokenRevocation,
		},
	}

	// Gated on the caller's role, not the target's
	if caller.IsAdmin() {
		steps = append(steps, cascadeStep{
			name:   "unregister game servers",
			run:    func(ctx context.Context) error { return s.registry.UnregisterAllOwnedBy(ctx, name) },
			reason: reasonRegistryMismatch,
		})
	}

	return append(steps, cascadeStep{
		name: "leave sessions",
		run:  func(ctx context.Context) error { return s.sessions.RemovePlayerFromAllSessions(ctx, name) },
	})
}

// runCascade runs steps in order and stops at the first failure, which is
// reported as an ErrCascade rejection wrapping the collaborator's error.
func runCascade(ctx context.Context, steps []cascadeStep) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.run(ctx); err != nil {
			reason := step.reason
			if reason == "" {
				reason = err.Error()
			}
			return &model.AccountError{
				Kind:   model.ErrCascade,
				Reason: reason,
				Cause:  fmt.Errorf("%s: %w", step.name, err),
			}
		}
	}
	return nil
}

package factory

import (
	"context"
	"time"

	"github.com/mcoot/lobby-accounts/internal/dependencies/mocks"
	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/services/auth"
	"github.com/mcoot/lobby-accounts/internal/storage/memory"
	"github.com/mcoot/lobby-accounts/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockHasher *mocks.MockHasher
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockHasher := mocks.NewMockHasher()

	app := newWithDependencies(store, mockClock, mockRandom, mockHasher, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockHasher: mockHasher,
	}
}

// Login issues a token for name, queuing token as the generated value
func (t *TestApp) Login(ctx context.Context, name, password, token string) (model.Caller, error) {
	t.MockRandom.QueueToken(token)
	if _, err := t.AuthService.Login(ctx, name, password); err != nil {
		return model.Caller{}, err
	}
	return t.AuthService.Authenticate(ctx, token)
}

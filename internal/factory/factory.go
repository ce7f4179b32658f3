package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/lobby-accounts/internal/api/sse"
	"github.com/mcoot/lobby-accounts/internal/dependencies/clock"
	"github.com/mcoot/lobby-accounts/internal/dependencies/hasher"
	"github.com/mcoot/lobby-accounts/internal/dependencies/random"
	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/services/account"
	"github.com/mcoot/lobby-accounts/internal/services/auth"
	"github.com/mcoot/lobby-accounts/internal/services/lobby"
	"github.com/mcoot/lobby-accounts/internal/services/registry"
	"github.com/mcoot/lobby-accounts/internal/storage"
	"github.com/mcoot/lobby-accounts/internal/storage/memory"
	redisstorage "github.com/mcoot/lobby-accounts/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Hasher hasher.Hasher

	// Services
	AuthService     *auth.Service
	AccountService  *account.Service
	RegistryService *registry.Service
	LobbyController *lobby.Controller
	Hub             *sse.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// BcryptCost is the password hashing cost (optional)
	BcryptCost int
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), hasher.New(cfg.BcryptCost), cfg.AuthConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	hsh hasher.Hasher,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	hub := sse.NewHub(logger)
	go hub.Run()

	lobbyController := lobby.NewController(store, clk, logger)
	lobbyController.AddListener(sse.NewBroadcaster(hub, logger))

	authService := auth.New(store, hsh, clk, rnd, authCfg, logger)
	registryService := registry.New(store, lobbyController, clk, logger)
	accountService := account.New(store, hsh, authService, registryService, lobbyController, clk, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Hasher:          hsh,
		AuthService:     authService,
		AccountService:  accountService,
		RegistryService: registryService,
		LobbyController: lobbyController,
		Hub:             hub,
	}
}

// Bootstrap seeds the initial admin account when it does not exist yet
func (a *App) Bootstrap(ctx context.Context, name, password, colour string) error {
	return a.AccountService.EnsureAdmin(ctx, model.AccountForm{
		Name:            name,
		Password:        password,
		PreferredColour: colour,
		Role:            model.RoleAdmin,
	})
}

// Close stops the event hub and releases the storage backend
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

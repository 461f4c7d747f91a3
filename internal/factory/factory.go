package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/trxgoblin/minerd/internal/dependencies/clock"
	"github.com/trxgoblin/minerd/internal/hash"
	"github.com/trxgoblin/minerd/internal/presence"
	"github.com/trxgoblin/minerd/internal/services/auth"
	"github.com/trxgoblin/minerd/internal/services/ingest"
	"github.com/trxgoblin/minerd/internal/services/registry"
	"github.com/trxgoblin/minerd/internal/storage"
	"github.com/trxgoblin/minerd/internal/storage/memory"
	redisstorage "github.com/trxgoblin/minerd/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	Clock  clock.Clock
	Hasher hash.Hasher

	AuthService     *auth.Service
	IngestService   *ingest.Service
	RegistryService *registry.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// OnlineThreshold is the staleness window for the online state (optional)
	// If zero, defaults to presence.DefaultThreshold
	OnlineThreshold time.Duration
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

	return newWithDependencies(store, clock.New(), hash.NewSHA3(), cfg.OnlineThreshold, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, hasher hash.Hasher, threshold time.Duration, logger *slog.Logger) *App {
	evaluator := presence.NewEvaluator(threshold)

	return &App{
		Storage:         store,
		Clock:           clk,
		Hasher:          hasher,
		AuthService:     auth.New(store, hasher, clk, logger),
		IngestService:   ingest.New(store, clk, logger),
		RegistryService: registry.New(store, clk, evaluator),
	}
}

package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/clubroster/internal/api"
	"github.com/mcoot/clubroster/internal/config"
	"github.com/mcoot/clubroster/internal/dependencies/clock"
	"github.com/mcoot/clubroster/internal/dependencies/random"
	"github.com/mcoot/clubroster/internal/middleware"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/services/credentials"
	"github.com/mcoot/clubroster/internal/services/roster"
	"github.com/mcoot/clubroster/internal/services/session"
	"github.com/mcoot/clubroster/internal/storage"
	"github.com/mcoot/clubroster/internal/storage/file"
	"github.com/mcoot/clubroster/internal/storage/memory"
	redisstorage "github.com/mcoot/clubroster/internal/storage/redis"
	"github.com/mcoot/clubroster/internal/storage/sqlite"
	"github.com/mcoot/clubroster/internal/web"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Store              *roster.Store
	CredentialsService *credentials.Service
	SessionService     *session.Service
	AuthService        *auth.Service

	Logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// DataFile is the document path for the file backend
	DataFile string
	// SQLitePath is the database path for the sqlite backend
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Session configures the session service. Secret is required.
	Session session.Config
	// Credentials configures password hashing (optional)
	Credentials credentials.Config
}

// ConfigFrom maps process configuration onto a factory Config
func ConfigFrom(cfg *config.Config, logger *slog.Logger) Config {
	sessionCfg := session.DefaultConfig()
	sessionCfg.Secret = cfg.SessionSecret
	sessionCfg.Duration = cfg.SessionTTL
	sessionCfg.Secure = cfg.SecureCookies()

	fc := Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		DataFile:    cfg.DataFile,
		SQLitePath:  cfg.SQLitePath,
		Session:     sessionCfg,
		Credentials: credentials.Config{Cost: cfg.BcryptCost},
	}
	if cfg.StorageType == config.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.KeyPrefix = cfg.RedisKeyPrefix
		fc.RedisConfig = &redisCfg
	}
	return fc
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	store, err := NewStorage(cfg, clk)
	if err != nil {
		return nil, err
	}

	app, err := newWithDependencies(store, clk, random.New(), cfg.Session, cfg.Credentials, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

// NewStorage opens the storage backend selected by cfg. Backends that
// record save times read them from clk.
func NewStorage(cfg Config, clk clock.Clock) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		return memory.New(), nil
	case config.StorageTypeFile:
		fileStore, err := file.New(cfg.DataFile)
		if err != nil {
			return nil, err
		}
		return fileStore, nil
	case config.StorageTypeSQLite:
		sqliteStore, err := sqlite.New(cfg.SQLitePath, clk)
		if err != nil {
			return nil, err
		}
		return sqliteStore, nil
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		return redisStore, nil
	default:
		return nil, fmt.Errorf("invalid StorageType %q", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sessionCfg session.Config,
	credentialsCfg credentials.Config,
	logger *slog.Logger,
) (*App, error) {
	sessionService, err := session.New(clk, sessionCfg)
	if err != nil {
		return nil, err
	}

	rosterStore := roster.New(store, clk, logger)
	credentialsService := credentials.New(rnd, credentialsCfg)
	authService := auth.New(rosterStore, credentialsService, sessionService, rnd, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Store:              rosterStore,
		CredentialsService: credentialsService,
		SessionService:     sessionService,
		AuthService:        authService,
		Logger:             logger,
	}, nil
}

// Handler combines the API and web routers behind a shared request ID
func (a *App) Handler(staticDir string, corsOrigins []string) http.Handler {
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:      a.Logger,
		Store:       a.Store,
		AuthService: a.AuthService,
		Sessions:    a.SessionService,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:    a.Logger,
		Sessions:  a.SessionService,
		StaticDir: staticDir,
	})

	apiHandler := api.WithCORS(apiRouter, corsOrigins)

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/api", apiHandler)
	mux.Handle("/", webRouter)

	return middleware.RequestID()(mux)
}

// Bootstrap creates the first administrator from cfg when none exists
func (a *App) Bootstrap(ctx context.Context, cfg config.BootstrapAdmin) error {
	if !cfg.Enabled() {
		return nil
	}

	player, created, err := a.AuthService.BootstrapAdmin(ctx, auth.BootstrapRequest{
		Email:    cfg.Email,
		FullName: cfg.Name,
		Password: cfg.Password,
		Username: cfg.Username,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if !created {
		a.Logger.Debug("administrator already exists, skipping bootstrap")
		return nil
	}

	a.Logger.Info("bootstrap administrator created", slog.String("player_id", string(player.ID)))
	return nil
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}

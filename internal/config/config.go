package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Storage backends
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// MinSessionSecretLength is the shortest accepted SESSION_SECRET, in bytes
const MinSessionSecretLength = 32

// Config is the process configuration read from the environment
type Config struct {
	Host     string
	Port     int
	LogLevel slog.Level

	SessionSecret []byte
	SessionTTL    time.Duration
	AppEnv        string
	CookieSecure  bool

	StorageType    string
	DataFile       string
	RedisURL       string
	RedisKeyPrefix string
	SQLitePath     string

	CORSAllowedOrigins []string
	BcryptCost         int

	BootstrapAdmin BootstrapAdmin
}

// BootstrapAdmin seeds the first administrator at start-up when Email is set
type BootstrapAdmin struct {
	Email    string
	Password string
	Name     string
	Username string
}

// Enabled reports whether bootstrap values were supplied
func (b BootstrapAdmin) Enabled() bool {
	return b.Email != ""
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SecureCookies reports whether session cookies must be HTTPS-only
func (c *Config) SecureCookies() bool {
	return c.IsProduction() || c.CookieSecure
}

// Load reads configuration from the environment. Values in the given .env
// files (default ".env") fill in variables the environment does not set;
// missing files are skipped.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	fileVars := make(map[string]string)
	for _, path := range envFiles {
		vars, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		maps.Copy(fileVars, vars)
	}

	return Parse(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVars[key]
	})
}

// Parse builds a Config from a variable lookup, reporting every invalid value
func Parse(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	var errs []error

	cfg := &Config{
		Host:           get("HOST", ""),
		SessionSecret:  []byte(getenv("SESSION_SECRET")),
		AppEnv:         get("APP_ENV", "development"),
		StorageType:    strings.ToLower(get("STORAGE_TYPE", StorageTypeFile)),
		DataFile:       get("DATA_FILE", "data/club.json"),
		RedisURL:       get("REDIS_URL", ""),
		RedisKeyPrefix: get("REDIS_KEY_PREFIX", "clubroster"),
		SQLitePath:     get("SQLITE_PATH", "data/club.db"),
		BootstrapAdmin: BootstrapAdmin{
			Email:    get("BOOTSTRAP_ADMIN_EMAIL", ""),
			Password: getenv("BOOTSTRAP_ADMIN_PASSWORD"),
			Name:     get("BOOTSTRAP_ADMIN_NAME", "Club Administrator"),
			Username: get("BOOTSTRAP_ADMIN_USERNAME", ""),
		},
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, errors.New("PORT must be a number between 1 and 65535"))
	}
	cfg.Port = port

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, errors.New("LOG_LEVEL must be one of debug, info, warn, error"))
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		errs = append(errs, fmt.Errorf("SESSION_SECRET is required and must be at least %d bytes", MinSessionSecretLength))
	}

	ttl, err := time.ParseDuration(get("SESSION_TTL", "168h"))
	if err != nil || ttl <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be a positive duration such as 168h"))
	}
	cfg.SessionTTL = ttl

	secure, err := strconv.ParseBool(get("COOKIE_SECURE", "false"))
	if err != nil {
		errs = append(errs, errors.New("COOKIE_SECURE must be true or false"))
	}
	cfg.CookieSecure = secure

	switch cfg.StorageType {
	case StorageTypeMemory, StorageTypeFile, StorageTypeSQLite:
	case StorageTypeRedis:
		if cfg.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when STORAGE_TYPE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE must be one of %s, %s, %s, %s",
			StorageTypeMemory, StorageTypeFile, StorageTypeRedis, StorageTypeSQLite))
	}

	for _, origin := range strings.Split(get("CORS_ALLOWED_ORIGINS", ""), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cost, err := strconv.Atoi(get("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	cfg.BcryptCost = cost

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

type Config struct {
	Port      string        `env:"PORT,      default=3001"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=24h"`

	Log     LogConfig
	Store   StoreConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Uploads UploadConfig

	Seed               bool     `env:"SEED,                  default=true"`
	RateLimitPerMinute int      `env:"RATE_LIMIT_PER_MINUTE, default=30"`
	AllowedOrigins     []string `env:"ALLOWED_ORIGINS"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL,  default=info"`
	Pretty bool   `env:"LOG_PRETTY, default=false"`
	// File, when set, adds a size-rotated log file next to stdout.
	File string `env:"LOG_FILE"`
}

type StoreConfig struct {
	Backend string `env:"STORE_BACKEND, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=twittoo"`
}

// RedisConfig is optional; an empty Addr disables every redis-backed feature.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type UploadConfig struct {
	Dir      string `env:"UPLOAD_DIR,       default=uploads"`
	MaxBytes int64  `env:"MAX_UPLOAD_BYTES, default=5242880"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	switch c.Store.Backend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("config: STORE_BACKEND must be %q or %q, got %q", BackendMemory, BackendMongo, c.Store.Backend)
	}
	if c.Uploads.MaxBytes <= 0 {
		return errors.New("config: MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// IsProduction reports whether ENV is "production". Console logging is
// disabled there regardless of LOG_PRETTY.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

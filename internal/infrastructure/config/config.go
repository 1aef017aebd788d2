package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Avatar backends.
const (
	AvatarStorage = "storage"
	AvatarMinio   = "minio"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Host      string        `env:"HOST,       default=127.0.0.1"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	// BcryptCost of 0 selects bcrypt's default cost.
	BcryptCost int `env:"BCRYPT_COST, default=0"`

	// RevalidateSchedule is a cron spec for re-checking the logged-in user.
	RevalidateSchedule string `env:"REVALIDATE_SCHEDULE, default=@every 1m"`

	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Avatar  AvatarConfig
}

type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND, default=memory"`
	// Prefix namespaces keys and channels so several portals can share a backend.
	Prefix string `env:"STORAGE_PREFIX,  default=portal:"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hospital_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AvatarConfig struct {
	Backend string `env:"AVATAR_BACKEND, default=storage"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET,     default=profile-images"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL,    default=false"`
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("config: STORAGE_BACKEND must be memory, redis or mongo, got %q", c.Storage.Backend)
	}
	switch c.Avatar.Backend {
	case AvatarStorage, AvatarMinio:
	default:
		return fmt.Errorf("config: AVATAR_BACKEND must be storage or minio, got %q", c.Avatar.Backend)
	}
	if c.JWTSecret == "" && c.IsProduction() {
		return fmt.Errorf("config: JWT_SECRET is required in production")
	}
	return nil
}

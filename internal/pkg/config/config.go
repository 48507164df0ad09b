package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"PORT,            default=8080"`
	Env           string        `env:"ENV,             default=development"`
	SessionSecret string        `env:"SESSION_SECRET,  required"`
	SessionTTL    time.Duration `env:"SESSION_TTL,     default=24h"`
	LogLevel      string        `env:"LOG_LEVEL,       default=info"`

	Mongo MongoConfig
	Redis RedisConfig
	Minio MinioConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=questionnaire"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY, default=minio"`
	SecretKey string `env:"MINIO_SECRET_KEY, default=minio123"`
	Bucket    string `env:"MINIO_BUCKET,     default=questionnaire-photos"`
	UseSSL    bool   `env:"MINIO_USE_SSL,    default=false"`
}

// IsProduction controls secure cookies and JSON logging.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for entrypoints that cannot start without configuration.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

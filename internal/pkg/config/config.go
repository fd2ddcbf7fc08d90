package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,          default=8080"`
	Env       string        `env:"ENV,           default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,     default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,     default=info"`

	// SweepInterval is the redis lease window throttling the per-request
	// expired-token sweep.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL, default=1s"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI       string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	UsersDB   string `env:"MONGO_USERS_DB,   default=lingua_users"`
	ContentDB string `env:"MONGO_CONTENT_DB, default=lingua_content"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

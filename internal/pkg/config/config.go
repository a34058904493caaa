package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=housing_marketplace"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,   default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,     default=0"`
	// InterestTTL is how long a student/listing interest notification
	// suppresses repeats.
	InterestTTL time.Duration `env:"INTEREST_TTL, default=24h"`
}

type SMTPConfig struct {
	Enabled  bool   `env:"SMTP_ENABLED, default=false"`
	Host     string `env:"SMTP_HOST,    default=localhost"`
	Port     string `env:"SMTP_PORT,    default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM,    default=no-reply@offcampus.example"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

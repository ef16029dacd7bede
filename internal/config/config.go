package config

import (
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

const devSecret = "dev-secret-change-in-production"

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	Env            string        `env:"ENV" envDefault:"development"`
	MongoUsername  string        `env:"MONGODB_USERNAME"`
	MongoPassword  string        `env:"MONGODB_PASSWORD"`
	MongoHost      string        `env:"MONGODB_HOST" envDefault:"127.0.0.1:27017"`
	MongoDatabase  string        `env:"MONGODB_DATABASE" envDefault:"accounts"`
	JWTSecret      string        `env:"SECRET" envDefault:"dev-secret-change-in-production"`
	TokenExpiry    time.Duration `env:"TOKEN_EXPIRY" envDefault:"300s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("invalid environment configuration", "error", err)
		os.Exit(1)
	}

	if cfg.Env == "production" && cfg.JWTSecret == devSecret {
		slog.Error("SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// MongoURI assembles the connection string from environment-supplied
// credentials. Retryable writes and majority write concern are always on.
// Credentials go through userinfo percent-encoding, not query encoding,
// so a space stays a space instead of becoming a literal plus.
func (c Config) MongoURI() string {
	u := &url.URL{
		Scheme:   "mongodb",
		Host:     c.MongoHost,
		Path:     "/" + c.MongoDatabase,
		RawQuery: "retryWrites=true&w=majority",
	}
	if c.MongoUsername != "" {
		u.User = url.UserPassword(c.MongoUsername, c.MongoPassword)
	}
	return u.String()
}

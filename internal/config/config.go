package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"fintrack"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"fintrack"`
	}

	Auth struct {
		// Secret signs bearer tokens. When empty a random secret is
		// generated at startup, which invalidates all outstanding
		// tokens on restart.
		Secret   string        `envconfig:"JWT_SECRET"`
		TokenTTL time.Duration `envconfig:"JWT_TTL" default:"30m"`

		// LegacyQueryIdentity restores the original API surface where
		// identity-scoped routes trust the `email` query parameter
		// instead of the verified token subject.
		LegacyQueryIdentity bool `envconfig:"AUTH_LEGACY_QUERY_IDENTITY" default:"false"`

		// AdminToken guards the unscoped per-user listing route.
		// Empty disables the route entirely.
		AdminToken string `envconfig:"ADMIN_TOKEN"`
	}

	CORS struct {
		Origins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173,http://localhost:5174"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

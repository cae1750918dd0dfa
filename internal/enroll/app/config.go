package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// ErrConfig wraps fatal configuration problems. The process refuses to
// start on these rather than serving 500s until someone notices.
var ErrConfig = errors.New("invalid configuration")

// Config is the explicit, dependency-injected configuration object. It is
// constructed once in main and passed down; there is no hidden global.
type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	// DBDriver selects the storage backend: "sqlite" or "postgres".
	DBDriver     string `env:"ENROLL_DB_DRIVER" envDefault:"sqlite"`
	DatabaseFile string `env:"ENROLL_DATABASE_FILE" envDefault:"enroll.db"`
	DatabaseURL  string `env:"ENROLL_DATABASE_URL"`

	// AdminToken protects the operator endpoints. Empty disables them.
	AdminToken string `env:"ENROLL_ADMIN_TOKEN"`

	SessionTTL           time.Duration `env:"ENROLL_SESSION_TTL" envDefault:"720h"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads configuration from the environment, with an optional
// .env file for local development.
func LoadConfig() (Config, error) {
	// Missing .env is the normal case outside local dev.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			return fmt.Errorf("%w: ENROLL_DATABASE_FILE is required for the sqlite driver", ErrConfig)
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: ENROLL_DATABASE_URL is required for the postgres driver", ErrConfig)
		}
	default:
		return fmt.Errorf("%w: unknown ENROLL_DB_DRIVER %q", ErrConfig, c.DBDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: ENROLL_SESSION_TTL must be positive", ErrConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: PORT %d out of range", ErrConfig, c.Port)
	}
	return nil
}

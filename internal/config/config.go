package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all service settings, populated from the environment (and an optional .env file).
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"GO_ENV" envDefault:"development"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"wellbreathe.db"`

	// DatasetPath points at the city JSON; empty uses the embedded sample.
	DatasetPath     string `env:"DATASET_PATH"`
	CollationLocale string `env:"COLLATION_LOCALE" envDefault:"pt-BR"`

	// MLServiceURL enables the remote risk model; empty keeps the heuristic only.
	MLServiceURL string        `env:"ML_SERVICE_URL"`
	MLTimeout    time.Duration `env:"ML_TIMEOUT" envDefault:"5s"`

	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads an optional .env file, then parses and validates the environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(envFiles...)

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, eris.Wrap(err, "config: parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return eris.New("config: SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return eris.New("config: DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return eris.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if _, err := language.Parse(c.CollationLocale); err != nil {
		return eris.Wrapf(err, "config: invalid COLLATION_LOCALE %q", c.CollationLocale)
	}
	if c.MLTimeout <= 0 {
		return eris.New("config: ML_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return eris.New("config: SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Locale returns the parsed collation locale
func (c Config) Locale() language.Tag {
	tag, err := language.Parse(c.CollationLocale)
	if err != nil {
		return language.Und
	}
	return tag
}

// IsProduction reports whether GO_ENV is production
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendSanity  = "sanity"
	BackendMongoDB = "mongodb"
)

type Config struct {
	Server     ServerConfig     `envPrefix:"SERVER_"`
	Log        LogConfig        `envPrefix:"LOG_"`
	Store      StoreConfig      `envPrefix:"STORE_"`
	Sanity     SanityConfig     `envPrefix:"SANITY_"`
	Database   DatabaseConfig   `envPrefix:"DATABASE_"`
	Validation ValidationConfig `envPrefix:"VALIDATION_"`
}

type ServerConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Host        string `env:"HOST" envDefault:"0.0.0.0"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"^https?://localhost(:[0-9]+)?$"`
	BodyLimit   string `env:"BODY_LIMIT" envDefault:"25M"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type LogConfig struct {
	Level       string `env:"LEVEL" envDefault:"info"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

type StoreConfig struct {
	Backend string `env:"BACKEND" envDefault:"sanity"`
}

// SanityConfig is the explicit client handle configuration for the hosted
// content store.
type SanityConfig struct {
	ProjectID  string `env:"PROJECT_ID"`
	Dataset    string `env:"DATASET" envDefault:"production"`
	APIVersion string `env:"API_VERSION" envDefault:"2023-03-09"`
	Token      string `env:"API_WRITE_TOKEN"`
	BaseURL    string `env:"BASE_URL"`
}

type DatabaseConfig struct {
	URI         string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database    string `env:"DATABASE" envDefault:"estate"`
	AssetBucket string `env:"ASSET_BUCKET" envDefault:"assets"`
}

type ValidationConfig struct {
	PropertyMinImages int `env:"PROPERTY_MIN_IMAGES" envDefault:"1"`
}

// Load reads .env (when present) and the process environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSanity:
		if c.Sanity.ProjectID == "" && c.Sanity.BaseURL == "" {
			return errors.New("SANITY_PROJECT_ID is required for the sanity backend")
		}
		if c.Sanity.Dataset == "" {
			return errors.New("SANITY_DATASET is required for the sanity backend")
		}
	case BackendMongoDB:
		if c.Database.URI == "" {
			return errors.New("DATABASE_URI is required for the mongodb backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Validation.PropertyMinImages < 0 {
		return errors.New("VALIDATION_PROPERTY_MIN_IMAGES must not be negative")
	}
	return nil
}

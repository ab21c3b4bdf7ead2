package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultAPIURL is the local development address of the employee service
const DefaultAPIURL = "http://localhost:8000/api"

// Config is the process-wide configuration, read from AYP_* variables
type Config struct {
	APIURL       string        `env:"AYP_API_URL,       default=http://localhost:8000/api"`
	Home         string        `env:"AYP_HOME"`
	LogLevel     string        `env:"AYP_LOG_LEVEL,     default=info"`
	HTTPTimeout  time.Duration `env:"AYP_HTTP_TIMEOUT,  default=30s"`
	LoginEmail   string        `env:"AYP_LOGIN_EMAIL,   default=ilham@example.com"`
	ReduceMotion bool          `env:"AYP_REDUCE_MOTION, default=false"`
}

// Load reads configuration from the process environment
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l. Home defaults to ~/.ayp
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	if cfg.Home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: failed to resolve home directory: %w", err)
		}
		cfg.Home = filepath.Join(homeDir, ".ayp")
	}

	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("config: AYP_HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}

	return &cfg, nil
}

// LogPath is where the log file lives
func (c *Config) LogPath() string {
	return filepath.Join(c.Home, "ayp.log")
}

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process configuration, loaded from the environment.
type Config struct {
	// APIURL is the chat backend base URL.
	APIURL string `env:"PARLEY_API_URL, default=http://localhost:8000"`
	// LogLevel is the minimum log level: trace, debug, info, warn, error.
	LogLevel string `env:"PARLEY_LOG_LEVEL, default=info"`
	// DataDir holds the session token and the debug log.
	// Defaults to ~/.parley when empty.
	DataDir string `env:"PARLEY_DATA_DIR"`
}

// Load reads configuration from environment variables and resolves the
// default data directory.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".parley")
	}
	return &cfg, nil
}

// Package config loads runtime settings from the environment, honoring an
// optional .env file for local runs.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	// DBPath is where the SQLite database lives. Empty means the XDG
	// data directory.
	DBPath string `env:"TASKDESK_DB"`

	// LogFile is where zerolog writes. Empty means a file next to the
	// database. The TUI owns the terminal, so logs never go to stdout.
	LogFile string `env:"TASKDESK_LOG"`

	// Debug lowers the log level to debug.
	Debug bool `env:"TASKDESK_DEBUG,default=false"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}

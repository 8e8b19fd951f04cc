package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config is read from the environment.
type Config struct {
	// PORT wins over GAME_PORT so the binary runs unchanged on Cloud Run.
	Port     string `env:"PORT"`
	GamePort string `env:"GAME_PORT" envDefault:"8081"`

	// RosterAPIBase points at another instance serving /api/characters.
	// Empty means the built-in roster.
	RosterAPIBase string `env:"ROSTER_API_BASE"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
	// LogFile is used by the terminal host, which cannot log to its own screen.
	LogFile string `env:"LOG_FILE"`

	// Outgoing WebSocket messages buffered per client before it is dropped.
	SendBuffer int `env:"WS_SEND_BUFFER" envDefault:"16"`
}

// Parse loads configuration from environment variables.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if cfg.SendBuffer < 1 {
		return Config{}, errors.Errorf("WS_SEND_BUFFER must be positive, got %d", cfg.SendBuffer)
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return Config{}, errors.Errorf("LOG_FORMAT must be console or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// ListenAddr is the address the web host binds.
func (c Config) ListenAddr() string {
	if c.Port != "" {
		return ":" + c.Port
	}
	return ":" + c.GamePort
}

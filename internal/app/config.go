package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
// Env tags are applied by the CLI layer, so DEVSTRAP_* variables override
// matching fields.
type Config struct {
	// ConfigPath is the launcher config file. Empty means "devstrap.hcl"
	// when that file exists in the working directory, defaults otherwise.
	ConfigPath string

	LogFormat  string `env:"DEVSTRAP_LOG_FORMAT"`
	LogLevel   string `env:"DEVSTRAP_LOG_LEVEL"`
	StatusPort int    `env:"DEVSTRAP_STATUS_PORT"`

	// Reinstall forces the dependency sync even when the environment
	// already exists.
	Reinstall bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if cfg.StatusPort < 0 || cfg.StatusPort > 65535 {
		return nil, errors.New("invalid status-port: must be between 0 and 65535")
	}

	return &cfg, nil
}

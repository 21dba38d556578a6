package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/adeptcoder014/devstrap/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("devstrap", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
devstrap - bootstrap and run a development server from a clean checkout.

Ensures the environment directory exists, installs the dependency manifest
into it on first run, and starts the server in the foreground with automatic
restart on source change.

Usage:
  devstrap [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to the launcher config file. Defaults to devstrap.hcl when present;
    built-in defaults otherwise.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the launcher config file.")
	cFlag := flagSet.String("c", "", "Path to the launcher config file (shorthand).")
	statusPortFlag := flagSet.Int("status-port", 0, "Port for the supervisor status HTTP server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	reinstallFlag := flagSet.Bool("reinstall", false, "Force the dependency sync even when the environment already exists.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Config path determined.", "path", path)

	cfg := app.Config{
		ConfigPath: path,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
		StatusPort: *statusPortFlag,
		Reinstall:  *reinstallFlag,
	}

	// DEVSTRAP_* environment variables override matching fields.
	if err := env.Parse(&cfg); err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid environment override: %v", err)}
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

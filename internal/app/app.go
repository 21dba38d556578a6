package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/adeptcoder014/devstrap/internal/config"
	"github.com/adeptcoder014/devstrap/internal/ctxlog"
	"github.com/adeptcoder014/devstrap/internal/toolchain"
)

// defaultConfigFile is picked up from the working directory when no config
// path is given, keeping the launcher invocable with no arguments.
const defaultConfigFile = "devstrap.hcl"

// App encapsulates the launcher's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	model  *config.Model
	tc     toolchain.Toolchain

	status    *statusState
	probeKick chan struct{}
}

// NewApp is the constructor for the launcher. It returns a fully initialized
// App instance with its own isolated logger. A failure to load configuration
// is a fatal startup error and panics; the entrypoint recovers it into a
// clean exit message. The optional trailing toolchain overrides the
// platform-selected one, which is primarily for testing.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, tcs ...toolchain.Toolchain) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	path := appConfig.ConfigPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
			logger.Debug("Using default config file from working directory.", "path", path)
		}
	}

	model, err := loader.Load(ctx, path)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	var tc toolchain.Toolchain
	if len(tcs) > 0 {
		tc = tcs[0]
	} else {
		layout := toolchain.LayoutFor(runtime.GOOS)
		interpreter := model.Environment.Python
		if interpreter == "" {
			interpreter = toolchain.DefaultInterpreter(runtime.GOOS)
		}
		tc = toolchain.NewPython(layout, toolchain.ExecRunner{}, interpreter)
	}
	logger.Debug("Toolchain selected.", "toolchain", tc.Name())

	return &App{
		outW:      outW,
		logger:    logger,
		config:    appConfig,
		model:     model,
		tc:        tc,
		status:    newStatusState(),
		probeKick: make(chan struct{}, 1),
	}
}

// Model returns the loaded launcher configuration. This is primarily for
// testing.
func (a *App) Model() *config.Model {
	return a.model
}

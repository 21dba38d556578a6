package app

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/adeptcoder014/devstrap/internal/bootstrap"
	"github.com/adeptcoder014/devstrap/internal/ctxlog"
	"github.com/adeptcoder014/devstrap/internal/probe"
	"github.com/adeptcoder014/devstrap/internal/supervise"
	"github.com/adeptcoder014/devstrap/internal/watch"
)

// Run executes the full launch sequence: ensure the environment, sync
// dependencies, then serve in the foreground until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.StatusPort > 0 {
		a.startStatusServer(a.config.StatusPort)
	}

	if _, err := a.Bootstrap(ctx); err != nil {
		return err
	}

	return a.Serve(ctx)
}

// Bootstrap runs the environment half of the sequence and returns its
// explicit result. Split from Serve so tests can exercise it without
// launching a server.
func (a *App) Bootstrap(ctx context.Context) (*bootstrap.EnsureResult, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.status.set("bootstrapping", 0)

	b := bootstrap.New(a.tc, a.model.Environment)
	res, err := b.EnsureEnvironment(ctx)
	if err != nil {
		return nil, fmt.Errorf("ensure environment: %w", err)
	}

	if res.Created || a.config.Reinstall {
		a.status.set("installing", 0)
	}
	if _, err := b.Sync(ctx, res, a.config.Reinstall); err != nil {
		return nil, fmt.Errorf("sync dependencies: %w", err)
	}

	return res, nil
}

// Serve starts the watcher, the readiness probe loop, and the supervisor,
// blocking until the context is cancelled.
func (a *App) Serve(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	watcher, err := watch.New(watch.Config{
		Paths:      a.model.Watch.Paths,
		Extensions: a.model.Watch.Extensions,
		Ignore:     a.model.Watch.Ignore,
		Debounce:   a.model.Watch.Debounce,
	})
	if err != nil {
		return fmt.Errorf("configure auto-reload: %w", err)
	}
	go watcher.Run(ctx)

	go a.probeLoop(ctx)

	server := a.model.Server
	a.logger.Info("Starting development server.",
		"host", server.Host,
		"port", server.Port,
		"command", server.Command,
	)

	sup := supervise.New(a.serverCommand, watcher.Events(), supervise.Options{
		OnState: a.onSupervisorState,
	})
	return sup.Run(ctx)
}

// serverCommand builds a fresh server child process command with inherited
// stdio.
func (a *App) serverCommand() *exec.Cmd {
	c := a.tc.ServerCommand(
		a.model.Environment.Dir,
		a.model.Server.Command,
		a.model.Server.Host,
		a.model.Server.Port,
	)

	cmd := exec.Command(c.Path, c.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), c.Env...)
	return cmd
}

// onSupervisorState mirrors supervisor transitions into the status endpoint
// and kicks the readiness probe whenever a child starts running.
func (a *App) onSupervisorState(state supervise.State, pid int) {
	a.status.set(string(state), pid)
	if state == supervise.StateRunning {
		select {
		case a.probeKick <- struct{}{}:
		default:
		}
	}
}

// probeLoop waits for each (re)started child to answer and logs the
// documented endpoints once it does.
func (a *App) probeLoop(ctx context.Context) {
	p := probe.New(a.model.Server.Host, a.model.Server.Port)

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.probeKick:
		}

		if err := p.Wait(ctx); err != nil {
			if ctx.Err() == nil {
				a.logger.Warn("Server readiness probe gave up.", "error", err)
			}
			continue
		}
		a.logger.Info("Server is ready.",
			"url", p.BaseURL,
			"docs", p.BaseURL+"/docs",
		)
	}
}

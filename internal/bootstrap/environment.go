package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/adeptcoder014/devstrap/internal/config"
	"github.com/adeptcoder014/devstrap/internal/ctxlog"
	"github.com/adeptcoder014/devstrap/internal/toolchain"
)

// EnsureResult reports what EnsureEnvironment found and did. Later steps
// branch on Created instead of probing the filesystem again.
type EnsureResult struct {
	// Created is true when the environment was created by this invocation.
	Created bool
	// Path is the environment directory.
	Path string
	// Meta is the environment metadata, nil for pre-existing environments
	// that carry none.
	Meta *Metadata
}

// Bootstrapper runs the environment half of the startup sequence.
type Bootstrapper struct {
	tc  toolchain.Toolchain
	env *config.Environment
}

// New builds a Bootstrapper for the given toolchain and environment config.
func New(tc toolchain.Toolchain, env *config.Environment) *Bootstrapper {
	return &Bootstrapper{tc: tc, env: env}
}

// EnsureEnvironment makes sure the environment directory exists, creating it
// through the toolchain when absent. Invoking it twice in sequence creates
// the environment exactly once.
func (b *Bootstrapper) EnsureEnvironment(ctx context.Context) (*EnsureResult, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(b.env.Dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("environment path %s exists but is not a directory", b.env.Dir)
		}

		meta, err := readMetadata(b.env.Dir)
		if err != nil {
			return nil, err
		}
		logger.Info("Environment already present, reusing it.", "dir", b.env.Dir)
		return &EnsureResult{Created: false, Path: b.env.Dir, Meta: meta}, nil

	case os.IsNotExist(err):
		logger.Info("Environment not found, creating it.", "dir", b.env.Dir)
		if err := b.tc.CreateEnv(ctx, b.env.Dir); err != nil {
			return nil, err
		}

		meta := &Metadata{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Toolchain: b.tc.Name(),
		}
		if err := writeMetadata(b.env.Dir, meta); err != nil {
			return nil, err
		}
		logger.Info("Environment created.", "dir", b.env.Dir, "id", meta.ID)
		return &EnsureResult{Created: true, Path: b.env.Dir, Meta: meta}, nil

	default:
		return nil, fmt.Errorf("probe environment directory %s: %w", b.env.Dir, err)
	}
}

// Sync installs the dependency manifest when the environment was just
// created, or when force is set. A pre-existing environment is reused
// without reinstalling; if its recorded manifest hash no longer matches the
// manifest on disk, a warning points the operator at the force path.
// It reports whether an install ran.
func (b *Bootstrapper) Sync(ctx context.Context, res *EnsureResult, force bool) (bool, error) {
	logger := ctxlog.FromContext(ctx)

	if !res.Created && !force {
		b.warnOnManifestDrift(ctx, res)
		logger.Info("Dependencies already installed, skipping install step.")
		return false, nil
	}

	reqs, err := ParseManifestFile(b.env.Manifest)
	if err != nil {
		return false, err
	}
	logger.Info("Installing dependencies.", "manifest", b.env.Manifest, "entries", len(reqs))

	if err := b.tc.Install(ctx, res.Path, b.env.Manifest); err != nil {
		return false, err
	}

	hash, err := HashManifest(b.env.Manifest)
	if err != nil {
		return false, err
	}

	meta := res.Meta
	if meta == nil {
		// Adopted environment from the old scripts: give it an identity now.
		meta = &Metadata{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Toolchain: b.tc.Name(),
		}
		res.Meta = meta
	}
	meta.ManifestHash = hash
	if err := writeMetadata(res.Path, meta); err != nil {
		return false, err
	}

	logger.Info("Dependencies installed.", "entries", len(reqs))
	return true, nil
}

// warnOnManifestDrift compares the manifest on disk against the hash
// recorded at install time.
func (b *Bootstrapper) warnOnManifestDrift(ctx context.Context, res *EnsureResult) {
	if res.Meta == nil || res.Meta.ManifestHash == "" {
		return
	}

	hash, err := HashManifest(b.env.Manifest)
	if err != nil {
		// Manifest unreadable; the next install attempt will surface it.
		return
	}
	if hash != res.Meta.ManifestHash {
		logger := ctxlog.FromContext(ctx)
		logger.Warn("Dependency manifest changed since last install; run with -reinstall to sync.",
			"manifest", b.env.Manifest)
	}
}

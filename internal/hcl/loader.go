package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/adeptcoder014/devstrap/internal/config"
	"github.com/adeptcoder014/devstrap/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the top-level structure of a launcher config file.
type fileRoot struct {
	Environment *environmentBlock `hcl:"environment,block"`
	Server      *serverBlock      `hcl:"server,block"`
	Watch       *watchBlock       `hcl:"watch,block"`
}

type environmentBlock struct {
	Dir      *string `hcl:"dir,optional"`
	Manifest *string `hcl:"manifest,optional"`
	Python   *string `hcl:"python,optional"`
}

type serverBlock struct {
	Command []string `hcl:"command,optional"`
	Host    *string  `hcl:"host,optional"`
	Port    *int     `hcl:"port,optional"`
}

type watchBlock struct {
	Paths      []string `hcl:"paths,optional"`
	Extensions []string `hcl:"extensions,optional"`
	Ignore     []string `hcl:"ignore,optional"`
	Debounce   *string  `hcl:"debounce,optional"`
}

// Load reads the config file at path, decodes it, and merges it over the
// built-in defaults. An empty path yields the defaults unchanged.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	model := config.Default()

	if path != "" {
		logger.Debug("HCL loader started.", "path", path)

		parser := hclparse.NewParser()
		hclFile, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, envEvalContext(), &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
		}

		if err := mergeEnvironment(model.Environment, root.Environment); err != nil {
			return nil, fmt.Errorf("invalid environment block in %s: %w", path, err)
		}
		if err := mergeServer(model.Server, root.Server); err != nil {
			return nil, fmt.Errorf("invalid server block in %s: %w", path, err)
		}
		if err := mergeWatch(model.Watch, root.Watch); err != nil {
			return nil, fmt.Errorf("invalid watch block in %s: %w", path, err)
		}
	} else {
		logger.Debug("No config file provided, using built-in defaults.")
	}

	applyDerivedDefaults(model)

	if err := validate(model); err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded and translated into unified model.",
		"env_dir", model.Environment.Dir,
		"manifest", model.Environment.Manifest,
		"port", model.Server.Port,
	)
	return model, nil
}

// envEvalContext exposes the process environment as `env.<NAME>` so config
// expressions can reference variables like env.PORT.
func envEvalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func mergeEnvironment(dst *config.Environment, src *environmentBlock) error {
	if src == nil {
		return nil
	}
	if src.Dir != nil {
		if *src.Dir == "" {
			return fmt.Errorf("dir must not be empty")
		}
		dst.Dir = *src.Dir
	}
	if src.Manifest != nil {
		if *src.Manifest == "" {
			return fmt.Errorf("manifest must not be empty")
		}
		dst.Manifest = *src.Manifest
	}
	if src.Python != nil {
		dst.Python = *src.Python
	}
	return nil
}

func mergeServer(dst *config.Server, src *serverBlock) error {
	if src == nil {
		return nil
	}
	if src.Command != nil {
		dst.Command = src.Command
	}
	if src.Host != nil {
		if *src.Host == "" {
			return fmt.Errorf("host must not be empty")
		}
		dst.Host = *src.Host
	}
	if src.Port != nil {
		dst.Port = *src.Port
	}
	return nil
}

func mergeWatch(dst *config.Watch, src *watchBlock) error {
	if src == nil {
		return nil
	}
	if src.Paths != nil {
		dst.Paths = src.Paths
	}
	if src.Extensions != nil {
		dst.Extensions = src.Extensions
	}
	if src.Ignore != nil {
		dst.Ignore = src.Ignore
	}
	if src.Debounce != nil {
		d, err := time.ParseDuration(*src.Debounce)
		if err != nil {
			return fmt.Errorf("invalid debounce duration %q: %w", *src.Debounce, err)
		}
		dst.Debounce = d
	}
	return nil
}

// applyDerivedDefaults fills in values that depend on other settings: watch
// extensions are normalized to a leading dot, and the environment directory
// itself is always excluded from watching.
func applyDerivedDefaults(model *config.Model) {
	for i, ext := range model.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			model.Watch.Extensions[i] = "." + ext
		}
	}

	ignore := model.Watch.Ignore
	if ignore == nil {
		ignore = []string{".git", "__pycache__"}
	}
	ignore = append(ignore, model.Environment.Dir)
	model.Watch.Ignore = ignore
}

func validate(model *config.Model) error {
	if len(model.Server.Command) == 0 {
		return fmt.Errorf("server command must not be empty")
	}
	if model.Server.Port < 1 || model.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range 1-65535", model.Server.Port)
	}
	if len(model.Watch.Paths) == 0 {
		return fmt.Errorf("watch paths must not be empty")
	}
	if model.Watch.Debounce <= 0 {
		return fmt.Errorf("watch debounce must be positive")
	}
	return nil
}

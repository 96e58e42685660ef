// Package config loads the optional arbor user configuration.
//
// Configuration lives at <user-config-dir>/arbor/config.jsonc (JSONC —
// JSON with comments, stripped via github.com/tidwall/jsonc before
// standard encoding/json parsing) or config.yaml. A missing file means
// defaults; both formats carry the same fields.
//
// The loaded Config is threaded explicitly into every component that
// needs it — no component reads ambient process state mid-operation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// SelectorConfig names the interactive selector binary and its arguments.
type SelectorConfig struct {
	// Command is the selector binary, resolved via PATH.
	Command string `json:"command" yaml:"command"`

	// Args are passed to the binary ahead of the piped candidates.
	Args []string `json:"args" yaml:"args"`
}

// Config holds all user-tunable settings.
type Config struct {
	// WorktreeDir is the container directory name under the repository
	// root where all managed worktrees are placed.
	WorktreeDir string `json:"worktreeDir" yaml:"worktreeDir"`

	// Selector is the interactive fuzzy-finder invocation.
	Selector SelectorConfig `json:"selector" yaml:"selector"`

	// IgnoreFile overrides the default global ignore file path used when
	// git's core.excludesfile is unset.
	IgnoreFile string `json:"ignoreFile" yaml:"ignoreFile"`
}

// Default returns the built-in configuration: worktrees under
// ".worktrees", fzf as the selector.
func Default() *Config {
	return &Config{
		WorktreeDir: ".worktrees",
		Selector: SelectorConfig{
			Command: "fzf",
			Args:    []string{"--height", "40%", "--reverse"},
		},
	}
}

// IgnorePattern returns the full-line ignore pattern for the container
// directory, e.g. ".worktrees/". The trailing slash scopes the pattern
// to directories.
func (c *Config) IgnorePattern() string {
	return c.WorktreeDir + "/"
}

// DefaultIgnoreFile returns git's own default location for the global
// ignore file, used when core.excludesfile is unset and no override is
// configured.
func DefaultIgnoreFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", model.WrapCLIError(model.KindGeneral, "failed to resolve home directory", err)
	}
	return filepath.Join(home, ".config", "git", "ignore"), nil
}

// Load reads the user configuration, merged over defaults. The JSONC
// form wins when both files exist. A missing configuration directory or
// file is not an error.
func Load() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		// No resolvable config dir (e.g., HOME unset): run on defaults.
		return Default(), nil
	}
	return loadFrom(filepath.Join(dir, "arbor"))
}

func loadFrom(dir string) (*Config, error) {
	cfg := Default()

	jsoncPath := filepath.Join(dir, "config.jsonc")
	if data, err := os.ReadFile(jsoncPath); err == nil {
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, model.WrapCLIError(model.KindGeneral,
				fmt.Sprintf("failed to parse %s", jsoncPath), err)
		}
		return normalize(cfg), nil
	}

	yamlPath := filepath.Join(dir, "config.yaml")
	if data, err := os.ReadFile(yamlPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, model.WrapCLIError(model.KindGeneral,
				fmt.Sprintf("failed to parse %s", yamlPath), err)
		}
		return normalize(cfg), nil
	}

	return cfg, nil
}

// normalize backfills fields a partial config file left empty.
func normalize(cfg *Config) *Config {
	def := Default()
	if cfg.WorktreeDir == "" {
		cfg.WorktreeDir = def.WorktreeDir
	}
	if cfg.Selector.Command == "" {
		cfg.Selector = def.Selector
	}
	return cfg
}

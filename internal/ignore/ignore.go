package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// excludesKey is the global git configuration key naming the user-level
// ignore file.
const excludesKey = "core.excludesfile"

// GlobalConfig is the slice of git configuration access the configurator
// needs. *worktree.Manager satisfies it.
type GlobalConfig interface {
	GlobalConfigGet(key string) (string, error)
	GlobalConfigSet(key, value string) error
}

// Configurator idempotently ensures the worktree container pattern is
// present in the global ignore file. All inputs are explicit — nothing
// is read from ambient process state mid-operation.
type Configurator struct {
	// Git reads and writes global git configuration.
	Git GlobalConfig

	// DefaultPath is used (and registered in git config) when
	// core.excludesfile is unset.
	DefaultPath string

	// Pattern is the full-line ignore pattern to ensure, e.g. ".worktrees/".
	Pattern string
}

// Result describes what Ensure did.
type Result struct {
	// Path is the resolved ignore file location.
	Path string

	// Registered is true when core.excludesfile was unset and has been
	// pointed at DefaultPath.
	Registered bool

	// Appended is true when the pattern line was added; false when it
	// was already present.
	Appended bool
}

// Ensure resolves the ignore file location and appends the pattern line
// if no exactly matching line exists. Creating the file (and its parent
// directory) is part of the operation when the file is missing.
func (c *Configurator) Ensure() (Result, error) {
	var res Result

	path, err := c.Git.GlobalConfigGet(excludesKey)
	if err != nil {
		return res, model.WrapCLIError(model.KindGeneral, "failed to read global git config", err)
	}

	if path == "" {
		path = c.DefaultPath
		if err := c.Git.GlobalConfigSet(excludesKey, path); err != nil {
			return res, model.WrapCLIError(model.KindGeneral,
				fmt.Sprintf("failed to set %s", excludesKey), err)
		}
		res.Registered = true
	}

	path, err = expandHome(path)
	if err != nil {
		return res, err
	}
	res.Path = path

	present, err := hasLine(path, c.Pattern)
	if err != nil {
		return res, err
	}
	if present {
		return res, nil
	}

	if err := appendLine(path, c.Pattern); err != nil {
		return res, err
	}
	res.Appended = true
	return res, nil
}

// expandHome resolves a leading "~/" in paths read from git config,
// where tilde values are common and never expanded by git itself.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", model.WrapCLIError(model.KindGeneral, "failed to resolve home directory", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// hasLine reports whether the file contains a line exactly equal to
// pattern. A missing file reads as empty.
func hasLine(path, pattern string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, model.WrapCLIError(model.KindGeneral,
			fmt.Sprintf("failed to read ignore file %s", path), err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if line == pattern {
			return true, nil
		}
	}
	return false, nil
}

// appendLine appends pattern as its own line, creating the file and its
// parent directory when missing. A separating newline is inserted first
// when the existing content does not end with one, so the pattern always
// occupies a full line of its own.
func appendLine(path, pattern string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return model.WrapCLIError(model.KindGeneral,
			fmt.Sprintf("failed to create directory for %s", path), err)
	}

	prefix := ""
	if data, err := os.ReadFile(path); err == nil {
		if len(data) > 0 && data[len(data)-1] != '\n' {
			prefix = "\n"
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return model.WrapCLIError(model.KindGeneral,
			fmt.Sprintf("failed to open ignore file %s", path), err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(prefix + pattern + "\n"); err != nil {
		return model.WrapCLIError(model.KindGeneral,
			fmt.Sprintf("failed to append to ignore file %s", path), err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repo override file at the repository root.
const LocalConfigFileName = ".agentkit.toml"

// LocalConfig holds per-repo overrides from .agentkit.toml.
// Zero-value strings mean "not set" (inherit from global).
type LocalConfig struct {
	GitHub LocalGitHub `toml:"github"`
}

// LocalGitHub holds per-repo github-agent overrides. Credential settings
// are global only, so a checkout cannot decide where a token is written.
type LocalGitHub struct {
	Remote      string `toml:"remote"`
	DefaultBase string `toml:"default_base"`
}

// LoadLocal reads a per-repo .agentkit.toml from the given repo root.
// Returns nil (no error) if the file doesn't exist.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}
	return &local, nil
}

const defaultLocalConfig = `# agentkit local config (per-repo overrides)
# Place this file at the root of the repository.
# Settings here override ~/.config/agentkit/config.toml for this repo only.

# [github]
# remote = "origin"
# default_base = "develop"
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

package config

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	merged := *global

	if local.GitHub.Remote != "" {
		merged.GitHub.Remote = local.GitHub.Remote
	}
	if local.GitHub.DefaultBase != "" {
		merged.GitHub.DefaultBase = local.GitHub.DefaultBase
	}

	return &merged
}

// ForRepo returns the effective config for the repository rooted at
// repoPath. An empty repoPath returns global.
func ForRepo(global *Config, repoPath string) (*Config, error) {
	if repoPath == "" {
		return global, nil
	}
	local, err := LoadLocal(repoPath)
	if err != nil {
		return nil, err
	}
	return MergeLocal(global, local), nil
}

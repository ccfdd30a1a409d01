// Package config handles loading and validation of agentkit configuration.
//
// Configuration is read from ~/.config/agentkit/config.toml with
// environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - Per-repo .agentkit.toml ([github] section only, github-agent)
//   - AGENTKIT_SEARCH_URL, AGENTKIT_USER_AGENT, AGENTKIT_CREDENTIALS_FILE, GH_HOST
//   - .env in the working directory (does not override the real environment)
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - research.search_url: HTML search endpoint (DuckDuckGo by default)
//   - research.max_results, research.format: CLI defaults for the research tool
//   - research.markdown_limit, research.text_limit: per-result truncation
//   - github.default_base: base branch for create-pr
//   - github.credentials_file: git credential store rewritten by fix-creds
//
// # Path Validation
//
// credentials_file must be absolute or start with ~ so it does not depend
// on the working directory.
package config

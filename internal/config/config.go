package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Duration is a time.Duration that decodes from TOML strings like "15s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ResearchConfig holds settings for the research tool
type ResearchConfig struct {
	SearchURL     string   `toml:"search_url" json:"search_url"`
	UserAgent     string   `toml:"user_agent" json:"user_agent"`
	MaxResults    int      `toml:"max_results" json:"max_results"`
	Format        string   `toml:"format" json:"format"` // "markdown", "json", or "text"
	SearchTimeout Duration `toml:"search_timeout" json:"search_timeout"`
	FetchTimeout  Duration `toml:"fetch_timeout" json:"fetch_timeout"`
	MarkdownLimit int      `toml:"markdown_limit" json:"markdown_limit"` // runes of content per entry in markdown output
	TextLimit     int      `toml:"text_limit" json:"text_limit"`         // runes of content per entry in text output
}

// GitHubConfig holds settings for the github-agent tool
type GitHubConfig struct {
	Host               string `toml:"host" json:"host"`
	Remote             string `toml:"remote" json:"remote"`
	DefaultBase        string `toml:"default_base" json:"default_base"`
	CredentialsFile    string `toml:"credentials_file" json:"credentials_file"`
	EmbedTokenInRemote bool   `toml:"embed_token_in_remote" json:"embed_token_in_remote"`
}

// Config holds the agentkit configuration
type Config struct {
	Research ResearchConfig `toml:"research" json:"research"`
	GitHub   GitHubConfig   `toml:"github" json:"github"`
}

// Defaults used when the config file leaves a value unset.
const (
	DefaultSearchURL  = "https://html.duckduckgo.com/html/"
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultMaxResults = 5
	DefaultFormat     = "markdown"
	DefaultHost       = "github.com"
	DefaultRemote     = "origin"
	DefaultBase       = "main"
	DefaultCredsFile  = "~/.git-credentials"

	DefaultMarkdownLimit = 5000
	DefaultTextLimit     = 3000
)

// Default returns the default configuration
func Default() Config {
	return Config{
		Research: ResearchConfig{
			SearchURL:     DefaultSearchURL,
			UserAgent:     DefaultUserAgent,
			MaxResults:    DefaultMaxResults,
			Format:        DefaultFormat,
			SearchTimeout: Duration{10 * time.Second},
			FetchTimeout:  Duration{15 * time.Second},
			MarkdownLimit: DefaultMarkdownLimit,
			TextLimit:     DefaultTextLimit,
		},
		GitHub: GitHubConfig{
			Host:            DefaultHost,
			Remote:          DefaultRemote,
			DefaultBase:     DefaultBase,
			CredentialsFile: DefaultCredsFile,
		},
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the config file location: $AGENTKIT_CONFIG if set,
// otherwise ~/.config/agentkit/config.toml.
func Path() (string, error) {
	if p := os.Getenv("AGENTKIT_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "agentkit", "config.toml"), nil
}

// dotEnvKeys are the only variables taken from a .env file. Anything that
// decides where credentials go (AGENTKIT_CONFIG, AGENTKIT_CREDENTIALS_FILE,
// GH_HOST, GH_TOKEN) must come from the real environment.
var dotEnvKeys = []string{"AGENTKIT_SEARCH_URL", "AGENTKIT_USER_AGENT"}

// loadDotEnv copies the allowed keys of .env in the working directory into
// the environment. Existing variables win.
func loadDotEnv() error {
	vars, err := godotenv.Read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, key := range dotEnvKeys {
		v, ok := vars[key]
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, v); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the research settings of .env in the working directory into
// the environment (existing variables win), then the config file, then
// environment overrides. Returns Default() with no error if the file
// doesn't exist.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Default(), fmt.Errorf("failed to load .env: %w", err)
	}

	path, err := Path()
	if err != nil {
		return Default(), nil
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		return Default(), err
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// LoadFrom reads and validates the config file at path.
// A missing file yields Default().
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	fillDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// fillDefaults restores defaults for values explicitly emptied in the file.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Research.SearchURL == "" {
		cfg.Research.SearchURL = def.Research.SearchURL
	}
	if cfg.Research.UserAgent == "" {
		cfg.Research.UserAgent = def.Research.UserAgent
	}
	if cfg.Research.Format == "" {
		cfg.Research.Format = def.Research.Format
	}
	if cfg.Research.SearchTimeout.Duration <= 0 {
		cfg.Research.SearchTimeout = def.Research.SearchTimeout
	}
	if cfg.Research.FetchTimeout.Duration <= 0 {
		cfg.Research.FetchTimeout = def.Research.FetchTimeout
	}
	if cfg.GitHub.Host == "" {
		cfg.GitHub.Host = def.GitHub.Host
	}
	if cfg.GitHub.Remote == "" {
		cfg.GitHub.Remote = def.GitHub.Remote
	}
	if cfg.GitHub.DefaultBase == "" {
		cfg.GitHub.DefaultBase = def.GitHub.DefaultBase
	}
	if cfg.GitHub.CredentialsFile == "" {
		cfg.GitHub.CredentialsFile = def.GitHub.CredentialsFile
	}
}

// applyEnvOverrides applies AGENTKIT_* and GH_HOST environment variables.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("AGENTKIT_SEARCH_URL"); v != "" {
		cfg.Research.SearchURL = v
	}
	if v := os.Getenv("AGENTKIT_USER_AGENT"); v != "" {
		cfg.Research.UserAgent = v
	}
	if v := os.Getenv("AGENTKIT_CREDENTIALS_FILE"); v != "" {
		if err := ValidatePath(v, "AGENTKIT_CREDENTIALS_FILE"); err != nil {
			return err
		}
		cfg.GitHub.CredentialsFile = v
	}
	if v := os.Getenv("GH_HOST"); v != "" {
		cfg.GitHub.Host = v
	}
	return nil
}

// CredentialsPath returns the expanded git-credentials file path.
func (c *Config) CredentialsPath() (string, error) {
	return ExpandPath(c.GitHub.CredentialsFile)
}

const defaultConfig = `# agentkit configuration
# Location: ~/.config/agentkit/config.toml (override with AGENTKIT_CONFIG)
# AGENTKIT_* variables override the values below. A .env file in the working
# directory may set AGENTKIT_SEARCH_URL and AGENTKIT_USER_AGENT only.

[research]
# HTML search endpoint (DuckDuckGo HTML results page)
search_url = "https://html.duckduckgo.com/html/"

# User-Agent sent for search and page fetches
# user_agent = "Mozilla/5.0 ..."

# Default number of search results to process (--max-results)
max_results = 5

# Default output format: "markdown", "json", or "text"
format = "markdown"

search_timeout = "10s"
fetch_timeout = "15s"

# Content truncation per result (runes)
markdown_limit = 5000
text_limit = 3000

[github]
host = "github.com"
remote = "origin"

# Base branch for create-pr when --base is not given
default_base = "main"

# git credential store file updated by fix-creds
# Must be absolute or start with ~
credentials_file = "~/.git-credentials"

# fix-creds rewrites the remote to https://USER@HOST/OWNER/REPO.git.
# Set to true to embed the token in the remote URL instead.
embed_token_in_remote = false
`

// DefaultConfig returns the commented default config file content.
func DefaultConfig() string {
	return defaultConfig
}

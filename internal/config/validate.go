package config

import (
	"fmt"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidFormats = []string{"markdown", "json", "text"}
)

// Validate checks field values after defaults are filled.
func (c *Config) Validate() error {
	if err := validateEnum(c.Research.Format, "research.format", ValidFormats); err != nil {
		return err
	}
	if c.Research.MaxResults < 1 {
		return fmt.Errorf("invalid research.max_results %d: must be at least 1", c.Research.MaxResults)
	}
	if c.Research.MarkdownLimit < 0 || c.Research.TextLimit < 0 {
		return fmt.Errorf("research.markdown_limit and research.text_limit must not be negative")
	}
	if !strings.HasPrefix(c.Research.SearchURL, "http://") && !strings.HasPrefix(c.Research.SearchURL, "https://") {
		return fmt.Errorf("invalid research.search_url %q: must be an http(s) URL", c.Research.SearchURL)
	}
	if strings.ContainsAny(c.GitHub.Host, "/:@ ") {
		return fmt.Errorf("invalid github.host %q: must be a bare host name", c.GitHub.Host)
	}
	return ValidatePath(c.GitHub.CredentialsFile, "github.credentials_file")
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, FormatOptions(allowed))
	}
	return nil
}

// FormatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func FormatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

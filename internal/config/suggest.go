package config

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Suggest returns the allowed value closest to value, or "" when nothing
// is close. Fuzzy subsequence matches win; otherwise a value sharing the
// first letter is returned.
func Suggest(value string, allowed []string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	if matches := fuzzy.Find(value, allowed); len(matches) > 0 {
		return matches[0].Str
	}
	for _, a := range allowed {
		if strings.HasPrefix(a, value[:1]) {
			return a
		}
	}
	return ""
}

// ValidateChoice checks a flag value against allowed values and returns an
// error naming the options plus a "did you mean" hint when one is close.
func ValidateChoice(value, name string, allowed []string) error {
	err := validateEnum(value, name, allowed)
	if err == nil {
		return nil
	}
	if s := Suggest(value, allowed); s != "" {
		return fmt.Errorf("%w (did you mean %q?)", err, s)
	}
	return err
}

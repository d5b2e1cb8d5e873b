package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
//
// Only mapped variables are read. Values are typed loosely: integers
// become int64, true/false/yes/no/on/off become bool, anything else
// stays a string.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "QUILL_")
	mapping map[string]string // Env var name without prefix -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader for prefix with the given mapping from
// unprefixed variable names to config paths.
func NewEnvLoader(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		lookup:  os.LookupEnv,
	}
}

// WithLookup replaces the environment lookup, for tests.
func (l *EnvLoader) WithLookup(lookup func(string) (string, bool)) *EnvLoader {
	l.lookup = lookup
	return l
}

// Prefix returns the variable prefix.
func (l *EnvLoader) Prefix() string {
	return l.prefix
}

// Load reads environment variables and returns a configuration map.
// Empty string values are treated as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for name, path := range l.mapping {
		if val, ok := l.lookup(l.prefix + name); ok {
			setByPath(config, path, parseValue(val))
		}
	}
	return config, nil
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	return s
}

var _ Loader = (*EnvLoader)(nil)

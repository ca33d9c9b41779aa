package config

import (
	"os"
	"strings"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "SIDEWAYS_LOG_LEVEL"
	EnvWrap      = "SIDEWAYS_WRAP"
	EnvFiletypes = "SIDEWAYS_FILETYPES"
	EnvConfig    = "SIDEWAYS_CONFIG"
)

// LookupFunc returns the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides c with the SIDEWAYS_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFrom(os.LookupEnv)
}

// ApplyEnvFrom overrides c with variables from lookup.
// Empty values are treated as set, except for the filetype list where an
// empty value clears the restriction.
func (c *Config) ApplyEnvFrom(lookup LookupFunc) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.Logging.Level = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvWrap); ok {
		b, ok := parseBool(v)
		if !ok {
			return &ValidationError{Path: EnvWrap, Value: v, Err: ErrInvalidValue}
		}
		c.Swap.Wrap = b
	}

	if v, ok := lookup(EnvFiletypes); ok {
		c.Swap.Filetypes = splitList(v)
	}

	return c.Validate()
}

// parseBool accepts the spellings people put in environment variables.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0", "":
		return false, true
	default:
		return false, false
	}
}

// splitList splits a comma or whitespace separated list.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// PathFromEnv returns SIDEWAYS_CONFIG if set, else DefaultPath.
func PathFromEnv() string {
	if p, ok := os.LookupEnv(EnvConfig); ok && p != "" {
		return p
	}
	return DefaultPath()
}

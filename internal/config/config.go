package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/sideways/internal/engine/profile"
)

// Default configuration values.
const (
	DefaultLogLevel      = "info"
	DefaultPluginTimeout = 5 * time.Second

	// FileName is the name of the configuration file inside the
	// configuration directory.
	FileName = "config.toml"
)

// Config is the sideways configuration.
type Config struct {
	Logging  LoggingConfig  `toml:"logging"`
	Swap     SwapConfig     `toml:"swap"`
	Profiles ProfilesConfig `toml:"profiles"`
	Plugins  PluginsConfig  `toml:"plugins"`

	// path is the file the configuration was loaded from, if any.
	path string
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// SwapConfig configures swap behavior.
type SwapConfig struct {
	// Wrap exchanges the first and last siblings at group boundaries
	// instead of doing nothing.
	Wrap bool `toml:"wrap"`

	// Filetypes restricts swapping to the listed filetypes.
	// Empty enables all.
	Filetypes []string `toml:"filetypes"`
}

// ProfilesConfig adds or overrides filetype profiles.
type ProfilesConfig struct {
	// Files lists profile files (TOML or YAML), relative to the
	// configuration file.
	Files []string `toml:"files"`

	// Custom holds profiles defined inline. They are applied after Files.
	Custom []profile.Definition `toml:"custom"`
}

// PluginsConfig configures Lua scripts.
type PluginsConfig struct {
	// Scripts lists Lua files run at startup, relative to the
	// configuration file.
	Scripts []string `toml:"scripts"`

	// Timeout bounds each script call, as a Go duration string.
	Timeout string `toml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: DefaultLogLevel},
		Plugins: PluginsConfig{Timeout: DefaultPluginTimeout.String()},
	}
}

// DefaultDir returns the configuration directory,
// $XDG_CONFIG_HOME/sideways or ~/.config/sideways.
func DefaultDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sideways")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "sideways")
	}
	return ""
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	dir := DefaultDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, FileName)
}

// Path returns the file the configuration was loaded from.
// Empty for configurations that were not read from disk.
func (c *Config) Path() string {
	return c.path
}

// ResolvePath makes p absolute relative to the configuration file.
// A leading ~ expands to the home directory.
func (c *Config) ResolvePath(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// ProfileFiles returns the resolved profile file paths.
func (c *Config) ProfileFiles() []string {
	out := make([]string, len(c.Profiles.Files))
	for i, f := range c.Profiles.Files {
		out[i] = c.ResolvePath(f)
	}
	return out
}

// Scripts returns the resolved plugin script paths.
func (c *Config) Scripts() []string {
	out := make([]string, len(c.Plugins.Scripts))
	for i, f := range c.Plugins.Scripts {
		out[i] = c.ResolvePath(f)
	}
	return out
}

// PluginTimeout returns the parsed plugin timeout.
func (c *Config) PluginTimeout() time.Duration {
	if c.Plugins.Timeout == "" {
		return DefaultPluginTimeout
	}
	d, err := time.ParseDuration(c.Plugins.Timeout)
	if err != nil || d <= 0 {
		return DefaultPluginTimeout
	}
	return d
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Err: ErrInvalidLevel}
	}

	if c.Plugins.Timeout != "" {
		d, err := time.ParseDuration(c.Plugins.Timeout)
		if err != nil || d <= 0 {
			return &ValidationError{Path: "plugins.timeout", Value: c.Plugins.Timeout, Err: ErrInvalidValue}
		}
	}

	for i, ft := range c.Swap.Filetypes {
		if strings.TrimSpace(ft) == "" {
			return &ValidationError{Path: "swap.filetypes", Value: i, Err: ErrInvalidValue}
		}
	}

	for _, def := range c.Profiles.Custom {
		if strings.TrimSpace(def.Name) == "" {
			return &ValidationError{Path: "profiles.custom", Value: def.Name, Err: profile.ErrNoName}
		}
	}
	return nil
}

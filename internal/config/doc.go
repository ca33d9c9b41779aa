// Package config provides the configuration system for sideways.
//
// Configuration comes from three places, later ones overriding earlier:
//
//	┌─────────────────────────────┐
//	│  3. Command Line Flags      │  ← Highest priority (applied by the caller)
//	├─────────────────────────────┤
//	│  2. Environment Variables   │  ← SIDEWAYS_LOG_LEVEL, SIDEWAYS_WRAP, ...
//	├─────────────────────────────┤
//	│  1. Config File             │  ← ~/.config/sideways/config.toml
//	└─────────────────────────────┘
//
// A missing config file is not an error; the built-in defaults apply.
//
// # File Format
//
//	[logging]
//	level = "debug"
//
//	[swap]
//	wrap = true
//	filetypes = ["rust", "go"]
//
//	[profiles]
//	files = ["profiles.yaml"]
//
//	[[profiles.custom]]
//	name = "zig"
//	base = "c"
//	extensions = [".zig"]
//
//	[plugins]
//	scripts = ["init.lua"]
//	timeout = "2s"
//
// # Basic Usage
//
//	cfg, err := config.Load(config.PathFromEnv())
//	if err != nil {
//		return err
//	}
//	if err := cfg.ApplyEnv(); err != nil {
//		return err
//	}
//
// # Live Reload
//
// Watcher reports changes to the config file and the profile files it
// names:
//
//	w, err := config.NewWatcher(append([]string{cfg.Path()}, cfg.ProfileFiles()...))
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	for ev := range w.Events() {
//		// reload
//	}
package config

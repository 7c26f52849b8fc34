// Package config loads, normalizes, and validates the study CLI configuration.
//
// Configuration lives in a TOML file (by default ~/.config/study/config.toml,
// falling back to ./study.toml). Missing files are not an error: Default()
// supplies every value. Path fields are expanded (~ and relative paths) during
// Load, and a small set of environment variables override file values so the
// CLI can be pointed at a different backend without editing the file.
package config

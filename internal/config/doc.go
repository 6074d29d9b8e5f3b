// Package config handles loading and validation of thumbs configuration.
//
// Configuration is read from ~/.config/thumbs/config.toml, or from the file
// named by THUMBS_CONFIG. A missing file is not an error.
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags
//   - THUMBS_LOG env var: base log level
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - cache_dir: cache directory holding thumbnails/ (must be absolute or ~/...)
//   - recursive, hidden: defaults for -r and -a
//   - lookup_failures: also search fail/<tool> when locating and deleting
//   - [cleanup] globs: default include/exclude tokens for "thumbs cleanup"
//   - [cleanup] include_failures: also scan fail/<tool> during cleanup
//   - [log]: level, optional rotated log file
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config

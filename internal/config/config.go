package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/thumbs-cli/thumbs/internal/globset"
	"github.com/thumbs-cli/thumbs/internal/log"
	"github.com/thumbs-cli/thumbs/internal/storage"
)

// EnvConfig names the environment variable that overrides the config path.
const EnvConfig = "THUMBS_CONFIG"

// CleanupConfig holds cleanup-related configuration
type CleanupConfig struct {
	Globs           []string `toml:"globs" json:"globs"`                       // tokens, leading "!" excludes
	IncludeFailures bool     `toml:"include_failures" json:"include_failures"` // scan fail/<tool> too
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `toml:"level" json:"level"`
	File       string `toml:"file" json:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" json:"max_backups"`
	Compress   bool   `toml:"compress" json:"compress"`
}

// FileOptions converts the file settings for log.Logger.AddFile.
func (c LogConfig) FileOptions() log.FileOptions {
	return log.FileOptions{
		Path:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}

// Config holds the thumbs configuration
type Config struct {
	CacheDir       string        `toml:"cache_dir" json:"cache_dir"`
	Recursive      bool          `toml:"recursive" json:"recursive"`
	Hidden         bool          `toml:"hidden" json:"hidden"`
	LookupFailures bool          `toml:"lookup_failures" json:"lookup_failures"`
	Cleanup        CleanupConfig `toml:"cleanup" json:"cleanup"`
	Log            LogConfig     `toml:"log" json:"log"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		LookupFailures: true,
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
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

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
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

// Path returns the config file location. THUMBS_CONFIG wins over
// ~/.config/thumbs/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return expandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "thumbs", "config.toml"), nil
}

// Load reads the config from Path.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Keys missing from the file keep
// their default values.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	// shells don't expand ~ in config files
	if cfg.CacheDir, err = expandPath(cfg.CacheDir); err != nil {
		return Default(), fmt.Errorf("expand cache_dir: %w", err)
	}
	if cfg.Log.File, err = expandPath(cfg.Log.File); err != nil {
		return Default(), fmt.Errorf("expand log.file: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if err := ValidatePath(c.CacheDir, "cache_dir"); err != nil {
		return err
	}
	if err := ValidatePath(c.Log.File, "log.file"); err != nil {
		return err
	}
	if err := validateEnum(c.Log.Level, "log.level", ValidLogLevels); err != nil {
		return err
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return errors.New("log.max_size_mb and log.max_backups must not be negative")
	}
	if _, err := globset.Parse(c.Cleanup.Globs); err != nil {
		return fmt.Errorf("invalid cleanup.globs: %w", err)
	}
	return nil
}

// Init creates a default config file at Path().
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	write := storage.CreateExclusive
	if force {
		write = storage.WriteFile
	}
	if err := write(path, []byte(DefaultConfig), 0o644); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
		return "", err
	}
	return path, nil
}

// DefaultConfig is the commented file written by "thumbs config init".
const DefaultConfig = `# thumbs configuration
# Config location: ~/.config/thumbs/config.toml (override with THUMBS_CONFIG)

# Cache directory containing thumbnails/
# Must be an absolute path or start with ~
# Default: $XDG_CACHE_HOME or ~/.cache
# cache_dir = "~/.cache"

# Recurse into directories by default (same as -r)
# recursive = false

# Include hidden files and directories by default (same as -a)
# hidden = false

# Also look in fail/<tool> when locating and deleting thumbnails
# lookup_failures = true

[cleanup]
# Default glob tokens for "thumbs cleanup" when none are given.
# A leading "!" excludes. Without an include token, everything is included.
# globs = ["!/tmp/**", "!/run/media/**"]

# Also scan fail/<tool> for orphans
# include_failures = false

[log]
# Base log level: off, error, warn, info, debug or trace
# -v and -q move up and down from here. THUMBS_LOG overrides this value.
# level = "warn"

# Also append logs to a rotated file
# file = "~/.local/state/thumbs/thumbs.log"
# max_size_mb = 10
# max_backups = 3
# compress = false
`

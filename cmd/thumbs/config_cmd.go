package main

import (
	"github.com/spf13/cobra"

	"github.com/thumbs-cli/thumbs/internal/config"
	"github.com/thumbs-cli/thumbs/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage thumbs configuration.

Config file: ~/.config/thumbs/config.toml (override with THUMBS_CONFIG)`,
		Example: `  thumbs config init   # Create default config
  thumbs config show   # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  thumbs config init      # Create config
  thumbs config init -f   # Overwrite existing config
  thumbs config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			if stdout {
				out.Printf("%s", config.DefaultConfig)
				return nil
			}

			path, err := config.Init(force)
			if err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Example: `  thumbs config show          # Show config
  thumbs config show --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				return out.JSON(cfg)
			}

			path, err := config.Path()
			if err != nil {
				path = "(unknown)"
			}
			out.Printf("Config file: %s\n\n", path)

			cacheDir := cfg.CacheDir
			if cacheDir == "" {
				cacheDir = "(platform default)"
			}
			out.Printf("cache_dir: %s\n", cacheDir)
			out.Printf("recursive: %v\n", cfg.Recursive)
			out.Printf("hidden: %v\n", cfg.Hidden)
			out.Printf("lookup_failures: %v\n", cfg.LookupFailures)
			out.Printf("cleanup.globs: %v\n", cfg.Cleanup.Globs)
			out.Printf("cleanup.include_failures: %v\n", cfg.Cleanup.IncludeFailures)
			level := cfg.Log.Level
			if level == "" {
				level = "warn"
			}
			out.Printf("log.level: %s\n", level)
			if cfg.Log.File != "" {
				out.Printf("log.file: %s (max %d MB, %d backups, compress %v)\n",
					cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.Compress)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

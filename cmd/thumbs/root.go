package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/thumbs-cli/thumbs/internal/cachedir"
	"github.com/thumbs-cli/thumbs/internal/config"
	"github.com/thumbs-cli/thumbs/internal/log"
	"github.com/thumbs-cli/thumbs/internal/output"
	"github.com/thumbs-cli/thumbs/internal/thumbs"
	"github.com/thumbs-cli/thumbs/internal/ui/prompt"
)

// envLog names the environment variable holding the base log level.
const envLog = "THUMBS_LOG"

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// app holds the global flags and the terminal hooks shared by commands.
type app struct {
	verbose   int
	quiet     int
	recursive bool
	hidden    bool

	// interactive reports whether the user can answer a prompt
	interactive func() bool
	// progress reports whether a spinner may be drawn on stderr
	progress func() bool
	confirm  func(prompt string) (prompt.ConfirmResult, error)
	now      func() time.Time
	stderr   io.Writer
}

func newApp() *app {
	return &app{
		interactive: func() bool {
			return isTerminal(os.Stdout) && isTerminal(os.Stdin)
		},
		progress: func() bool { return isTerminal(os.Stderr) },
		confirm:  prompt.Confirm,
		now:      time.Now,
		stderr:   os.Stderr,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "thumbs",
		Short: "Find and delete generated thumbnails",
		Long: `thumbs finds, deletes and cleans up the thumbnails that file managers
store in the freedesktop.org thumbnail cache (~/.cache/thumbnails).

A thumbnail is named after the MD5 digest of its source file's URI, so thumbs
can locate the thumbnails of any file, and find thumbnails whose source file
no longer exists.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "Increase log verbosity (repeatable)")
	root.PersistentFlags().CountVarP(&a.quiet, "quiet", "q", "Decrease log verbosity (repeatable)")
	root.PersistentFlags().BoolVarP(&a.recursive, "recursive", "r", false, "Recurse into directories")
	root.PersistentFlags().BoolVarP(&a.hidden, "all", "a", false, "Include hidden files and directories")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	root.AddCommand(newLocateCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newCleanupCmd(a))

	root.AddCommand(newConfigCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// setup applies the verbosity flags and fills unset flags from the config.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		def := config.Default()
		cfg = &def
		cmd.SetContext(config.WithConfig(ctx, cfg))
	}

	l := log.FromContext(ctx)
	l.SetLevel(log.WithVerbosity(l.Level(), a.verbose, a.quiet))

	if !cmd.Flags().Changed("recursive") {
		a.recursive = cfg.Recursive
	}
	if !cmd.Flags().Changed("all") {
		a.hidden = cfg.Hidden
	}
	return nil
}

// thumbnailer opens the configured cache.
func (a *app) thumbnailer(ctx context.Context, cleanupFailures bool) (*thumbs.Thumbnailer, error) {
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)

	root, err := cachedir.Root(cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	l.Debug("using thumbnail cache", "root", root)

	th := thumbs.New(root, thumbs.Options{
		Recursive:       a.recursive,
		Hidden:          a.hidden,
		LookupFailures:  cfg.LookupFailures,
		CleanupFailures: cleanupFailures,
	}, l)
	if l.Enabled(log.LevelTrace) {
		for _, loc := range th.Locations() {
			l.Trace("cache location", "name", loc.Name(), "path", loc.Path)
		}
	}
	return th, nil
}

// baseLevel picks the level before -v/-q: THUMBS_LOG, then log.level.
func baseLevel(env string, cfg config.Config) (log.Level, error) {
	if env != "" {
		lvl, err := log.ParseLevel(env)
		if err != nil {
			return log.DefaultLevel, fmt.Errorf("%s: %w", envLog, err)
		}
		return lvl, nil
	}
	if cfg.Log.Level != "" {
		return log.ParseLevel(cfg.Log.Level)
	}
	return log.DefaultLevel, nil
}

// Execute runs the root command and exits with 0 when something was found
// and handled, 125 when there was nothing to do, and 1 on failure.
func Execute() {
	loadedCfg, cfgErr := config.Load()

	lvl, lvlErr := baseLevel(os.Getenv(envLog), loadedCfg)
	logger := log.New(os.Stderr, lvl)
	if cfgErr != nil {
		logger.Warn(cfgErr.Error())
	}
	if lvlErr != nil {
		logger.Warn(lvlErr.Error())
	}
	logger.AddFile(loadedCfg.Log.FileOptions())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	ctx = log.WithLogger(ctx, logger)
	ctx = output.WithPrinter(ctx, os.Stdout)
	ctx = config.WithConfig(ctx, &loadedCfg)

	a := newApp()
	rootCmd := newRootCmd(a)
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	code := exitCode(err)
	if code == exitFailure {
		reportError(a.stderr, logger, err)
	}

	cancel()
	_ = logger.Close()
	os.Exit(code)
}

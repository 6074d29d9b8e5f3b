package main

import (
	"github.com/spf13/cobra"

	"github.com/thumbs-cli/thumbs/internal/config"
	"github.com/thumbs-cli/thumbs/internal/globset"
	"github.com/thumbs-cli/thumbs/internal/log"
	"github.com/thumbs-cli/thumbs/internal/output"
	"github.com/thumbs-cli/thumbs/internal/thumbs"
	"github.com/thumbs-cli/thumbs/internal/ui/progress"
)

func newCleanupCmd(a *app) *cobra.Command {
	var (
		force    bool
		failures bool
	)

	cmd := &cobra.Command{
		Use:     "cleanup [glob]...",
		Short:   "Find thumbnails of files that no longer exist",
		GroupID: GroupCore,
		Long: `Find thumbnails whose source file no longer exists.

Globs use .gitignore syntax and are matched against the source path. A glob
starting with "!" excludes matching paths. Without any include glob, every
path is included. Without any glob at all, cleanup.globs from the config
file is used.

Thumbnails of remote files are never touched.`,
		Example: `  thumbs cleanup                       # everything
  thumbs cleanup '/mnt/usb/**'          # only below /mnt/usb
  thumbs cleanup '!/tmp/**' -f          # everything except /tmp, no prompt
  thumbs cleanup --failures`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			tokens := args
			if len(tokens) == 0 {
				tokens = cfg.Cleanup.Globs
			}
			filter, err := globset.Parse(tokens)
			if err != nil {
				return usageError{err}
			}
			l.Debug("cleanup filter", "include", filter.Include.Patterns(), "exclude", filter.Exclude.Patterns())

			th, err := a.thumbnailer(ctx, failures || cfg.Cleanup.IncludeFailures)
			if err != nil {
				return err
			}

			// the spinner would garble interleaved log lines
			if a.progress() && !l.Enabled(log.LevelInfo) {
				sp := progress.NewSpinner(a.stderr, "Scanning thumbnails...")
				th.OnScanProgress(func(s thumbs.ScanStats) {
					sp.Update("Scanning thumbnails... %d checked", s.Scanned)
				})
				sp.Start()
				defer sp.Stop()
			}

			res, err := th.Cleanup(force, filter)
			if err != nil {
				return err
			}
			l.Debug("scan finished", "scanned", res.Scanned, "kept", res.Kept, "skipped", res.Skipped)

			n := len(res.Orphans)
			switch {
			case n == 0:
				l.Warn("Found no thumbnails to cleanup.")
				return errNothingFound
			case force:
				out.Printf("Deleted %d thumbnail(s).\n", n)
				return nil
			}
			return a.confirmRemove(cmd, res.Orphans)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without asking")
	cmd.Flags().BoolVar(&failures, "failures", false, "Also scan fail/<tool> thumbnails")

	return cmd
}

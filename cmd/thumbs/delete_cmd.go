package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thumbs-cli/thumbs/internal/log"
	"github.com/thumbs-cli/thumbs/internal/output"
	"github.com/thumbs-cli/thumbs/internal/timespec"
)

func newDeleteCmd(a *app) *cobra.Command {
	var (
		force        bool
		dryRun       bool
		lastAccessed string
	)

	cmd := &cobra.Command{
		Use:     "delete <path>...",
		Short:   "Delete the thumbnails of files",
		Aliases: []string{"rm"},
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		Long: `Delete the cached thumbnails of the given files.

Directories are skipped unless -r/--recursive is set. Hidden files inside
directories are skipped unless -a/--all is set.

Without -f/--force, thumbs asks before deleting anything when running in a
terminal, and only reports what it found otherwise.`,
		Example: `  thumbs delete ~/Pictures/cat.jpg
  thumbs delete -r ~/Downloads
  thumbs delete -rf --last-accessed 2w ~/Downloads
  thumbs delete -rn -v ~/Downloads    # show what would be deleted`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var accessedBefore time.Time
			if lastAccessed != "" {
				t, err := timespec.Parse(lastAccessed, a.now())
				if err != nil {
					return usageError{err}
				}
				accessedBefore = t
				l.Debug("only files accessed before", "time", t.Format(time.RFC3339))
			}

			th, err := a.thumbnailer(ctx, false)
			if err != nil {
				return err
			}
			res, err := th.Delete(args, !force, accessedBefore)
			if err != nil {
				return err
			}

			if res.SkippedDirs != 0 {
				l.Warn(fmt.Sprintf("Ignoring %d folder(s). Enable '-r/--recursive' to recurse into directories.", res.SkippedDirs))
			}
			if res.Filtered != 0 {
				l.Info("skipped recently accessed files", "count", res.Filtered)
			}
			if res.SkippedEntries != 0 {
				l.Info("skipped unreadable entries", "count", res.SkippedEntries)
			}

			n := len(res.Matches)
			switch {
			case n == 0:
				l.Warn("Found no thumbnails. Rerun with '-vv' for detailed information.")
				return errNothingFound
			case force:
				out.Printf("Deleted %d thumbnail(s).\n", n)
				return nil
			case dryRun:
				out.Printf("Found %d thumbnail(s) to delete.\n", n)
				return nil
			}
			return a.confirmRemove(cmd, res.Matches)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without asking")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Only report what would be deleted")
	cmd.Flags().StringVarP(&lastAccessed, "last-accessed", "l", "",
		"Only files last accessed before this time (e.g. \"2018-01-01 12:53:00\") or this long ago (e.g. \"2w3d\")")
	cmd.MarkFlagsMutuallyExclusive("force", "dry-run")

	return cmd
}

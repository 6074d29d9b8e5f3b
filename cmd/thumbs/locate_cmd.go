package main

import (
	"github.com/spf13/cobra"

	"github.com/thumbs-cli/thumbs/internal/output"
	"github.com/thumbs-cli/thumbs/internal/thumbs"
)

func newLocateCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "locate <file>",
		Short:   "Print the thumbnails of a file",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Print the path of every cached thumbnail of a file, one per line.

Exits with status 125 when the file has no thumbnail.`,
		Example: `  thumbs locate ~/Pictures/cat.jpg
  thumbs locate --json ~/Pictures/cat.jpg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			th, err := a.thumbnailer(ctx, false)
			if err != nil {
				return err
			}
			matches, err := th.Locate(args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				if matches == nil {
					matches = []thumbs.Match{}
				}
				if err := out.JSON(matches); err != nil {
					return err
				}
			} else {
				for _, m := range matches {
					out.Println(m.Thumbnail)
				}
			}

			if len(matches) == 0 {
				return errNothingFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thumbs-cli/thumbs/internal/output"
	"github.com/thumbs-cli/thumbs/internal/thumbs"
	"github.com/thumbs-cli/thumbs/internal/ui/static"
)

// confirmRemove asks before deleting matches. Outside a terminal it only
// reports how many were found.
func (a *app) confirmRemove(cmd *cobra.Command, matches []thumbs.Match) error {
	out := output.FromContext(cmd.Context())
	n := len(matches)

	if !a.interactive() {
		out.Printf("Found %d thumbnail(s) to delete. Use '-v' for details, or '-f/--force' to delete them.\n", n)
		return nil
	}

	for {
		res, err := a.confirm(fmt.Sprintf("Found %d thumbnail(s) to delete.\nDelete them?", n))
		if err != nil {
			return err
		}
		if res.Details {
			out.Println("Found thumbnails for:")
			out.Printf("%s", static.RenderTable([]string{"SOURCE", "THUMBNAIL"}, detailRows(matches)))
			continue
		}
		if !res.Confirmed {
			return nil
		}
		if err := thumbs.Remove(matches); err != nil {
			return err
		}
		out.Printf("Deleted %d thumbnail(s).\n", n)
		return nil
	}
}

func detailRows(matches []thumbs.Match) [][]string {
	rows := make([][]string, len(matches))
	for i, m := range matches {
		rows[i] = []string{m.Source, m.Thumbnail}
	}
	return rows
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show catalog details for an anime by MyAnimeList ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid anime id %q", args[0])
			}
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}
			rec, err := catalog.FetchFull(cmd.Context(), id)
			if err != nil {
				return err
			}

			rows := [][]string{
				{"ID", strconv.Itoa(rec.ID)},
				{"Title", valueOr(rec.Title, "Unknown")},
				{"Score", formatScore(rec)},
				{"Episodes", formatEpisodes(rec)},
				{"Status", valueOr(rec.Status, "-")},
				{"Year", formatYear(rec.Year)},
				{"Studios", valueOr(strings.Join(rec.StudioNames(), ", "), "-")},
				{"Genres", valueOr(strings.Join(rec.Genres, ", "), "-")},
				{"URL", valueOr(rec.URL, "-")},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
			fmt.Fprintln(out)
			fmt.Fprintln(out, rec.SynopsisOr("No synopsis available."))
			return nil
		},
	}
}

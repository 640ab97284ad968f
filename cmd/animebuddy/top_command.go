package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"animebuddy/internal/anime"
)

func newTopCommand(ctx *commandContext) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the top-ranked anime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("page must be at least 1 (got %d)", page)
			}
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}
			result, err := catalog.TopPage(cmd.Context(), page)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Records) == 0 {
				fmt.Fprintln(out, "No anime found")
				return nil
			}
			rows := make([][]string, 0, len(result.Records))
			for i, rec := range result.Records {
				rank := rec.Rank
				if rank == 0 {
					rank = (page-1)*len(result.Records) + i + 1
				}
				rows = append(rows, []string{
					strconv.Itoa(rank),
					strconv.Itoa(rec.ID),
					valueOr(rec.Title, "Unknown"),
					formatScore(rec),
					formatEpisodes(rec),
					formatYear(rec.Year),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "ID", "Title", "Score", "Episodes", "Year"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "Page %d of %d\n", result.CurrentPage, result.LastVisiblePage)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page of the ranking to show")
	return cmd
}

func formatScore(rec anime.Record) string {
	if rec.Score == nil {
		return "-"
	}
	return strconv.FormatFloat(*rec.Score, 'f', -1, 64)
}

func formatEpisodes(rec anime.Record) string {
	if rec.Episodes == nil {
		return "-"
	}
	return strconv.Itoa(*rec.Episodes)
}

func formatYear(year int) string {
	if year == 0 {
		return "-"
	}
	return strconv.Itoa(year)
}

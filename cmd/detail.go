package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"movielist-cli/service"
)

var detailCmd = &cobra.Command{
	Use:   "detail ID [ID...]",
	Short: "Show details for one or more titles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int, 0, len(args))
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", arg)
			}
			ids = append(ids, id)
		}

		results := rt.client.FetchDetails(cmd.Context(), ids)
		cache := openStore(rt.cfg)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Title", "Type", "Year", "Rating", "Genre", "Overview"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: 30},
			{Number: 6, WidthMax: 24},
			{Number: 7, WidthMax: 60},
		})
		t.Style().Options.SeparateRows = true

		failed := 0
		for _, result := range results {
			if result.Err != nil {
				failed++
				rt.logger.Warn("cmd.detail_failed", "id", result.ID, "err", result.Err)
				t.AppendRow(table.Row{result.ID, "Failed to load movie details", "", "", "", "", ""})
				continue
			}
			d := result.Detail
			t.AppendRow(table.Row{
				d.ID,
				d.Title,
				d.Type,
				d.ReleaseDate.Year(),
				strconv.FormatFloat(d.Rating, 'f', 1, 64),
				strings.Join(d.Genre, ", "),
				d.Description,
			})
			if cache != nil {
				if err := cache.RememberViewed(d.Item()); err != nil {
					rt.logger.Warn("cmd.remember_viewed_failed", "id", d.ID, "err", err)
				}
			}
		}
		t.Render()

		if failed == len(results) {
			return errors.Join(service.ErrLoadFailed, fmt.Errorf("%d of %d titles", failed, len(results)))
		}
		return nil
	},
}

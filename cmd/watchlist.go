package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"movielist-cli/model"
)

var myListCmd = &cobra.Command{
	Use:   "mylist",
	Short: "Show your To Watch and Watched lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		statusFlag, _ := cmd.Flags().GetString("status")
		statuses := model.Statuses
		if statusFlag != "" {
			status, err := model.ParseStatus(statusFlag)
			if err != nil {
				return err
			}
			statuses = []model.Status{status}
		}

		list, err := rt.client.FetchList(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Failed to load your list. Please try again later.")
			return err
		}

		rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"List", "ID", "Title", "Year", "Genre"}, rowConfigAutoMerge)
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, AutoMerge: true},
			{Number: 3, WidthMax: 36},
		})

		for _, status := range statuses {
			entries := list.Bucket(status)
			if len(entries) == 0 {
				t.AppendRow(table.Row{status, "", fmt.Sprintf("Your %s list is empty.", status), "", ""}, rowConfigAutoMerge)
				t.AppendSeparator()
				continue
			}
			rows := make([]table.Row, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, table.Row{status, entry.MovieID, entry.Title, entry.DisplayYear(), entry.DisplayGenre()})
			}
			t.AppendRows(rows, rowConfigAutoMerge)
			t.AppendSeparator()
		}
		t.Render()
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add ID",
	Short: "Add a title to your list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid id %q", args[0])
		}
		statusFlag, _ := cmd.Flags().GetString("status")
		status, err := model.ParseStatus(statusFlag)
		if err != nil {
			return err
		}

		if err := rt.client.AddToList(cmd.Context(), id, status); err != nil {
			return fmt.Errorf("could not add %d to %s: %w", id, status, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d to %s\n", id, status)
		return nil
	},
}

func registerWatchlistFlags() {
	myListCmd.Flags().String("status", "", "only show one list: \"To Watch\" or \"Watched\"")
	addCmd.Flags().String("status", string(model.StatusToWatch), "target list: \"To Watch\" or \"Watched\"")
}

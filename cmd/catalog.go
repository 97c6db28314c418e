package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"movielist-cli/catalog"
	"movielist-cli/model"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the catalog",
	Long:  `List movies and TV shows, optionally filtered by a title query or type and sorted by title.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		typeFlag, _ := cmd.Flags().GetString("type")
		sortTitles, _ := cmd.Flags().GetBool("sort")
		policyFlag, _ := cmd.Flags().GetString("policy")
		refresh, _ := cmd.Flags().GetBool("refresh")

		typeFilter, err := catalog.ParseTypeFilter(typeFlag)
		if err != nil {
			return err
		}
		policy := rt.cfg.FilterPolicy
		if cmd.Flags().Changed("policy") {
			if policy, err = catalog.ParsePolicy(policyFlag); err != nil {
				return err
			}
		}

		items, err := loadCatalog(cmd, refresh)
		if err != nil {
			return err
		}

		view := catalog.NewStore(policy, rt.cfg.Language())
		view.Replace(items)
		if query != "" {
			view.SetQuery(query)
		}
		if typeFilter != catalog.FilterAll {
			if query != "" && policy == catalog.PolicyIndependent {
				fmt.Fprintln(cmd.ErrOrStderr(), "note: with the independent filter policy only --type applies")
			}
			view.SetTypeFilter(typeFilter)
		}
		if sortTitles {
			view.ToggleSort()
		}

		recent := map[int]bool{}
		if cache := openStore(rt.cfg); cache != nil {
			recent = cache.RecentIDs()
		}
		renderCatalog(view.Displayed(), recent)
		return nil
	},
}

// loadCatalog serves a fresh cached snapshot unless refresh is set, and
// falls back to a stale one when the API is unreachable.
func loadCatalog(cmd *cobra.Command, refresh bool) ([]model.CatalogItem, error) {
	cache := openStore(rt.cfg)
	var cached []model.CatalogItem
	if cache != nil {
		items, fresh, err := cache.LoadCatalog()
		if err != nil {
			rt.logger.Warn("cmd.catalog_cache_unreadable", "err", err)
		}
		if !refresh && fresh && len(items) > 0 {
			return items, nil
		}
		cached = items
	}

	items, err := rt.client.FetchCatalog(cmd.Context())
	if err != nil {
		if len(cached) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; showing the last saved catalog\n", err)
			return cached, nil
		}
		return nil, err
	}
	if cache != nil && len(items) > 0 {
		if err := cache.SaveCatalog(items); err != nil {
			rt.logger.Warn("cmd.catalog_cache_write_failed", "err", err)
		}
	}
	return items, nil
}

func renderCatalog(items []model.CatalogItem, recent map[int]bool) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Title", "Type", "Rating", "Poster"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
		{Number: 5, WidthMax: 48},
	})

	for _, item := range items {
		title := item.Title
		if recent[item.ID] {
			title += " *"
		}
		rating := "-"
		if item.Rating != nil {
			rating = strconv.FormatFloat(*item.Rating, 'f', 1, 64)
		}
		poster := "[" + item.Initial() + "]"
		if item.PosterURL != nil && *item.PosterURL != "" {
			poster = *item.PosterURL
		}
		t.AppendRow(table.Row{item.ID, title, item.Type, rating, poster})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d titles", len(items))})
	t.Render()
}

func registerCatalogFlags() {
	catalogCmd.Flags().String("query", "", "case-insensitive title substring")
	catalogCmd.Flags().String("type", "all", "type filter: all, movie or show")
	catalogCmd.Flags().Bool("sort", false, "sort titles A-Z")
	catalogCmd.Flags().String("policy", "", "filter policy: independent or composed (default from config)")
	catalogCmd.Flags().Bool("refresh", false, "bypass the cached catalog")
}

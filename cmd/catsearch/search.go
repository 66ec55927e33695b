package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"cat-breed-search/internal/domain/breeds"
	"cat-breed-search/internal/domain/sessions"
	"cat-breed-search/internal/tui"

	"github.com/spf13/cobra"
)

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var (
		sortKey string
		desc    bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Run a single search and print the results",
		Long:  `Searches breeds by term, attaches the first image of each one and prints them. No debounce: the request goes out right away.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			log := newLogger(cfg, os.Stderr)

			fetcher, err := newFetcher(cfg, log)
			if err != nil {
				return err
			}

			key := breeds.SortNone
			if sortKey != "" {
				if key, err = breeds.ParseSortKey(sortKey); err != nil {
					return err
				}
			}

			// búsqueda + lookups de imagen, cada uno con su propio timeout HTTP
			timeout := 2 * cfg.Catalog.Timeout
			if timeout <= 0 {
				timeout = 30 * time.Second
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			items, err := fetcher.Fetch(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			if key != breeds.SortNone {
				dir := breeds.Asc
				if desc {
					dir = breeds.Desc
				}
				items = breeds.Sort(items, key, dir)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sessions.ToBreedResponses(items))
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "No breeds found")
				return nil
			}
			fmt.Fprintln(out, tui.RenderTable(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "", "sort by name | weight.metric | life_span")
	cmd.Flags().BoolVar(&desc, "desc", false, "descending order (with --sort)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

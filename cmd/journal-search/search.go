// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-search/internal/query"
	"github.com/pdiddy/journal-search/internal/render"
	"github.com/pdiddy/journal-search/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog and print one page of results",
	Long: `Search filters the catalog by title keyword, year, article type and author
and prints one page of fifteen results. At least one criterion is required.

--save writes the search to a YAML query file; --from replays a saved query
file against the current catalog.`,
	Example: `  journal-search search --keyword 方言 --page 2
  journal-search search --author 李 --year 2019 --format json
  journal-search search --from dialects.yaml`,
	RunE: runSearch,
}

func init() {
	addCriteriaFlags(searchCmd)
	searchCmd.Flags().Int("page", 1, "page to show")
	searchCmd.Flags().String("format", "table", "output format: table, json, yaml or csl")
	searchCmd.Flags().String("save", "", "save the search to a query file")
	searchCmd.Flags().String("from", "", "replay a saved query file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if !validFormat(format, "table", "json", "yaml", "csl") {
		return fmt.Errorf("unknown format %q: use table, json, yaml or csl", format)
	}
	from, _ := cmd.Flags().GetString("from")
	if from != "" && criteriaFlagsChanged(cmd) {
		return errors.New("--from cannot be combined with --keyword, --year, --type or --author")
	}

	ds, cfg, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	records := ds.Records()

	st, err := searchState(cmd, records, from)
	if err != nil {
		return err
	}
	p := query.View(records, st)

	if err := writePage(cmd.OutOrStdout(), p, format, cfg.Browse); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := query.WriteQueryFile(save, p); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query to %s\n", save)
	}
	return nil
}

// searchState builds the search state from a query file or the criteria
// flags, then applies --page when given.
func searchState(cmd *cobra.Command, records []types.Article, from string) (query.State, error) {
	var (
		st  query.State
		err error
	)
	if from != "" {
		qf, err := query.ReadQueryFile(from)
		if err != nil {
			return st, err
		}
		st, err = qf.Replay(records)
		if err != nil {
			return st, fmt.Errorf("replaying %s: %w", from, err)
		}
	} else {
		c, err := criteriaFromFlags(cmd)
		if err != nil {
			return st, err
		}
		st, err = query.Reduce(records, query.Initial(), query.Submit{Criteria: c})
		if err != nil {
			return st, validationError(err)
		}
	}

	if cmd.Flags().Changed("page") {
		page, _ := cmd.Flags().GetInt("page")
		st, err = query.Reduce(records, st, query.Jump{Page: page})
		if err != nil {
			return st, err
		}
	}
	return st, nil
}

func writePage(w io.Writer, p query.Page, format string, browse types.BrowseConfig) error {
	switch format {
	case "json":
		return render.JSON(w, p)
	case "yaml":
		return render.YAML(w, p)
	case "csl":
		return render.CSL(w, p.Rows)
	}
	render.Table(w, p, render.TableOptions{
		TitleWidth:   browse.TitleWidth,
		AuthorsWidth: browse.AuthorsWidth,
	})
	return nil
}

func validFormat(format string, allowed ...string) bool {
	for _, f := range allowed {
		if format == f {
			return true
		}
	}
	return false
}

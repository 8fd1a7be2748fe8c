// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-search/internal/query"
	"github.com/pdiddy/journal-search/internal/render"
	"github.com/pdiddy/journal-search/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search the catalog in an interactive terminal browser",
	Long: `Browse opens a full-screen search form over the catalog. Fill in any of the
four fields and press Enter; Tab moves between the fields and the results,
where ←/→ turn pages. Ctrl+R resets, Esc quits.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ds, cfg, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	// Logging goes to stderr, which the full-screen browser owns; the
	// session runs without it.
	session := query.NewSession(ds.Records(), nil)
	return tui.Run(cmd.Context(), session, tui.Options{
		Title:        cfg.Server.Title,
		ArticleTypes: ds.ArticleTypes(),
		Table: render.TableOptions{
			TitleWidth:   cfg.Browse.TitleWidth,
			AuthorsWidth: cfg.Browse.AuthorsWidth,
		},
	})
}

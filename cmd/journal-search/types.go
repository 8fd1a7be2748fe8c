// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the article types in the catalog with counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, _, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}
		counts := ds.TypeCounts()
		width := 0
		for _, tc := range counts {
			width = max(width, runewidth.StringWidth(tc.Type))
		}
		w := cmd.OutOrStdout()
		for _, tc := range counts {
			fmt.Fprintf(w, "%s  %d\n", runewidth.FillRight(tc.Type, width), tc.Count)
		}
		fmt.Fprintf(w, "%d articles, %d types\n", ds.Len(), len(counts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

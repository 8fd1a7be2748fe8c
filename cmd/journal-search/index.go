// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-search/internal/catalog"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Write the catalog to a SQLite snapshot",
	Long: `Index loads the catalog (trying each text encoding for CSV sources) and
writes it to a SQLite snapshot. Point --catalog at the snapshot to skip
decoding on later runs.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("out", "journals.db", "snapshot file to write")

	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	ds, _, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	if err := catalog.WriteSnapshot(cmd.Context(), out, ds); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d articles from %s (%s) to %s", ds.Len(), ds.Source, ds.Encoding, out)
	if ds.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", skipped %d malformed rows", ds.Skipped)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

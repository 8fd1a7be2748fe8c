// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-search/internal/query"
	"github.com/pdiddy/journal-search/internal/render"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every matching article, without paging",
	Long: `Export filters the catalog like search but writes the whole result set,
numbered from 1, as YAML, JSON or CSL-YAML (for reference managers).`,
	Example: `  journal-search export --type 汉语史 --format csl --out history.yaml`,
	RunE:    runExport,
}

func init() {
	addCriteriaFlags(exportCmd)
	exportCmd.Flags().String("format", "yaml", "output format: yaml, json or csl")
	exportCmd.Flags().String("out", "", "output file (default stdout)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if !validFormat(format, "yaml", "json", "csl") {
		return fmt.Errorf("unknown format %q: use yaml, json or csl", format)
	}
	c, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}

	ds, _, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	rows := query.Results(ds.Records(), c)

	out, _ := cmd.Flags().GetString("out")
	w, closeFn, err := outputWriter(out)
	if err != nil {
		return err
	}
	switch format {
	case "json":
		err = render.RowsJSON(w, rows)
	case "csl":
		err = render.CSL(w, rows)
	default:
		err = render.RowsYAML(w, rows)
	}
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	if out != "" && out != "-" {
		fmt.Fprintf(os.Stderr, "Exported %d articles to %s\n", len(rows), out)
	}
	return nil
}

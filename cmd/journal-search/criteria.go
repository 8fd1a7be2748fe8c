// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-search/internal/query"
	"github.com/pdiddy/journal-search/internal/render"
)

var criteriaFlagNames = []string{"keyword", "year", "type", "author"}

// addCriteriaFlags registers the four search criteria on cmd.
func addCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().String("keyword", "", "substring of the article title")
	cmd.Flags().String("year", "", "publication year")
	cmd.Flags().String("type", "", "article type, e.g. 汉语史")
	cmd.Flags().String("author", "", "substring of the authors field")
}

// criteriaFromFlags reads the criteria flags. A rejected year is reported
// with the same message the interactive hosts show.
func criteriaFromFlags(cmd *cobra.Command) (query.Criteria, error) {
	keyword, _ := cmd.Flags().GetString("keyword")
	year, _ := cmd.Flags().GetString("year")
	articleType, _ := cmd.Flags().GetString("type")
	author, _ := cmd.Flags().GetString("author")

	c, err := query.ParseCriteria(keyword, year, articleType, author)
	if err != nil {
		return c, validationError(err)
	}
	if c.IsEmpty() {
		return c, validationError(query.ErrEmptyCriteria)
	}
	return c, nil
}

// criteriaFlagsChanged reports whether any criteria flag was given.
func criteriaFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range criteriaFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func validationError(err error) error {
	if msg := render.ValidationMessage(err); msg != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

// outputWriter returns stdout, or a created file when path is set. The
// returned close function must be called when writing is done.
func outputWriter(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

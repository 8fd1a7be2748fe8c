// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/journal-search/pkg/types"
)

// QueryFile is the on-disk form of a search: its criteria, the page being
// viewed and a summary of the result set when it was saved. Reloading a
// query file replays the search against the current catalog.
type QueryFile struct {
	Query   Criteria     `yaml:"query"`
	Page    int          `yaml:"page"`
	Summary QuerySummary `yaml:"summary"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total      int       `yaml:"total"`
	TotalPages int       `yaml:"total_pages"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves the search behind p to path. An inactive page has
// nothing to save.
func WriteQueryFile(path string, p Page) error {
	if !p.Active {
		return fmt.Errorf("saving query file: %w", ErrInactive)
	}
	qf := QueryFile{
		Query: p.Criteria,
		Page:  p.Window.Page,
		Summary: QuerySummary{
			Total:      p.Window.Total,
			TotalPages: p.Window.TotalPages,
			Timestamp:  time.Now().UTC(),
		},
	}
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Replay submits the saved criteria and moves to the saved page. The same
// validation as an interactive search applies.
func (q QueryFile) Replay(records []types.Article) (State, error) {
	s, err := Reduce(records, Initial(), Submit{Criteria: q.Query})
	if err != nil {
		return s, err
	}
	if q.Page > 1 {
		return Reduce(records, s, Jump{Page: q.Page})
	}
	return s, nil
}

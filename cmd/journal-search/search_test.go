// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/journal-search/internal/query"
	"github.com/pdiddy/journal-search/internal/render"
	"github.com/pdiddy/journal-search/pkg/types"
)

func sampleRecords(n int) []types.Article {
	out := make([]types.Article, n)
	for i := range out {
		out[i] = types.Article{
			ID:       i + 1,
			Title:    fmt.Sprintf("粤语研究%d", i+1),
			Authors:  "陈五",
			Type:     "汉语史",
			Year:     2015,
			Issue:    "1",
			Citation: "陈五(2015)",
		}
	}
	return out
}

// testCmd returns a command carrying the search flags, parsed from args.
func testCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "search"}
	addCriteriaFlags(cmd)
	cmd.Flags().Int("page", 1, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestCriteriaFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    query.Criteria
		wantErr error
	}{
		{"keyword", []string{"--keyword", "粤语"}, query.Criteria{Keyword: "粤语"}, nil},
		{"year", []string{"--year", "2015"}, query.Criteria{Year: 2015}, nil},
		{"all blank", []string{"--keyword", "  "}, query.Criteria{}, query.ErrEmptyCriteria},
		{"none", nil, query.Criteria{}, query.ErrEmptyCriteria},
		{"bad year", []string{"--year", "twenty"}, query.Criteria{}, query.ErrInvalidYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := criteriaFromFlags(testCmd(t, tt.args...))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), render.ValidationMessage(tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchState(t *testing.T) {
	records := sampleRecords(40)

	st, err := searchState(testCmd(t, "--keyword", "粤语"), records, "")
	require.NoError(t, err)
	assert.Equal(t, query.State{Criteria: query.Criteria{Keyword: "粤语"}, Page: 1, Active: true}, st)

	st, err = searchState(testCmd(t, "--keyword", "粤语", "--page", "3"), records, "")
	require.NoError(t, err)
	assert.Equal(t, 3, st.Page)

	_, err = searchState(testCmd(t, "--keyword", "粤语", "--page", "4"), records, "")
	assert.ErrorIs(t, err, query.ErrPageRange)
}

func TestSearchStateFromFile(t *testing.T) {
	records := sampleRecords(40)
	path := filepath.Join(t.TempDir(), "q.yaml")

	s := query.NewSession(records, nil)
	require.NoError(t, s.SubmitSearch(query.Criteria{Author: "陈"}))
	require.NoError(t, s.JumpTo(2))
	require.NoError(t, query.WriteQueryFile(path, s.View()))

	st, err := searchState(testCmd(t), records, path)
	require.NoError(t, err)
	assert.Equal(t, s.State(), st)

	st, err = searchState(testCmd(t, "--page", "1"), records, path)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Page)
}

func TestWritePage(t *testing.T) {
	records := sampleRecords(20)
	st, err := query.Reduce(records, query.Initial(), query.Submit{Criteria: query.Criteria{Keyword: "粤语"}})
	require.NoError(t, err)
	p := query.View(records, st)

	var buf bytes.Buffer
	require.NoError(t, writePage(&buf, p, "table", types.BrowseConfig{}))
	out := buf.String()
	assert.Contains(t, out, "检索结果总数: 20")
	assert.Contains(t, out, "第 1/2 页")
	assert.Contains(t, out, "粤语研究15")
	assert.NotContains(t, out, "粤语研究16")

	buf.Reset()
	require.NoError(t, writePage(&buf, p, "csl", types.BrowseConfig{}))
	assert.Contains(t, buf.String(), "mlj-1")
}

func TestValidFormat(t *testing.T) {
	assert.True(t, validFormat("csl", "table", "json", "yaml", "csl"))
	assert.False(t, validFormat("xml", "table", "json", "yaml", "csl"))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads the article catalog into memory. The catalog is
// read once, from a CSV file (trying several text encodings), a SQLite
// snapshot written by WriteSnapshot, or a CSV file served over HTTP(S),
// and is read-only afterwards.
package catalog

import (
	"sort"
	"strings"

	"github.com/pdiddy/journal-search/pkg/types"
)

// Dataset is the loaded catalog. It is immutable and safe to share across
// sessions.
type Dataset struct {
	records []types.Article

	// Source is the path or URL the dataset was loaded from.
	Source string

	// Encoding is the text encoding that parsed the source, or "sqlite" for
	// snapshots.
	Encoding string

	// Skipped counts source rows dropped for missing or malformed fields.
	Skipped int
}

// NewDataset wraps records, which the caller must not modify afterwards.
func NewDataset(records []types.Article) *Dataset {
	return &Dataset{records: records}
}

// Records returns the articles in source order. The slice is shared and
// must be treated as read-only; its capacity is clipped so appends by the
// caller never write into the dataset.
func (d *Dataset) Records() []types.Article {
	return d.records[:len(d.records):len(d.records)]
}

// Len returns the number of articles.
func (d *Dataset) Len() int {
	return len(d.records)
}

// ArticleTypes returns the distinct trimmed article types in the order they
// first appear.
func (d *Dataset) ArticleTypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range d.records {
		t := strings.TrimSpace(a.Type)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// TypeCount is the number of articles of one type.
type TypeCount struct {
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count" yaml:"count"`
}

// TypeCounts returns per-type article counts, largest first; ties keep
// first-seen order.
func (d *Dataset) TypeCounts() []TypeCount {
	index := make(map[string]int)
	var out []TypeCount
	for _, a := range d.records {
		t := strings.TrimSpace(a.Type)
		if t == "" {
			continue
		}
		i, ok := index[t]
		if !ok {
			i = len(out)
			index[t] = i
			out = append(out, TypeCount{Type: t})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

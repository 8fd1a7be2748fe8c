// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query is the search core of journal-search: criteria filtering
// over the in-memory catalog, page arithmetic, and the per-session query
// state that search, reset and navigation actions move between.
//
// Everything here is synchronous and free of I/O except the query file
// helpers in queryfile.go.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/journal-search/pkg/types"
)

// ErrEmptyCriteria is returned when a search is submitted with every
// criterion blank.
var ErrEmptyCriteria = errors.New("at least one search criterion is required")

// ErrInvalidYear is returned by ParseCriteria for a year that is not a
// positive integer.
var ErrInvalidYear = errors.New("year must be a positive integer")

// Criteria holds the active filter values. A blank field (or a zero Year)
// imposes no constraint.
type Criteria struct {
	// Keyword is matched as a case-sensitive substring of the title.
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`

	// Year is matched exactly against the publication year.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Type is matched by equality after trimming both sides.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Author is matched as a substring of the authors field.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`
}

// ParseCriteria builds Criteria from raw form or flag input. The text
// fields are kept as entered; only the year is parsed.
func ParseCriteria(keyword, year, articleType, author string) (Criteria, error) {
	c := Criteria{Keyword: keyword, Type: articleType, Author: author}
	year = strings.TrimSpace(year)
	if year == "" {
		return c, nil
	}
	y, err := strconv.Atoi(year)
	if err != nil || y <= 0 {
		return c, fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	c.Year = y
	return c, nil
}

// IsEmpty reports whether no criterion is set once whitespace is ignored.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Keyword) == "" &&
		c.Year == 0 &&
		strings.TrimSpace(c.Type) == "" &&
		strings.TrimSpace(c.Author) == ""
}

// Matches reports whether a satisfies every non-blank criterion.
func (c Criteria) Matches(a types.Article) bool {
	if kw := strings.TrimSpace(c.Keyword); kw != "" && !strings.Contains(a.Title, kw) {
		return false
	}
	if c.Year != 0 && a.Year != c.Year {
		return false
	}
	if t := strings.TrimSpace(c.Type); t != "" && strings.TrimSpace(a.Type) != t {
		return false
	}
	if au := strings.TrimSpace(c.Author); au != "" && !strings.Contains(a.Authors, au) {
		return false
	}
	return true
}

// String renders the active criteria for logs and status lines.
func (c Criteria) String() string {
	var parts []string
	if kw := strings.TrimSpace(c.Keyword); kw != "" {
		parts = append(parts, "keyword="+strconv.Quote(kw))
	}
	if c.Year != 0 {
		parts = append(parts, "year="+strconv.Itoa(c.Year))
	}
	if t := strings.TrimSpace(c.Type); t != "" {
		parts = append(parts, "type="+strconv.Quote(t))
	}
	if au := strings.TrimSpace(c.Author); au != "" {
		parts = append(parts, "author="+strconv.Quote(au))
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, " ")
}

// Filter returns the records matching c, in their original order. The
// input slice is never modified and the result never aliases it. Empty
// criteria match everything; callers that display results reject empty
// criteria before getting here.
func Filter(records []types.Article, c Criteria) []types.Article {
	out := make([]types.Article, 0)
	for _, a := range records {
		if c.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

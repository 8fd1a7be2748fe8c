// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"errors"
	"fmt"

	"github.com/pdiddy/journal-search/pkg/types"
)

// ErrInactive is returned when a page action arrives with no active search.
var ErrInactive = errors.New("no active search")

// State is one snapshot of a session's query state. Actions produce a new
// State; a State is never changed in place.
type State struct {
	Criteria Criteria `json:"criteria" yaml:"criteria"`
	Page     int      `json:"page" yaml:"page"`
	Active   bool     `json:"active" yaml:"active"`
}

// Initial returns the state of a fresh session: no criteria, page 1, no
// search shown.
func Initial() State {
	return State{Page: 1}
}

// Action is a user interaction applied to a State by Reduce.
type Action interface {
	apply(records []types.Article, s State) (State, error)
}

// Submit replaces the criteria and starts a new search on page 1.
type Submit struct {
	Criteria Criteria
}

func (a Submit) apply(_ []types.Article, s State) (State, error) {
	if a.Criteria.IsEmpty() {
		return s, ErrEmptyCriteria
	}
	return State{Criteria: a.Criteria, Page: 1, Active: true}, nil
}

// Reset clears the criteria and hides the result table.
type Reset struct{}

func (Reset) apply(_ []types.Article, _ State) (State, error) {
	return Initial(), nil
}

// Navigate moves between pages of the active search. A move that is not
// available from the current page leaves the state unchanged.
type Navigate struct {
	Nav Nav
}

func (a Navigate) apply(records []types.Article, s State) (State, error) {
	if !s.Active {
		return s, ErrInactive
	}
	w := Paginate(len(Filter(records, s.Criteria)), PageSize, s.Page)
	if !w.CanNavigate(a.Nav) {
		return s, nil
	}
	s.Page = w.Target(a.Nav)
	return s, nil
}

// Jump moves the active search to an explicit page, as the CLI --page flag
// and saved query files do.
type Jump struct {
	Page int
}

func (a Jump) apply(records []types.Article, s State) (State, error) {
	if !s.Active {
		return s, ErrInactive
	}
	pages := TotalPages(len(Filter(records, s.Criteria)), PageSize)
	if a.Page < 1 || a.Page > pages {
		return s, fmt.Errorf("%w: page %d of %d", ErrPageRange, a.Page, pages)
	}
	s.Page = a.Page
	return s, nil
}

// Reduce applies a to s over records. On error the returned State is s.
func Reduce(records []types.Article, s State, a Action) (State, error) {
	if s.Page < 1 {
		s.Page = 1
	}
	return a.apply(records, s)
}

// Row is one displayed result with its ordinal in the full result set.
type Row struct {
	Ordinal int `json:"ordinal" yaml:"ordinal"`
	types.Article `yaml:",inline"`
}

// Page is everything a renderer needs for one interaction.
type Page struct {
	// Active is false until a search is submitted and again after Reset.
	// An inactive Page has no rows and a zero Window.
	Active   bool     `json:"active" yaml:"active"`
	Criteria Criteria `json:"criteria" yaml:"criteria"`
	Window   Window   `json:"window" yaml:"window"`
	Rows     []Row    `json:"rows" yaml:"rows"`
}

// Can reports whether navigation n is available on this page.
func (p Page) Can(n Nav) bool {
	return p.Active && p.Window.CanNavigate(n)
}

// View derives the displayed page for s from records.
func View(records []types.Article, s State) Page {
	if !s.Active {
		return Page{Criteria: s.Criteria}
	}
	results := Filter(records, s.Criteria)
	w := Paginate(len(results), PageSize, s.Page)
	lo, hi := w.Bounds()
	rows := make([]Row, 0, hi-lo)
	for i, a := range results[lo:hi] {
		rows = append(rows, Row{Ordinal: w.Ordinal(i), Article: a})
	}
	return Page{
		Active:   true,
		Criteria: s.Criteria,
		Window:   w,
		Rows:     rows,
	}
}

// Results returns every record matching c as rows numbered 1..N, for
// exports that are not paged.
func Results(records []types.Article, c Criteria) []Row {
	results := Filter(records, c)
	rows := make([]Row, len(results))
	for i, a := range results {
		rows[i] = Row{Ordinal: i + 1, Article: a}
	}
	return rows
}

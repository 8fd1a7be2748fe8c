// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"errors"
	"fmt"
	"strings"
)

// PageSize is the number of results shown per page.
const PageSize = 15

// ErrPageRange is returned when a page outside [1, total pages] is
// requested directly.
var ErrPageRange = errors.New("page out of range")

// TotalPages returns total/size + 1. The trailing page is kept even when
// total is an exact multiple of size, so 15 results span two pages.
func TotalPages(total, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if total < 0 {
		total = 0
	}
	return total/size + 1
}

// Window describes one page of a result set.
type Window struct {
	// Start is the zero-based index of the first row on the page.
	Start int `json:"start" yaml:"start"`

	// End is Start plus the page size. It may run past Total; use Bounds
	// when slicing.
	End int `json:"end" yaml:"end"`

	// Total is the size of the full result set.
	Total int `json:"total" yaml:"total"`

	// TotalPages is TotalPages(Total, page size).
	TotalPages int `json:"total_pages" yaml:"total_pages"`

	// Page is the effective 1-based page number.
	Page int `json:"page" yaml:"page"`
}

// Paginate computes the window for page over a result set of total rows.
// A page below 1 is treated as 1 and a page past the last page as the last
// page.
func Paginate(total, size, page int) Window {
	if size <= 0 {
		size = PageSize
	}
	if total < 0 {
		total = 0
	}
	pages := TotalPages(total, size)
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	return Window{
		Start:      start,
		End:        start + size,
		Total:      total,
		TotalPages: pages,
		Page:       page,
	}
}

// Bounds returns Start and End clamped to Total, ready for slicing.
func (w Window) Bounds() (lo, hi int) {
	lo, hi = w.Start, w.End
	if lo > w.Total {
		lo = w.Total
	}
	if hi > w.Total {
		hi = w.Total
	}
	return lo, hi
}

// Ordinal returns the 1-based display ordinal of the i-th row on the page.
func (w Window) Ordinal(i int) int {
	return w.Start + i + 1
}

// Nav is a page navigation action.
type Nav int

const (
	First Nav = iota
	Previous
	Next
	Last
)

// Navs lists the navigation actions in display order.
var Navs = []Nav{First, Previous, Next, Last}

func (n Nav) String() string {
	switch n {
	case First:
		return "first"
	case Previous:
		return "prev"
	case Next:
		return "next"
	case Last:
		return "last"
	}
	return fmt.Sprintf("Nav(%d)", int(n))
}

// Label returns the button caption for n.
func (n Nav) Label() string {
	switch n {
	case First:
		return "首页"
	case Previous:
		return "上一页"
	case Next:
		return "下一页"
	case Last:
		return "末页"
	}
	return n.String()
}

// ParseNav accepts first, prev, previous, next and last (any case).
func ParseNav(s string) (Nav, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first":
		return First, nil
	case "prev", "previous":
		return Previous, nil
	case "next":
		return Next, nil
	case "last":
		return Last, nil
	}
	return 0, fmt.Errorf("unknown navigation %q: use first, prev, next or last", s)
}

// CanNavigate reports whether n is available from w. First and Previous
// need a page before the current one, Next and Last a page after it.
func (w Window) CanNavigate(n Nav) bool {
	switch n {
	case First, Previous:
		return w.Page > 1
	case Next, Last:
		return w.Page < w.TotalPages
	}
	return false
}

// Target returns the page n leads to from w. It does not check
// availability.
func (w Window) Target(n Nav) int {
	switch n {
	case First:
		return 1
	case Previous:
		return w.Page - 1
	case Next:
		return w.Page + 1
	case Last:
		return w.TotalPages
	}
	return w.Page
}

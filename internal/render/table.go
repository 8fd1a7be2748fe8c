// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns query pages into text tables, JSON, YAML and
// CSL-YAML for the CLI and the export command.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/journal-search/internal/query"
)

// Column headers in display order.
const (
	HeaderOrdinal  = "序号"
	HeaderTitle    = "标题"
	HeaderAuthors  = "作者"
	HeaderYear     = "年份"
	HeaderIssue    = "期数"
	HeaderCitation = "引用格式"
)

// TableOptions sets column display widths. Zero values use the defaults.
type TableOptions struct {
	TitleWidth    int
	AuthorsWidth  int
	CitationWidth int
}

func (o TableOptions) withDefaults() TableOptions {
	if o.TitleWidth <= 0 {
		o.TitleWidth = 40
	}
	if o.AuthorsWidth <= 0 {
		o.AuthorsWidth = 16
	}
	if o.CitationWidth <= 0 {
		o.CitationWidth = 50
	}
	return o
}

// Messages shown when a search is rejected.
const (
	MsgEmptyCriteria = "至少填写一个搜索条件。"
	MsgInvalidYear   = "年份格式不正确。"
)

// ValidationMessage returns the message to show for a rejected search, or
// "" when err is not a validation failure.
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, query.ErrEmptyCriteria):
		return MsgEmptyCriteria
	case errors.Is(err, query.ErrInvalidYear):
		return MsgInvalidYear
	}
	return ""
}

// ResultCount returns the result count line shown above the table.
func ResultCount(total int) string {
	return "检索结果总数: " + strconv.Itoa(total)
}

// PageStatus returns "第 X/Y 页" followed by the available navigation
// actions.
func PageStatus(p query.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "第 %d/%d 页", p.Window.Page, p.Window.TotalPages)
	for _, n := range query.Navs {
		if p.Can(n) {
			fmt.Fprintf(&b, "  [%s]", n.Label())
		}
	}
	return b.String()
}

// Table writes p as a human-readable table. Column widths are measured in
// terminal cells so CJK text lines up. An inactive page writes nothing.
func Table(w io.Writer, p query.Page, opts TableOptions) {
	if !p.Active {
		return
	}

	fmt.Fprintln(w, ResultCount(p.Window.Total))
	fmt.Fprintln(w)

	Grid(w, p, opts)
	fmt.Fprintln(w)
	fmt.Fprintln(w, PageStatus(p))
}

// Grid writes only the header and rows of p, or a notice when the page has
// no rows.
func Grid(w io.Writer, p query.Page, opts TableOptions) {
	if len(p.Rows) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	opts = opts.withDefaults()

	widths := []int{4, opts.TitleWidth, opts.AuthorsWidth, 4, 4, opts.CitationWidth}
	header := []string{HeaderOrdinal, HeaderTitle, HeaderAuthors, HeaderYear, HeaderIssue, HeaderCitation}
	writeCells(w, header, widths)

	total := 0
	for _, wd := range widths {
		total += wd + 2
	}
	fmt.Fprintln(w, strings.Repeat("-", total-2))

	for _, r := range p.Rows {
		writeCells(w, []string{
			strconv.Itoa(r.Ordinal),
			r.Title,
			r.Authors,
			strconv.Itoa(r.Year),
			r.Issue,
			r.Citation,
		}, widths)
	}
}

func writeCells(w io.Writer, cells []string, widths []int) {
	for i, c := range cells {
		cell := runewidth.FillRight(Truncate(c, widths[i]), widths[i])
		if i == len(cells)-1 {
			cell = strings.TrimRight(cell, " ")
		} else {
			cell += "  "
		}
		io.WriteString(w, cell)
	}
	io.WriteString(w, "\n")
}

// Truncate shortens s to at most width terminal cells, marking the cut with
// an ellipsis. Newlines collapse to spaces.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, width, "…")
}

// JSON writes p as indented JSON.
func JSON(w io.Writer, p query.Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// YAML writes p as YAML.
func YAML(w io.Writer, p query.Page) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(p)
}

// RowsJSON writes rows as an indented JSON array.
func RowsJSON(w io.Writer, rows []query.Row) error {
	if rows == nil {
		rows = []query.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// RowsYAML writes rows as a YAML list.
func RowsYAML(w io.Writer, rows []query.Row) error {
	if rows == nil {
		rows = []query.Row{}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(rows)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/journal-search/internal/query"
)

// JournalTitle is written as the container title of every CSL item.
const JournalTitle = "澳门语言学刊"

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format, consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title"`
	Issue          string    `yaml:"issue,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	Note           string    `yaml:"note,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// CSL writes rows as a CSL-YAML list.
func CSL(w io.Writer, rows []query.Row) error {
	items := make([]CSLItem, len(rows))
	for i, r := range rows {
		items[i] = toCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(r query.Row) CSLItem {
	item := CSLItem{
		ID:             "mlj-" + strconv.Itoa(r.ID),
		Type:           "article-journal",
		Title:          r.Title,
		ContainerTitle: JournalTitle,
		Issue:          r.Issue,
		Note:           r.Citation,
	}
	for _, a := range SplitAuthors(r.Authors) {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if r.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{r.Year}}}
	}
	return item
}

// SplitAuthors splits a concatenated authors field into names. Names are
// separated by 、，；;/ or a line break; spaces separate names only when the
// field has no Latin letters, since Latin names carry spaces themselves.
func SplitAuthors(s string) []string {
	latin := strings.IndexFunc(s, func(r rune) bool {
		return r < unicode.MaxASCII && unicode.IsLetter(r)
	}) >= 0

	parts := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '、', '，', '；', ';', '/', '\n':
			return true
		case ',':
			return !latin
		}
		return !latin && unicode.IsSpace(r)
	})

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseAuthorName splits a Latin name into family and given parts, either
// "Family, Given" or "Given Family". Other names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		return CSLName{Family: strings.TrimSpace(family), Given: strings.TrimSpace(given)}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

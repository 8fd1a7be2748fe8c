// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for journal-search.
// Article is the catalog record; the *Config structs carry the settings
// read by the CLI through viper.
package types

// Catalog column headers, in the order the source file declares them.
const (
	ColumnID       = "序号"
	ColumnTitle    = "标题"
	ColumnAuthors  = "作者"
	ColumnType     = "文章类型"
	ColumnYear     = "年份"
	ColumnIssue    = "期数"
	ColumnCitation = "引用格式"
)

// RequiredColumns lists the headers every catalog file must carry.
var RequiredColumns = []string{
	ColumnID, ColumnTitle, ColumnAuthors, ColumnType, ColumnYear, ColumnIssue, ColumnCitation,
}

// Year bounds offered by the year selectors. Storage does not enforce them.
const (
	FirstYear = 1995
	LastYear  = 2024
)

// ArticleTypes is the journal's section vocabulary. Catalog rows may carry
// other free-form types; those are still loaded and filterable.
var ArticleTypes = []string{
	"句法学与语义学",
	"语音学与音系学",
	"词汇学与辞书学",
	"修辞学与语用学",
	"语言接触与语言变异",
	"汉语史",
	"文字学",
	"应用语言学",
	"其他",
}

// YearOptions returns FirstYear..LastYear in ascending order.
func YearOptions() []int {
	years := make([]int, 0, LastYear-FirstYear+1)
	for y := FirstYear; y <= LastYear; y++ {
		years = append(years, y)
	}
	return years
}

// Article is one catalog entry.
type Article struct {
	// ID is the source-assigned sequence number. It is not stable across
	// reloads and is never shown as the display ordinal.
	ID int `json:"id" yaml:"id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Authors holds one or more author names as a single string, in the
	// form the catalog stores them.
	Authors string `json:"authors" yaml:"authors"`

	// Type is the article type (journal section).
	Type string `json:"type" yaml:"type"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// Issue is the issue label, text or number in the source.
	Issue string `json:"issue" yaml:"issue"`

	// Citation is the pre-formatted citation string.
	Citation string `json:"citation" yaml:"citation"`
}

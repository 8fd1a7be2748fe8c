// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/pdiddy/journal-search/pkg/types"
)

// ErrLoad matches every *LoadError.
var ErrLoad = errors.New("cannot load catalog")

// Attempt records why one encoding failed to parse the source.
type Attempt struct {
	Encoding string
	Err      error
}

// LoadError reports a catalog that could not be loaded. Attempts lists each
// encoding tried when the source was read but could not be parsed; Err is
// set when the source could not be read at all.
type LoadError struct {
	Path     string
	Attempts []Attempt
	Err      error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot load catalog %s", e.Path)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Attempts) > 0 {
		b.WriteString(": check the file encoding and column names (tried ")
		for i, a := range e.Attempts {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s: %v", a.Encoding, a.Err)
		}
		b.WriteString(")")
	}
	return b.String()
}

// Is makes errors.Is(err, ErrLoad) hold for any *LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// errMissingColumn is wrapped by parse failures caused by the header.
var errMissingColumn = errors.New("missing required column")

// Load reads the catalog named by cfg.Path. Paths ending in .db or .sqlite
// are read as snapshots, http(s) URLs are fetched, and anything else is
// parsed as CSV with cfg.Encodings (DefaultEncodings when empty).
func Load(ctx context.Context, cfg types.CatalogConfig, logger *zap.Logger) (*Dataset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	source := cfg.Path
	if source == "" {
		source = types.DefaultCatalogPath
	}

	var (
		data []byte
		err  error
	)
	switch {
	case isSnapshot(source):
		ds, err := ReadSnapshot(ctx, source)
		if err != nil {
			return nil, err
		}
		logger.Info("catalog loaded",
			zap.String("source", source),
			zap.String("encoding", ds.Encoding),
			zap.Int("articles", ds.Len()))
		return ds, nil
	case isRemote(source):
		data, err = fetch(ctx, source, cfg.HTTPConfig, logger)
	default:
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, &LoadError{Path: source, Err: err}
	}

	ds, err := Parse(data, source, cfg.Encodings, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded",
		zap.String("source", source),
		zap.String("encoding", ds.Encoding),
		zap.Int("articles", ds.Len()),
		zap.Int("skipped", ds.Skipped))
	return ds, nil
}

// Parse decodes data with each encoding in turn and returns the first
// dataset whose header carries every required column. source only labels
// the result and errors.
func Parse(data []byte, source string, encodings []string, logger *zap.Logger) (*Dataset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(encodings) == 0 {
		encodings = types.DefaultEncodings
	}

	loadErr := &LoadError{Path: source}
	for _, enc := range encodings {
		text, err := decode(data, enc)
		if err == nil {
			var ds *Dataset
			ds, err = parseCSV(text)
			if err == nil {
				ds.Source = source
				ds.Encoding = enc
				return ds, nil
			}
		}
		logger.Debug("encoding rejected", zap.String("source", source), zap.String("encoding", enc), zap.Error(err))
		loadErr.Attempts = append(loadErr.Attempts, Attempt{Encoding: enc, Err: err})
	}
	return nil, loadErr
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode converts data to UTF-8. UTF-8 input must already be valid; other
// encodings are looked up by IANA name.
func decode(data []byte, name string) (string, error) {
	if isUTF8(name) {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid utf-8 byte sequence")
		}
		return string(data), nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return "", fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return string(out), nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// parseCSV reads the header, locates the required columns and converts
// each row. Rows with a blank required field, or an id or year that is not
// an integer, are skipped and counted.
func parseCSV(text string) (*Dataset, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", errMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	var missing []string
	for _, name := range types.RequiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", errMissingColumn, strings.Join(missing, ", "))
	}

	ds := &Dataset{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		a, ok := toArticle(row, cols)
		if !ok {
			ds.Skipped++
			continue
		}
		ds.records = append(ds.records, a)
	}
	return ds, nil
}

func toArticle(row []string, cols map[string]int) (types.Article, bool) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, name := range types.RequiredColumns {
		if field(name) == "" {
			return types.Article{}, false
		}
	}
	id, ok := parseWhole(field(types.ColumnID))
	if !ok {
		return types.Article{}, false
	}
	year, ok := parseWhole(field(types.ColumnYear))
	if !ok {
		return types.Article{}, false
	}
	issue := field(types.ColumnIssue)
	if n, ok := parseWhole(issue); ok {
		issue = strconv.Itoa(n)
	}

	return types.Article{
		ID:       id,
		Title:    field(types.ColumnTitle),
		Authors:  field(types.ColumnAuthors),
		Type:     row[cols[types.ColumnType]],
		Year:     year,
		Issue:    issue,
		Citation: field(types.ColumnCitation),
	}, true
}

// parseWhole accepts "12" and spreadsheet-style "12.0".
func parseWhole(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func isSnapshot(source string) bool {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".db", ".sqlite", ".sqlite3":
		return !isRemote(source)
	}
	return false
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

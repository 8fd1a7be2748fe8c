// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/journal-search/pkg/types"
)

func TestSnapshotRoundTrip(t *testing.T) {
	src, err := Parse([]byte(sampleCSV), "journals.csv", nil, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "index", "journals.db")
	require.NoError(t, WriteSnapshot(context.Background(), path, src))

	got, err := Load(context.Background(), types.CatalogConfig{Path: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", got.Encoding)
	assert.Equal(t, path, got.Source)
	if diff := cmp.Diff(src.Records(), got.Records()); diff != "" {
		t.Errorf("snapshot records mismatch (-want +got):\n%s", diff)
	}

	meta, err := SnapshotMeta(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "journals.csv", meta["source"])
	assert.Equal(t, "utf-8", meta["encoding"])
	assert.NotEmpty(t, meta["written_at"])
}

func TestWriteSnapshotReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journals.db")
	first := NewDataset([]types.Article{{ID: 1, Title: "a", Authors: "b", Type: "c", Year: 2001, Issue: "1", Citation: "d"}})
	second := NewDataset([]types.Article{{ID: 2, Title: "e", Authors: "f", Type: "g", Year: 2002, Issue: "2", Citation: "h"}})

	require.NoError(t, WriteSnapshot(context.Background(), path, first))
	require.NoError(t, WriteSnapshot(context.Background(), path, second))

	got, err := ReadSnapshot(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, 2, got.Records()[0].ID)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestReadSnapshotMissing(t *testing.T) {
	_, err := ReadSnapshot(context.Background(), filepath.Join(t.TempDir(), "none.db"))
	require.ErrorIs(t, err, ErrLoad)
}

func TestReadSnapshotNotASnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0o644))
	_, err := ReadSnapshot(context.Background(), path)
	require.ErrorIs(t, err, ErrLoad)
}

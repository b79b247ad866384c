package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seabed-systems/missionsnap/pkg/types"
)

func TestWriteAndReadRoundtrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snap")
	w, err := NewWriter(dir, "M1")
	require.NoError(t, err)

	require.NoError(t, w.Emit(types.Batch{Entity: "missions", Rows: []types.Row{
		{"id": "M1", "name": "survey-01"},
	}}))
	require.NoError(t, w.Emit(types.Batch{Entity: "areas", Rows: []types.Row{
		{"id": "A1", "missions_id": "M1"},
		{"id": "A2", "missions_id": "M1"},
	}}))
	require.NoError(t, w.Emit(types.Batch{Entity: "tracks"})) // empty batch
	require.NoError(t, w.Close())

	manifest, batches, err := Read(dir)
	require.NoError(t, err)

	assert.Equal(t, "M1", manifest.MissionID)
	require.Len(t, manifest.Tables, 3)
	assert.Equal(t, TableStat{Name: "areas", Rows: 2}, manifest.Tables[1])

	require.Len(t, batches, 3)
	assert.Equal(t, "missions", batches[0].Entity)
	assert.Equal(t, "survey-01", batches[0].Rows[0].String("name"))
	assert.Len(t, batches[1].Rows, 2)
	assert.Empty(t, batches[2].Rows)
}

func TestEmptyBatchProducesFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "M1")
	require.NoError(t, err)
	require.NoError(t, w.Emit(types.Batch{Entity: "qroutes"}))

	info, err := os.Stat(filepath.Join(dir, "qroutes.jsonl"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestReadWithoutManifestFails(t *testing.T) {
	dir := t.TempDir()
	// An unsealed snapshot: data file present, manifest absent.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "missions.jsonl"), []byte("{}\n"), 0o644))

	_, _, err := Read(dir)
	require.Error(t, err)
}

func TestReadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "M1")
	require.NoError(t, err)
	require.NoError(t, w.Emit(types.Batch{Entity: "missions", Rows: []types.Row{{"id": "M1"}}}))
	require.NoError(t, w.Close())

	// Corrupt the data file with a half-written line.
	path := filepath.Join(dir, "missions.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"id": "tru`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, batches, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, batches[0].Rows, 1)
	assert.Equal(t, "M1", batches[0].Rows[0].String("id"))
}

func TestNoLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "M1")
	require.NoError(t, err)
	require.NoError(t, w.Emit(types.Batch{Entity: "missions", Rows: []types.Row{{"id": "M1"}}}))
	require.NoError(t, w.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

// Package snapshot packages an exported batch sequence as a directory of
// JSONL files, one per entity type, with a YAML manifest describing the
// mission and the emit order. Files are written atomically with the
// temp-file, fsync, rename pattern.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seabed-systems/missionsnap/pkg/types"
)

// ManifestFile is the name of the manifest within a snapshot directory.
const ManifestFile = "manifest.yaml"

// Manifest describes one snapshot directory.
type Manifest struct {
	MissionID string      `yaml:"mission_id"`
	CreatedAt time.Time   `yaml:"created_at"`
	Tables    []TableStat `yaml:"tables"`
}

// TableStat records one emitted batch: its entity name (also the JSONL file
// stem) and row count. The slice order in the manifest is the emit order.
type TableStat struct {
	Name string `yaml:"name"`
	Rows int    `yaml:"rows"`
}

// Writer streams exported batches into a snapshot directory. Emit writes one
// file per batch as it arrives; Close writes the manifest last, so a
// directory with a manifest is always a complete snapshot.
type Writer struct {
	dir      string
	manifest Manifest
}

// NewWriter creates the snapshot directory and returns a Writer for it.
func NewWriter(dir, missionID string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &Writer{
		dir: dir,
		manifest: Manifest{
			MissionID: missionID,
			CreatedAt: time.Now().UTC(),
		},
	}, nil
}

// Emit writes one batch as <entity>.jsonl. Empty batches produce an empty
// file so that a restore sees every declared entity type.
func (w *Writer) Emit(batch types.Batch) error {
	path := filepath.Join(w.dir, batch.Entity+".jsonl")
	if err := writeJSONL(path, batch.Rows); err != nil {
		return fmt.Errorf("snapshot %s: %w", batch.Entity, err)
	}
	w.manifest.Tables = append(w.manifest.Tables, TableStat{
		Name: batch.Entity,
		Rows: len(batch.Rows),
	})
	return nil
}

// Close writes the manifest, sealing the snapshot.
func (w *Writer) Close() error {
	data, err := yaml.Marshal(&w.manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return writeAtomic(filepath.Join(w.dir, ManifestFile), data)
}

// Manifest returns the manifest accumulated so far.
func (w *Writer) Manifest() Manifest {
	return w.manifest
}

// writeJSONL atomically writes rows to a JSONL file, one JSON object per
// line.
func writeJSONL(path string, rows []types.Row) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	bw := bufio.NewWriter(tmp)
	enc := json.NewEncoder(bw)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("encoding row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeAtomic writes data to path via a temp file and rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/seabed-systems/missionsnap/pkg/types"
)

// Read loads a snapshot directory back into ordered batches, following the
// table order recorded in the manifest. Malformed JSONL lines are skipped;
// a missing manifest means the snapshot was never sealed and is an error.
func Read(dir string) (Manifest, []types.Batch, error) {
	var manifest Manifest
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return manifest, nil, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return manifest, nil, fmt.Errorf("parse manifest: %w", err)
	}

	batches := make([]types.Batch, 0, len(manifest.Tables))
	for _, table := range manifest.Tables {
		rows, err := readJSONL(filepath.Join(dir, table.Name+".jsonl"))
		if err != nil {
			return manifest, nil, fmt.Errorf("read %s: %w", table.Name, err)
		}
		batches = append(batches, types.Batch{Entity: table.Name, Rows: rows})
	}
	return manifest, batches, nil
}

// readJSONL reads one row per non-empty line, skipping lines that do not
// parse as JSON objects.
func readJSONL(path string) ([]types.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var rows []types.Row
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var row types.Row
		if err := json.Unmarshal(line, &row); err != nil {
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return rows, nil
}

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"themegen/pkg/marker"
)

// FindExisting locates a catalog file in folder. A single .json file is
// taken as-is; with several, the first (in name order) whose top level
// carries both "theme" and "clips" keys wins. No match returns "".
func FindExisting(folder string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(folder, "*.json"))
	if err != nil {
		return "", fmt.Errorf("scan folder: %w", err)
	}
	sort.Strings(matches)

	if len(matches) == 1 {
		return matches[0], nil
	}

	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var shape map[string]json.RawMessage
		if err := json.Unmarshal(data, &shape); err != nil {
			continue
		}
		if _, hasTheme := shape["theme"]; !hasTheme {
			continue
		}
		if _, hasClips := shape["clips"]; !hasClips {
			continue
		}
		return path, nil
	}
	return "", nil
}

// Load reads and validates a catalog file. A file whose theme has no id
// is reported as invalid so callers can fall back to fresh-catalog mode.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if c.Theme.ID == "" {
		return nil, fmt.Errorf("catalog %s has no theme id", filepath.Base(path))
	}
	if c.Clips == nil {
		c.Clips = []Clip{}
	}
	return &c, nil
}

// Save writes the catalog as pretty-printed JSON, atomically via a temp
// file rename.
func Save(path string, c *Catalog) error {
	if c.Clips == nil {
		c.Clips = []Clip{}
	}
	for i := range c.Clips {
		if c.Clips[i].CustomInputs == nil {
			c.Clips[i].CustomInputs = []marker.Field{}
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

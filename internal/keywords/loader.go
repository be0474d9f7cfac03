package keywords

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the built-in tables when path is empty, otherwise the tables
// parsed from the YAML file at path. The result is normalized and validated.
func Load(path string) (*Tables, error) {
	if path == "" {
		t := Default()
		slog.Info("Using built-in keyword tables", "version", t.Version)
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword tables %s: %w", path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword tables %s: %w", path, err)
	}

	slog.Info("Keyword tables loaded",
		"path", path,
		"version", t.Version,
		"themes", len(t.Themes),
		"moods", len(t.Moods))
	return t, nil
}

// Parse decodes YAML table data. Unknown fields are rejected.
func Parse(data []byte) (*Tables, error) {
	var raw Tables
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTables, err)
	}

	t := raw.Normalize()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

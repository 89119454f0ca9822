package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"

	"github.com/joshuapare/tomlkit/tomldoc/batch"
)

// readInput reads a file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// toJSON returns data as JSON. YAML input (by extension, or anything that
// is not already JSON) is converted.
func toJSON(path string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" && gjson.ValidBytes(data) {
		return data, nil
	}
	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s is neither JSON nor YAML: %w", path, err)
	}
	return out, nil
}

// loadPlan reads an operation list (JSON or YAML) or, with patch set, an
// RFC 6902 JSON Patch.
func loadPlan(path string, patch bool) (*batch.Plan, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	data, err = toJSON(path, data)
	if err != nil {
		return nil, err
	}
	if patch {
		return batch.ParsePatch(data)
	}
	return batch.ParseJSON(data)
}

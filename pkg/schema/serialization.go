package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a document from YAML bytes. JSON input parses too, since
// YAML is a superset, but prefer ParseJSON for JSON sources so syntax errors
// point at the right codec.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse model document: %w", err)
	}
	return &doc, nil
}

// ParseJSON decodes a document from JSON bytes.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse model document: %w", err)
	}
	return &doc, nil
}

// Load reads a document from a file. The extension picks the codec: .json is
// parsed as JSON, everything else as YAML. Load does not validate; call
// Validate or Compile on the result.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model document: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		doc, err := ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return doc, nil
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// Save writes the document to a file, picking the codec from the extension
// the same way Load does.
func Save(doc *Document, path string) error {
	var data []byte
	var err error
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = yaml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode model document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model document: %w", err)
	}
	return nil
}

// Package file provides a ModelStore backed by a directory of YAML model
// documents. Files are written atomically, so a crash mid-save never leaves
// a truncated document behind.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/lattice/pkg/markov"
	"github.com/aretw0/lattice/pkg/schema"
)

const ext = ".yaml"

// Store implements ports.ModelStore using the local filesystem. It stores
// one document per file, named <model>.yaml. Because Load and Get share the
// same lookup it also satisfies ports.Library, so a hand-authored directory
// of definitions can feed a registry directly.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".lattice/models".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".lattice", "models")
	}
	return &Store{BasePath: basePath}
}

// validName guards against names that would escape the base directory.
func validName(name string) error {
	if name == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("model name %q must not contain path separators", name)
	}
	return nil
}

// Save persists the document to a YAML file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it
// to the destination.
func (s *Store) Save(ctx context.Context, doc *schema.Document) error {
	if doc == nil {
		return fmt.Errorf("document cannot be nil")
	}
	if err := validName(doc.Name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure model directory: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	destPath := filepath.Join(s.BasePath, doc.Name+ext)

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+doc.Name+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // Remove if still exists (not renamed)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows os.Rename fails if the destination exists, so clear it
	// first. The delete+rename window is acceptable next to a partial write.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing document for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}

// Load retrieves a document from its YAML file.
func (s *Store) Load(ctx context.Context, name string) (*schema.Document, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.BasePath, name+ext))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, markov.ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	doc, err := schema.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s%s: %w", name, ext, err)
	}
	return doc, nil
}

// Get retrieves a document by name, making the Store usable as a read-only
// ports.Library.
func (s *Store) Get(ctx context.Context, name string) (*schema.Document, error) {
	return s.Load(ctx, name)
}

// Delete removes the document file.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.BasePath, name+ext))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete model file: %w", err)
	}
	return nil
}

// List returns all stored model names. A missing base directory lists as
// empty rather than failing, matching a store that has never saved.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		name := entry.Name()
		names = append(names, name[:len(name)-len(ext)])
	}
	return names, nil
}

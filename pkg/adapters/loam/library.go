// Package loam adapts a Loam content repository into a read-only model
// Library. Models live as Markdown files whose frontmatter carries the
// probability tables and whose body doubles as the description.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/lattice/pkg/markov"
	"github.com/aretw0/lattice/pkg/schema"
)

// Library adapts the Loam library to the ports.Library interface.
type Library struct {
	Repo *loam.TypedRepository[ModelMetadata]
}

// New creates a new Loam adapter from a typed repository.
func New(repo *loam.TypedRepository[ModelMetadata]) *Library {
	return &Library{
		Repo: repo,
	}
}

// Open initializes a Loam repository at path and wraps it as a Library.
//
// Strict mode keeps numeric types consistent across Loam's adapters, and
// read-only mode avoids Loam's sandbox behavior in dev mode; the library
// never modifies the repository, only reads it.
func Open(path string) (*Library, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[ModelMetadata](repo)), nil
}

// Get retrieves a model document by its normalized name.
func (l *Library) Get(ctx context.Context, name string) (*schema.Document, error) {
	index, _, err := l.index(ctx)
	if err != nil {
		return nil, err
	}

	rawID, ok := index[trimExtension(name)]
	if !ok {
		return nil, markov.ErrModelNotFound
	}

	doc, err := l.Repo.Get(ctx, rawID)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	out, err := toDocument(trimExtension(name), doc.Data, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawID, err)
	}
	return out, nil
}

// List returns all model names in the repository, normalized and sorted.
func (l *Library) List(ctx context.Context) ([]string, error) {
	_, names, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// index maps normalized model names to raw document IDs. Names come from
// the frontmatter when present, otherwise from the filename.
func (l *Library) index(ctx context.Context) (map[string]string, []string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))

	for _, doc := range docs {
		rawName := doc.Data.Name
		if rawName == "" {
			rawName = doc.ID
		}
		name := trimExtension(rawName)

		// Collision detection
		if existingPath, ok := seen[name]; ok {
			return nil, nil, fmt.Errorf("collision detected: model '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}

	sort.Strings(names)
	return seen, names, nil
}

func toDocument(name string, meta ModelMetadata, content string) (*schema.Document, error) {
	initial, err := toVector(meta.Initial)
	if err != nil {
		return nil, fmt.Errorf("initial: %w", err)
	}
	transition, err := toMatrix(meta.Transition)
	if err != nil {
		return nil, fmt.Errorf("transition: %w", err)
	}
	emission, err := toMatrix(meta.Emission)
	if err != nil {
		return nil, fmt.Errorf("emission: %w", err)
	}

	description := meta.Description
	if description == "" {
		description = strings.TrimSpace(content)
	}

	return &schema.Document{
		Name:        name,
		Description: description,
		States:      meta.States,
		Symbols:     meta.Symbols,
		Initial:     initial,
		Transition:  transition,
		Emission:    emission,
	}, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

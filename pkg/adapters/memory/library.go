package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/lattice/pkg/markov"
	"github.com/aretw0/lattice/pkg/schema"
)

// Library implements ports.Library using an in-memory map. It is immutable
// after construction, which makes it handy for preloading registries in
// tests.
type Library struct {
	docs map[string]*schema.Document
}

// NewLibrary creates a Library from the given documents.
func NewLibrary(docs ...*schema.Document) (*Library, error) {
	data := make(map[string]*schema.Document, len(docs))
	for _, doc := range docs {
		if doc == nil || doc.Name == "" {
			return nil, fmt.Errorf("document missing name")
		}
		if _, ok := data[doc.Name]; ok {
			return nil, fmt.Errorf("duplicate document %q", doc.Name)
		}
		data[doc.Name] = doc.Clone()
	}
	return &Library{docs: data}, nil
}

// Get retrieves a document by name.
func (l *Library) Get(ctx context.Context, name string) (*schema.Document, error) {
	doc, ok := l.docs[name]
	if !ok {
		return nil, markov.ErrModelNotFound
	}
	return doc.Clone(), nil
}

// List returns all available document names.
func (l *Library) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(l.docs))
	for name := range l.docs {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}

package ports

import (
	"context"

	"github.com/aretw0/lattice/pkg/schema"
)

// ModelStore defines the interface for persisting model documents.
// This allows compiled models to be shared between processes and survive
// restarts, with the registry sitting on top as the in-memory cache.
type ModelStore interface {
	// Save persists a document under its name, replacing any previous
	// version.
	Save(ctx context.Context, doc *schema.Document) error

	// Load retrieves a document by name.
	// Returns markov.ErrModelNotFound if no document has that name.
	Load(ctx context.Context, name string) (*schema.Document, error)

	// Delete removes a document by name. Deleting a name that does not
	// exist is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored documents in lexical order.
	List(ctx context.Context) ([]string, error)
}

package ports

import (
	"context"

	"github.com/aretw0/lattice/pkg/schema"
)

// Library is a read-only source of model documents, such as a directory of
// definition files or a content repository. Libraries feed the registry at
// startup; unlike a ModelStore they never accept writes.
type Library interface {
	// Get retrieves a document by name.
	// Returns markov.ErrModelNotFound if no document has that name.
	Get(ctx context.Context, name string) (*schema.Document, error)

	// List returns the names of all available documents in lexical order.
	List(ctx context.Context) ([]string, error)
}

package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/lattice/pkg/adapters/file"
	loamadapter "github.com/aretw0/lattice/pkg/adapters/loam"
	"github.com/aretw0/lattice/pkg/adapters/memory"
	redisadapter "github.com/aretw0/lattice/pkg/adapters/redis"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/aretw0/lattice/pkg/schema"
)

// OpenStore resolves a store specifier into a ModelStore:
//   - "memory" (or empty) keeps models in process
//   - "redis://[:password@]host:port[/db]" shares them through Redis
//   - anything else is a directory of YAML documents
func OpenStore(spec string) (ports.ModelStore, error) {
	switch {
	case spec == "" || spec == "memory":
		return memory.NewStore(), nil
	case strings.HasPrefix(spec, "redis://"):
		return openRedis(spec)
	default:
		return file.New(spec), nil
	}
}

func openRedis(spec string) (ports.ModelStore, error) {
	u, err := url.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid redis address %q: %w", spec, err)
	}

	password, _ := u.User.Password()
	db := 0
	if path := strings.TrimPrefix(u.Path, "/"); path != "" {
		db, err = strconv.Atoi(path)
		if err != nil {
			return nil, fmt.Errorf("invalid redis database %q: %w", path, err)
		}
	}

	return redisadapter.New(u.Host, password, db), nil
}

// OpenLibrary resolves a directory into a read-only model Library. A
// directory of Markdown files opens as a Loam content repository; anything
// else is treated as plain YAML documents.
func OpenLibrary(path string) (ports.Library, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open library %q: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library %q is not a directory", path)
	}

	if hasMarkdown(path) {
		return loamadapter.Open(path)
	}
	return file.New(path), nil
}

func hasMarkdown(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".md" {
			return true
		}
	}
	return false
}

// LoadDocument reads a model definition from a YAML or JSON file.
func LoadDocument(path string) (*schema.Document, error) {
	doc, err := schema.Load(path)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		// Hand-authored files often skip the name; derive it from the
		// filename so the document stands on its own.
		base := filepath.Base(path)
		doc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return doc, nil
}

// Package middleware provides composable wrappers around a ports.ModelStore,
// adding behavior such as at-rest encryption and operation instrumentation
// without the store adapters knowing about it.
package middleware

import "github.com/aretw0/lattice/pkg/ports"

// Middleware allows wrapping a ModelStore to add behavior.
type Middleware func(ports.ModelStore) ports.ModelStore

// Chain applies middlewares to a store so that the first middleware is the
// outermost wrapper, the one a caller hits first.
func Chain(store ports.ModelStore, middlewares ...Middleware) ports.ModelStore {
	for i := len(middlewares) - 1; i >= 0; i-- {
		store = middlewares[i](store)
	}
	return store
}

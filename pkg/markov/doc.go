// Package markov defines the core domain type of Lattice: the validated,
// immutable hidden Markov model.
//
// A Model is built exactly once through the New factory, which checks every
// structural invariant (dimensions, probability ranges, row stochasticity)
// before any Model escapes. Because construction is the only mutation point,
// a Model can be shared read-only across any number of concurrent decodes.
//
// The package also defines the two error types of the core contract:
// ConfigurationError for rejected definitions and DecodeError for
// out-of-alphabet observation symbols, plus the ErrModelNotFound sentinel
// used by stores and libraries.
package markov

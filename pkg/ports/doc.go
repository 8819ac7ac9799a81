/*
Package ports defines the driven ports (interfaces) for the model registry.

These interfaces decouple the decoding core from external implementations,
allowing the registry to work with various storage backends and model
sources.

# Key Interfaces

  - ModelStore: Responsible for persisting and loading model documents
    (e.g., in memory, on disk, or in Redis).
  - Library: A read-only source of model documents (e.g., a directory of
    YAML files or a Loam repository).
*/
package ports

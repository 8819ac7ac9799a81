package lattice

import _ "embed"

// Version is the library version, embedded from the VERSION file at the
// repository root. It includes a trailing newline; trim before display.
//
//go:embed VERSION
var Version string

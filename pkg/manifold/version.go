// Package manifold holds module-wide metadata.
package manifold

// Version is the semantic version of the Manifold module.
const Version = "0.1.0"

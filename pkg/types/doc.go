// Package types defines the ManagerInterface contract, capability and
// access enumerations, entity value types, and the error taxonomy for
// the Manifold host/manager interoperability layer.
package types

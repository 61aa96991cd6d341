// Package annolintsdk provides direct access to annotation validation for
// programs embedding annolint: load a catalog model document, then validate
// the annotations of any object in its model tree.
package annolintsdk

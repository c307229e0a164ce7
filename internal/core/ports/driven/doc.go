// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): storage, the vector index, AI providers and
// the auxiliary generators.
package driven

// Package driving provides interfaces exposed to presentation adapters
// (primary/inbound ports).
package driving

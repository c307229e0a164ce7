// Package seed embeds the starter book catalogue.
package seed

import _ "embed"

// Books is the TOML-encoded starter catalogue of 20 books.
//
//go:embed books.toml
var Books []byte

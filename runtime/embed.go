// Package runtimeembed ships the prelude unit that declares the
// well-known notification types.
package runtimeembed

import (
	_ "embed"
)

// PreludePath is the virtual path the prelude is registered under.
const PreludePath = "reactive/prelude.rx"

//go:embed prelude.rx
var prelude []byte

// Prelude returns the embedded prelude source.
func Prelude() []byte {
	return prelude
}

// Package runtime bundles the C source implementing every __ada_ symbol
// the code generator's preamble declares, so `adac emit-runtime` can hand a
// user a file to link their emitted IR against without checking this
// repository's own source tree out separately. The runtime itself is
// an external collaborator this package ships but never builds or
// type-checks — no cgo, no execution, just the embedding glue.
package runtime

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed ada_runtime.c
var source string

// Source returns the bundled runtime's full C source text.
func Source() string {
	return source
}

// WriteTo writes the bundled runtime source to path, creating its
// parent directory if necessary.
func WriteTo(path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory for runtime source: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return fmt.Errorf("failed to write runtime source: %w", err)
	}
	return nil
}

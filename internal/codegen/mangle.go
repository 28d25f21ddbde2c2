package codegen

import (
	"fmt"
	"strings"

	"github.com/go-ada/adac/internal/token"
)

// mangle encodes a scope path (outermost first) and a declared name into
// an ASCII-safe, case-folded global identifier, per spec.md 4.6.
func mangle(path []string, name string) string {
	parts := make([]string, 0, len(path)+1)
	for _, p := range path {
		parts = append(parts, strings.ToLower(token.Fold(p)))
	}
	parts = append(parts, strings.ToLower(token.Fold(name)))
	return strings.Join(parts, "_")
}

// mangleArity appends an arity suffix so overloaded subprograms sharing
// a folded name still receive distinct global symbols.
func mangleArity(path []string, name string, arity int) string {
	base := mangle(path, name)
	if arity == 0 {
		return base
	}
	return fmt.Sprintf("%s.%d", base, arity)
}

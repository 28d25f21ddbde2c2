package token

import "fmt"

// Position identifies a location in a source file. Columns and lines are
// 1-based; Offset is the 0-based byte offset from the start of the file.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

// String renders the position as "file:line:column", the prefix every
// diagnostic in this compiler is built around.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Package diag formats compiler diagnostics with source context and a
// caret pointing at the offending column, the way the compiler's CLI
// reports errors and warnings to the user.
package diag

import (
	"fmt"
	"strings"

	"github.com/go-ada/adac/internal/token"
)

// Severity distinguishes a hard compilation error from an advisory
// warning; warnings never stop compilation, errors always do.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single compiler message tied to a source position.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Position
	Source   string // full source text of the file, for context lines
	File     string
}

// New creates an Error-severity Diagnostic.
func New(pos token.Position, source, file, format string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Pos: pos, Source: source, File: file}
}

// Warnf creates a Warning-severity Diagnostic.
func Warnf(pos token.Position, source, file, format string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...), Pos: pos, Source: source, File: file}
}

// Error implements the error interface so a *Diagnostic can be returned
// from any function signature expecting one.
func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic with a source line and caret. When color
// is true, ANSI codes highlight the severity label and caret.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
	if d.File != "" && d.Pos.File == "" {
		header = fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
	}
	sb.WriteString(header)
	sb.WriteString("\n")

	line := sourceLine(d.Source, d.Pos.Line)
	if line == "" {
		return sb.String()
	}

	gutter := fmt.Sprintf("%5d | ", d.Pos.Line)
	sb.WriteString(gutter)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(gutter)+d.Pos.Column-1))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, n int) string {
	if source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Bag accumulates diagnostics across a compilation phase. The parser,
// the resolver and the code generator each report into a Bag of their
// own, which the driver checks before running the next phase.
type Bag struct {
	diags []*Diagnostic
}

// Add appends d to the bag.
func (b *Bag) Add(d *Diagnostic) { b.diags = append(b.diags, d) }

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded so far, in report order.
func (b *Bag) All() []*Diagnostic { return b.diags }

// Format renders every diagnostic in the bag, one after another.
func (b *Bag) Format(color bool) string {
	parts := make([]string, len(b.diags))
	for i, d := range b.diags {
		parts[i] = d.Format(color)
	}
	return strings.Join(parts, "\n\n")
}

// Package generics stores generic templates and produces instances by
// deep-cloning a template's AST with formal names replaced by their
// actuals. Cloning never shares a node with the template or with any
// other instance, so each instance can be independently resolved and
// frozen.
package generics

import (
	"fmt"

	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/token"
)

// Template records a generic declaration as seen at its point of
// declaration: its formal-parameter list and the body (or spec-only
// declaration) that follows it.
type Template struct {
	Name    string
	Formals *ast.GenericFormalPart
	Decl    ast.Declaration // *ast.SubprogramDecl, *ast.SubprogramBody, or *ast.PackageSpec
}

// Store records generic templates by their case-folded name and serves
// instantiation requests against them.
type Store struct {
	templates map[string]*Template
}

// NewStore creates an empty template store.
func NewStore() *Store {
	return &Store{templates: make(map[string]*Template)}
}

// Record stores tmpl, keyed by its case-folded name. A later Record of
// the same name replaces the accompanying body once a separate decl and
// body are both seen (the common generic-subprogram pattern of a bare
// declaration followed later by its body).
func (s *Store) Record(tmpl *Template) {
	s.templates[token.Fold(tmpl.Name)] = tmpl
}

// Lookup finds a recorded template by name.
func (s *Store) Lookup(name string) (*Template, bool) {
	t, ok := s.templates[token.Fold(name)]
	return t, ok
}

// Actuals binds each formal name (case-folded) to the expression standing
// in for it in a given instantiation: a type mark for a formal type, an
// expression for a formal object, or an identifier naming the actual
// subprogram for a formal subprogram.
type Actuals map[string]ast.Expression

// NewActuals folds each key through foldKey so callers can build the map
// from original-casing formal names.
func NewActuals() Actuals { return make(Actuals) }

// Bind records the actual for a formal name, case-folding the key.
func (a Actuals) Bind(formalName string, actual ast.Expression) {
	a[foldKey(formalName)] = actual
}

func foldKey(name string) string { return token.Fold(name) }

// Instantiate deep-clones tmpl.Decl with every reference to a formal name
// replaced by its actual, and stamps instanceName as the clone's own
// declared name so its symbol and emitted IR name are distinct from the
// template and from any other instance.
func Instantiate(tmpl *Template, instanceName string, actuals Actuals) (ast.Declaration, error) {
	if err := checkActuals(tmpl, actuals); err != nil {
		return nil, err
	}
	clone := cloneDecl(tmpl.Decl, actuals)
	renameDecl(clone, instanceName)
	return clone, nil
}

func checkActuals(tmpl *Template, actuals Actuals) error {
	for _, f := range tmpl.Formals.Formals {
		switch f.Kind {
		case ast.FormalType:
			if _, ok := actuals[token.Fold(f.Name)]; !ok {
				return fmt.Errorf("missing actual for formal type %s", f.Name)
			}
		case ast.FormalObject:
			for _, n := range f.Names {
				if _, ok := actuals[token.Fold(n)]; !ok && f.Default == nil {
					return fmt.Errorf("missing actual for formal object %s", n)
				}
			}
		case ast.FormalSubprogram:
			if _, ok := actuals[token.Fold(f.Spec.Name)]; !ok && f.Default == nil {
				return fmt.Errorf("missing actual for formal subprogram %s", f.Spec.Name)
			}
		}
	}
	return nil
}

// renameDecl stamps instanceName into the clone's own declared name,
// leaving every substituted reference inside it untouched.
func renameDecl(d ast.Declaration, instanceName string) {
	switch v := d.(type) {
	case *ast.SubprogramDecl:
		v.Spec.Name = instanceName
	case *ast.SubprogramBody:
		v.Spec.Name = instanceName
	case *ast.PackageSpec:
		v.Name = instanceName
	case *ast.PackageBody:
		v.Name = instanceName
	}
}

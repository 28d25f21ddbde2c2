package semantic

import (
	"github.com/go-ada/adac/internal/ast"
	"github.com/go-ada/adac/internal/symtab"
	"github.com/go-ada/adac/internal/types"
)

func (r *Resolver) resolveStmts(list []ast.Statement) {
	for i := range list {
		r.resolveStmt(list[i])
	}
}

func (r *Resolver) resolveStmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.AssignStmt:
		targetType := r.resolveExpr(n.Target)
		r.checkAssignment(&n.Value, targetType)
	case *ast.CallStmt:
		r.resolveCallStmt(n)
	case *ast.NullStmt:
		// Nothing to resolve.
	case *ast.Block:
		r.pushScope("")
		for _, d := range n.Declarations {
			r.resolveDeclaration(d)
		}
		r.resolveStmts(n.Statements)
		r.resolveHandlers(n.Handlers)
		r.popScope()
	case *ast.IfStmt:
		r.resolveExpr(n.Cond)
		r.resolveStmts(n.Then)
		for i := range n.ElsifArms {
			r.resolveExpr(n.ElsifArms[i].Cond)
			r.resolveStmts(n.ElsifArms[i].Then)
		}
		r.resolveStmts(n.Else)
	case *ast.CaseStmt:
		r.resolveCaseStmt(n)
	case *ast.LoopStmt:
		r.resolveLoopStmt(n)
	case *ast.ExitStmt:
		if n.Cond != nil {
			r.resolveExpr(n.Cond)
		}
	case *ast.ReturnStmt:
		if n.Value != nil {
			r.checkAssignment(&n.Value, r.currentReturn)
		}
	case *ast.RaiseStmt:
		if n.Name != nil {
			r.resolveExceptionName(n.Name)
		}
	case *ast.Pragma:
		// Advisory; nothing to resolve.
	default:
		r.errorf(s.Pos(), "internal: unsupported statement %T", s)
	}
}

func (r *Resolver) resolveCallStmt(n *ast.CallStmt) {
	if ident, ok := n.Call.(*ast.Identifier); ok {
		sym := r.scope.Lookup(ident.Name)
		if sym == nil {
			r.errorf(ident.Pos(), "undeclared identifier %q", ident.Name)
			return
		}
		sym = r.resolveOverload(ident.Pos(), sym, nil)
		r.setType(ident, sym.Type)
		return
	}
	r.resolveExpr(n.Call)
}

func (r *Resolver) resolveCaseStmt(n *ast.CaseStmt) {
	r.resolveExpr(n.Selector)
	for _, alt := range n.Alts {
		for _, c := range alt.Choices {
			r.resolveExpr(c)
		}
		r.resolveStmts(alt.Body)
	}
	r.resolveStmts(n.OthersAlt)
}

func (r *Resolver) resolveLoopStmt(n *ast.LoopStmt) {
	switch n.Kind {
	case ast.LoopWhile:
		r.resolveExpr(n.Cond)
		r.resolveStmts(n.Body)
	case ast.LoopFor:
		r.pushScope("")
		loopVarType := r.resolveForLoopType(n)
		r.scope.Declare(&symtab.Symbol{Name: n.LoopVar, Kind: symtab.KindObject, Type: loopVarType, Pos: n.Pos()})
		r.resolveStmts(n.Body)
		r.popScope()
	default:
		r.resolveStmts(n.Body)
	}
}

// resolveForLoopType determines a for-loop's control variable type,
// either from an explicit discrete range's bounds or from a subtype
// mark used as `in Subtype` / `in Subtype'Range`.
func (r *Resolver) resolveForLoopType(n *ast.LoopStmt) *types.Type {
	if n.Range != nil {
		lt := r.resolveExpr(n.Range.Low)
		r.resolveExpr(n.Range.High)
		return lt
	}
	if n.RangeType != nil {
		if ar, ok := n.RangeType.(*ast.AttributeRef); ok {
			return r.resolveTypeMark(ar.Prefix)
		}
		return r.resolveTypeMark(n.RangeType)
	}
	return nil
}

func (r *Resolver) resolveHandlers(handlers []ast.ExceptionHandler) {
	for _, h := range handlers {
		for _, name := range h.Names {
			r.resolveExceptionName(name)
		}
		r.resolveStmts(h.Statements)
	}
}

func (r *Resolver) resolveExceptionName(e ast.Expression) {
	ident, ok := e.(*ast.Identifier)
	if !ok {
		r.errorf(e.Pos(), "expected an exception name")
		return
	}
	sym := r.scope.Lookup(ident.Name)
	if sym == nil {
		r.errorf(ident.Pos(), "undeclared identifier %q", ident.Name)
		return
	}
	if sym.Kind != symtab.KindException {
		r.errorf(ident.Pos(), "%q is not an exception", ident.Name)
		return
	}
	r.setType(ident, nil)
}

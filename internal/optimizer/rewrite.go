package optimizer

import "github.com/go-ada/adac/internal/ast"

// rewriteExpr rewrites every child of e in place (post-order, so an
// outer fold sees its operands already folded) and then applies fn to
// e itself, returning whatever fn chooses to substitute in its place.
func rewriteExpr(e ast.Expression, fn func(ast.Expression) ast.Expression) ast.Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ast.BinaryExpr:
		n.Left = rewriteExpr(n.Left, fn)
		n.Right = rewriteExpr(n.Right, fn)
	case *ast.UnaryExpr:
		n.Right = rewriteExpr(n.Right, fn)
	case *ast.RangeExpr:
		n.Low = rewriteExpr(n.Low, fn)
		n.High = rewriteExpr(n.High, fn)
	case *ast.AttributeRef:
		n.Prefix = rewriteExpr(n.Prefix, fn)
		for i := range n.Args {
			n.Args[i] = rewriteExpr(n.Args[i], fn)
		}
	case *ast.SelectedComponent:
		n.Prefix = rewriteExpr(n.Prefix, fn)
	case *ast.IndexedComponent:
		n.Prefix = rewriteExpr(n.Prefix, fn)
		for i := range n.Args {
			n.Args[i] = rewriteExpr(n.Args[i], fn)
		}
		for i := range n.Named {
			n.Named[i].Expr = rewriteExpr(n.Named[i].Expr, fn)
		}
	case *ast.QualifiedExpr:
		n.Qualified = rewriteExpr(n.Qualified, fn)
	case *ast.Allocator:
		n.Init = rewriteExpr(n.Init, fn)
	case *ast.Aggregate:
		for i := range n.Elements {
			n.Elements[i].Value = rewriteExpr(n.Elements[i].Value, fn)
			for j := range n.Elements[i].Choices {
				n.Elements[i].Choices[j] = rewriteExpr(n.Elements[i].Choices[j], fn)
			}
		}
	case *ast.Check:
		n.Target = rewriteExpr(n.Target, fn)
	}
	return fn(e)
}

func walkStatements(stmts []ast.Statement, fn func(ast.Expression) ast.Expression) {
	for _, s := range stmts {
		walkStatement(s, fn)
	}
}

func walkStatement(s ast.Statement, fn func(ast.Expression) ast.Expression) {
	switch n := s.(type) {
	case *ast.AssignStmt:
		n.Target = rewriteExpr(n.Target, fn)
		n.Value = rewriteExpr(n.Value, fn)
	case *ast.CallStmt:
		n.Call = rewriteExpr(n.Call, fn)
	case *ast.Block:
		walkDeclarations(n.Declarations, fn)
		walkStatements(n.Statements, fn)
		walkHandlers(n.Handlers, fn)
	case *ast.IfStmt:
		n.Cond = rewriteExpr(n.Cond, fn)
		walkStatements(n.Then, fn)
		for i := range n.ElsifArms {
			n.ElsifArms[i].Cond = rewriteExpr(n.ElsifArms[i].Cond, fn)
			walkStatements(n.ElsifArms[i].Then, fn)
		}
		walkStatements(n.Else, fn)
	case *ast.CaseStmt:
		n.Selector = rewriteExpr(n.Selector, fn)
		for i := range n.Alts {
			for j := range n.Alts[i].Choices {
				n.Alts[i].Choices[j] = rewriteExpr(n.Alts[i].Choices[j], fn)
			}
			walkStatements(n.Alts[i].Body, fn)
		}
		walkStatements(n.OthersAlt, fn)
	case *ast.LoopStmt:
		n.Cond = rewriteExpr(n.Cond, fn)
		if n.Range != nil {
			if rr, ok := rewriteExpr(n.Range, fn).(*ast.RangeExpr); ok {
				n.Range = rr
			}
		}
		n.RangeType = rewriteExpr(n.RangeType, fn)
		walkStatements(n.Body, fn)
	case *ast.ExitStmt:
		n.Cond = rewriteExpr(n.Cond, fn)
	case *ast.ReturnStmt:
		n.Value = rewriteExpr(n.Value, fn)
	case *ast.RaiseStmt:
		n.Name = rewriteExpr(n.Name, fn)
	}
}

func walkHandlers(handlers []ast.ExceptionHandler, fn func(ast.Expression) ast.Expression) {
	for i := range handlers {
		for j := range handlers[i].Names {
			handlers[i].Names[j] = rewriteExpr(handlers[i].Names[j], fn)
		}
		walkStatements(handlers[i].Statements, fn)
	}
}

func walkDeclarations(decls []ast.Declaration, fn func(ast.Expression) ast.Expression) {
	for _, d := range decls {
		walkDeclaration(d, fn)
	}
}

func walkDeclaration(d ast.Declaration, fn func(ast.Expression) ast.Expression) {
	switch n := d.(type) {
	case *ast.ObjectDecl:
		n.Init = rewriteExpr(n.Init, fn)
		if n.SubtypeInd != nil && n.SubtypeInd.Range != nil {
			if rr, ok := rewriteExpr(n.SubtypeInd.Range, fn).(*ast.RangeExpr); ok {
				n.SubtypeInd.Range = rr
			}
		}
	case *ast.NumberDecl:
		n.Value = rewriteExpr(n.Value, fn)
	case *ast.SubprogramBody:
		walkDeclarations(n.Declarations, fn)
		walkStatements(n.Statements, fn)
		walkHandlers(n.Handlers, fn)
	case *ast.PackageSpec:
		walkDeclarations(n.Declarations, fn)
		walkDeclarations(n.Private, fn)
	case *ast.PackageBody:
		walkDeclarations(n.Declarations, fn)
		walkStatements(n.Statements, fn)
		walkHandlers(n.Handlers, fn)
	case *ast.GenericInstantiation:
		for i := range n.Actuals {
			n.Actuals[i] = rewriteExpr(n.Actuals[i], fn)
		}
		for i := range n.NamedArgs {
			n.NamedArgs[i].Expr = rewriteExpr(n.NamedArgs[i].Expr, fn)
		}
	}
}

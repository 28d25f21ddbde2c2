package generics

import "github.com/go-ada/adac/internal/ast"

// cloneExpr deep-copies e, substituting any Identifier whose name matches
// a key of subst with a fresh clone of the bound actual.
func cloneExpr(e ast.Expression, subst Actuals) ast.Expression {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *ast.Identifier:
		if actual, ok := lookupActual(subst, v.Name); ok {
			return cloneExpr(actual, nil) // actuals are already resolved; no further substitution
		}
		cp := *v
		return &cp
	case *ast.IntegerLiteral:
		cp := *v
		return &cp
	case *ast.RealLiteral:
		cp := *v
		return &cp
	case *ast.CharLiteral:
		cp := *v
		return &cp
	case *ast.StringLiteral:
		cp := *v
		return &cp
	case *ast.NullLiteral:
		cp := *v
		return &cp
	case *ast.BinaryExpr:
		cp := *v
		cp.Left = cloneExpr(v.Left, subst)
		cp.Right = cloneExpr(v.Right, subst)
		return &cp
	case *ast.UnaryExpr:
		cp := *v
		cp.Right = cloneExpr(v.Right, subst)
		return &cp
	case *ast.RangeExpr:
		cp := *v
		cp.Low = cloneExpr(v.Low, subst)
		cp.High = cloneExpr(v.High, subst)
		return &cp
	case *ast.AttributeRef:
		cp := *v
		cp.Prefix = cloneExpr(v.Prefix, subst)
		cp.Args = cloneExprList(v.Args, subst)
		return &cp
	case *ast.SelectedComponent:
		cp := *v
		cp.Prefix = cloneExpr(v.Prefix, subst)
		return &cp
	case *ast.IndexedComponent:
		cp := *v
		cp.Prefix = cloneExpr(v.Prefix, subst)
		cp.Args = cloneExprList(v.Args, subst)
		cp.Named = cloneNamedArgs(v.Named, subst)
		return &cp
	case *ast.QualifiedExpr:
		cp := *v
		cp.TypeMark = cloneExpr(v.TypeMark, subst)
		cp.Qualified = cloneExpr(v.Qualified, subst)
		return &cp
	case *ast.Allocator:
		cp := *v
		cp.TypeMark = cloneExpr(v.TypeMark, subst)
		cp.Init = cloneExpr(v.Init, subst)
		return &cp
	case *ast.OthersChoice:
		cp := *v
		return &cp
	case *ast.Aggregate:
		cp := *v
		cp.Elements = make([]ast.AggregateChoice, len(v.Elements))
		for i, el := range v.Elements {
			cp.Elements[i] = ast.AggregateChoice{
				Choices: cloneExprList(el.Choices, subst),
				Value:   cloneExpr(el.Value, subst),
			}
		}
		return &cp
	default:
		return e
	}
}

func lookupActual(subst Actuals, name string) (ast.Expression, bool) {
	if subst == nil {
		return nil, false
	}
	a, ok := subst[foldKey(name)]
	return a, ok
}

func cloneExprList(list []ast.Expression, subst Actuals) []ast.Expression {
	if list == nil {
		return nil
	}
	out := make([]ast.Expression, len(list))
	for i, e := range list {
		out[i] = cloneExpr(e, subst)
	}
	return out
}

func cloneNamedArgs(list []ast.NamedArg, subst Actuals) []ast.NamedArg {
	if list == nil {
		return nil
	}
	out := make([]ast.NamedArg, len(list))
	for i, n := range list {
		out[i] = ast.NamedArg{Name: n.Name, Expr: cloneExpr(n.Expr, subst)}
	}
	return out
}

func cloneSubtypeInd(si *ast.SubtypeIndication, subst Actuals) *ast.SubtypeIndication {
	if si == nil {
		return nil
	}
	cp := *si
	cp.TypeMark = cloneExpr(si.TypeMark, subst)
	if si.Range != nil {
		r := cloneExpr(si.Range, subst).(*ast.RangeExpr)
		cp.Range = r
	}
	cp.IndexConstraints = cloneExprList(si.IndexConstraints, subst)
	return &cp
}

func cloneStmt(s ast.Statement, subst Actuals) ast.Statement {
	if s == nil {
		return nil
	}
	switch v := s.(type) {
	case *ast.AssignStmt:
		cp := *v
		cp.Target = cloneExpr(v.Target, subst)
		cp.Value = cloneExpr(v.Value, subst)
		return &cp
	case *ast.CallStmt:
		cp := *v
		cp.Call = cloneExpr(v.Call, subst)
		return &cp
	case *ast.NullStmt:
		cp := *v
		return &cp
	case *ast.Block:
		cp := *v
		cp.Declarations = cloneDeclList(v.Declarations, subst)
		cp.Statements = cloneStmtList(v.Statements, subst)
		cp.Handlers = cloneHandlers(v.Handlers, subst)
		return &cp
	case *ast.IfStmt:
		cp := *v
		cp.Cond = cloneExpr(v.Cond, subst)
		cp.Then = cloneStmtList(v.Then, subst)
		cp.ElsifArms = make([]ast.ElsifArm, len(v.ElsifArms))
		for i, arm := range v.ElsifArms {
			cp.ElsifArms[i] = ast.ElsifArm{Cond: cloneExpr(arm.Cond, subst), Then: cloneStmtList(arm.Then, subst)}
		}
		cp.Else = cloneStmtList(v.Else, subst)
		return &cp
	case *ast.CaseStmt:
		cp := *v
		cp.Selector = cloneExpr(v.Selector, subst)
		cp.Alts = make([]ast.CaseAlt, len(v.Alts))
		for i, alt := range v.Alts {
			cp.Alts[i] = ast.CaseAlt{Choices: cloneExprList(alt.Choices, subst), Body: cloneStmtList(alt.Body, subst)}
		}
		cp.OthersAlt = cloneStmtList(v.OthersAlt, subst)
		return &cp
	case *ast.LoopStmt:
		cp := *v
		cp.Cond = cloneExpr(v.Cond, subst)
		if v.Range != nil {
			cp.Range = cloneExpr(v.Range, subst).(*ast.RangeExpr)
		}
		cp.RangeType = cloneExpr(v.RangeType, subst)
		cp.Body = cloneStmtList(v.Body, subst)
		return &cp
	case *ast.ExitStmt:
		cp := *v
		cp.Cond = cloneExpr(v.Cond, subst)
		return &cp
	case *ast.ReturnStmt:
		cp := *v
		cp.Value = cloneExpr(v.Value, subst)
		return &cp
	case *ast.RaiseStmt:
		cp := *v
		cp.Name = cloneExpr(v.Name, subst)
		return &cp
	case *ast.Pragma:
		return clonePragma(v, subst)
	default:
		return s
	}
}

func cloneStmtList(list []ast.Statement, subst Actuals) []ast.Statement {
	if list == nil {
		return nil
	}
	out := make([]ast.Statement, len(list))
	for i, s := range list {
		out[i] = cloneStmt(s, subst)
	}
	return out
}

func cloneHandlers(list []ast.ExceptionHandler, subst Actuals) []ast.ExceptionHandler {
	if list == nil {
		return nil
	}
	out := make([]ast.ExceptionHandler, len(list))
	for i, h := range list {
		out[i] = ast.ExceptionHandler{
			Token:      h.Token,
			Names:      cloneExprList(h.Names, subst),
			Others:     h.Others,
			Statements: cloneStmtList(h.Statements, subst),
		}
	}
	return out
}

func cloneParams(list []ast.Param, subst Actuals) []ast.Param {
	if list == nil {
		return nil
	}
	out := make([]ast.Param, len(list))
	for i, p := range list {
		out[i] = ast.Param{
			Names:    append([]string(nil), p.Names...),
			Mode:     p.Mode,
			TypeMark: cloneExpr(p.TypeMark, subst),
			Default:  cloneExpr(p.Default, subst),
		}
	}
	return out
}

func cloneSpec(spec *ast.SubprogramSpec, subst Actuals) *ast.SubprogramSpec {
	if spec == nil {
		return nil
	}
	cp := *spec
	cp.Params = cloneParams(spec.Params, subst)
	cp.ReturnType = cloneExpr(spec.ReturnType, subst)
	return &cp
}

func clonePragma(p *ast.Pragma, subst Actuals) *ast.Pragma {
	cp := *p
	cp.Args = cloneExprList(p.Args, subst)
	return &cp
}

func cloneTypeDef(d ast.TypeDef, subst Actuals) ast.TypeDef {
	if d == nil {
		return nil
	}
	switch v := d.(type) {
	case *ast.DerivedTypeDef:
		cp := *v
		cp.Parent = cloneExpr(v.Parent, subst)
		if v.Range != nil {
			cp.Range = cloneExpr(v.Range, subst).(*ast.RangeExpr)
		}
		return &cp
	case *ast.RangeTypeDef:
		cp := *v
		cp.Range = cloneExpr(v.Range, subst).(*ast.RangeExpr)
		return &cp
	case *ast.ModularTypeDef:
		cp := *v
		cp.Modulus = cloneExpr(v.Modulus, subst)
		return &cp
	case *ast.FloatTypeDef:
		cp := *v
		cp.Precision = cloneExpr(v.Precision, subst)
		if v.Range != nil {
			cp.Range = cloneExpr(v.Range, subst).(*ast.RangeExpr)
		}
		return &cp
	case *ast.FixedTypeDef:
		cp := *v
		cp.Delta = cloneExpr(v.Delta, subst)
		if v.Range != nil {
			cp.Range = cloneExpr(v.Range, subst).(*ast.RangeExpr)
		}
		return &cp
	case *ast.EnumTypeDef:
		cp := *v
		cp.Literals = append([]string(nil), v.Literals...)
		return &cp
	case *ast.ArrayTypeDef:
		cp := *v
		cp.IndexRanges = cloneExprList(v.IndexRanges, subst)
		cp.IndexTypes = cloneExprList(v.IndexTypes, subst)
		cp.Component = cloneExpr(v.Component, subst)
		return &cp
	case *ast.RecordTypeDef:
		cp := *v
		cp.Components = make([]ast.RecordComponent, len(v.Components))
		for i, c := range v.Components {
			cp.Components[i] = ast.RecordComponent{
				Names:      append([]string(nil), c.Names...),
				SubtypeInd: cloneSubtypeInd(c.SubtypeInd, subst),
				Default:    cloneExpr(c.Default, subst),
			}
		}
		return &cp
	case *ast.AccessTypeDef:
		cp := *v
		cp.Designated = cloneExpr(v.Designated, subst)
		return &cp
	default:
		return d
	}
}

func cloneDecl(d ast.Declaration, subst Actuals) ast.Declaration {
	if d == nil {
		return nil
	}
	switch v := d.(type) {
	case *ast.ObjectDecl:
		cp := *v
		cp.Names = append([]string(nil), v.Names...)
		cp.SubtypeInd = cloneSubtypeInd(v.SubtypeInd, subst)
		cp.Init = cloneExpr(v.Init, subst)
		return &cp
	case *ast.NumberDecl:
		cp := *v
		cp.Names = append([]string(nil), v.Names...)
		cp.Value = cloneExpr(v.Value, subst)
		return &cp
	case *ast.TypeDecl:
		cp := *v
		cp.Def = cloneTypeDef(v.Def, subst)
		return &cp
	case *ast.SubtypeDecl:
		cp := *v
		cp.SubtypeInd = cloneSubtypeInd(v.SubtypeInd, subst)
		return &cp
	case *ast.ExceptionDecl:
		cp := *v
		cp.Names = append([]string(nil), v.Names...)
		return &cp
	case *ast.RenamingDecl:
		cp := *v
		cp.TypeMark = cloneExpr(v.TypeMark, subst)
		cp.Renamed = cloneExpr(v.Renamed, subst)
		return &cp
	case *ast.SubprogramDecl:
		return &ast.SubprogramDecl{Spec: cloneSpec(v.Spec, subst)} // an instance is never itself generic
	case *ast.SubprogramBody:
		cp := *v
		cp.Spec = cloneSpec(v.Spec, subst)
		cp.Declarations = cloneDeclList(v.Declarations, subst)
		cp.Statements = cloneStmtList(v.Statements, subst)
		cp.Handlers = cloneHandlers(v.Handlers, subst)
		cp.Generic = nil // an instance is never itself generic
		return &cp
	case *ast.PackageSpec:
		cp := *v
		cp.Declarations = cloneDeclList(v.Declarations, subst)
		cp.Private = cloneDeclList(v.Private, subst)
		cp.Generic = nil
		return &cp
	case *ast.PackageBody:
		cp := *v
		cp.Declarations = cloneDeclList(v.Declarations, subst)
		cp.Statements = cloneStmtList(v.Statements, subst)
		cp.Handlers = cloneHandlers(v.Handlers, subst)
		return &cp
	case *ast.GenericInstantiation:
		cp := *v
		cp.Actuals = cloneExprList(v.Actuals, subst)
		cp.NamedArgs = cloneNamedArgs(v.NamedArgs, subst)
		return &cp
	case *ast.Pragma:
		return clonePragma(v, subst)
	default:
		return d
	}
}

func cloneDeclList(list []ast.Declaration, subst Actuals) []ast.Declaration {
	if list == nil {
		return nil
	}
	out := make([]ast.Declaration, len(list))
	for i, d := range list {
		out[i] = cloneDecl(d, subst)
	}
	return out
}

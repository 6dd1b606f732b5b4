// Package lower converts a parsed ast.File into an arena-addressed
// ir.Module: every identifier occurrence becomes an Unresolved ir.IdentID
// tagged with the tree slot it came from, every type annotation becomes a
// hash-consed ir.TypeSigID, and nested statement sequences are flattened
// into ir.StmtBlocks (the top level is flattened straight into the
// Module's statement list, with no intermediate wrapper node).
package lower

import (
	"github.com/google/uuid"

	"github.com/ku-lang/kujs/ast"
	"github.com/ku-lang/kujs/internal/kujslog"
	"github.com/ku-lang/kujs/ir"
	"github.com/ku-lang/kujs/lexer"
)

var log = kujslog.New("lower")

// Lower is the single conversion function from the untyped parse tree to
// the typed IR the rest of the compiler operates on.
func Lower(file *ast.File) (*ir.Ctx, *ir.Module) {
	ctx := ir.NewCtx()
	l := &lowerer{ctx: ctx}

	log.Debug("lowering %d top-level statements", len(file.Stmts))

	mod := &ir.Module{}
	for _, s := range file.Stmts {
		mod.Stmts = append(mod.Stmts, l.lowerStmt(s))
	}
	return ctx, mod
}

type lowerer struct {
	ctx *ir.Ctx
}

func (l *lowerer) lowerStmt(s ast.Stmt) ir.StmtID {
	switch s := s.(type) {
	case ast.VarDecl:
		name := l.ctx.MakeUnresolvedIdent(s.Name, s.Sp, ir.IdentParent{Kind: ir.IdentParentDefault})
		var typ *ir.TypeRef
		if s.Type != nil {
			t := l.lowerType(s.Type, ir.TypeSigCtxVarDecl, 0, 0)
			typ = &t
		}
		value := l.lowerExpr(s.Value)
		return l.ctx.AllocStmt(ir.VarDeclStmt{
			Name: name, Mutable: s.Mutable, TypeSig: typ, Value: value, Span: s.Sp,
		})

	case ast.FuncDecl:
		name := l.ctx.MakeUnresolvedIdent(s.Name, s.Sp, ir.IdentParent{Kind: ir.IdentParentDefault})
		funcID := l.lowerFunction(s.Params, s.ReturnType, s.Body, s.Sp)
		return l.ctx.AllocStmt(ir.FunctionDeclStmt{Name: name, Func: funcID, Span: s.Sp})

	case ast.StructDecl:
		name := l.ctx.MakeUnresolvedIdent(s.Name, s.Sp, ir.IdentParent{Kind: ir.IdentParentDefault})
		structID := l.ctx.AllocStruct(ir.Struct{Name: name, Span: s.Sp})
		st := l.ctx.Struct(structID)
		for _, a := range s.Attrs {
			attrName := l.ctx.MakeUnresolvedIdent(a.Name, a.Sp, ir.IdentParent{Kind: ir.IdentParentDefault})
			var typ *ir.TypeRef
			if a.Type != nil {
				t := l.lowerType(a.Type, ir.TypeSigCtxStructAttr, len(st.Attrs), int(structID))
				typ = &t
			}
			var def *ir.ExprID
			if a.Default != nil {
				d := l.lowerExpr(a.Default)
				def = &d
			}
			attrID := l.ctx.AllocStructAttr(ir.StructAttr{Name: attrName, TypeSig: typ, Default: def, Span: a.Sp})
			st.Attrs = append(st.Attrs, attrID)
		}
		l.ctx.Structs.Set(int(structID), st)
		return l.ctx.AllocStmt(ir.StructDeclStmt{Name: name, Struct: structID, Span: s.Sp})

	case ast.EnumDecl:
		name := l.ctx.MakeUnresolvedIdent(s.Name, s.Sp, ir.IdentParent{Kind: ir.IdentParentDefault})
		enumID := l.ctx.AllocEnum(ir.Enum{Name: name, Span: s.Sp})
		en := l.ctx.Enum(enumID)
		for _, v := range s.Values {
			valName := l.ctx.MakeUnresolvedIdent(v.Name, v.Sp, ir.IdentParent{Kind: ir.IdentParentEnumInitValueName})
			items := make([]ir.TypeRef, len(v.Items))
			for i, it := range v.Items {
				items[i] = l.lowerType(it, ir.TypeSigCtxEnumValue, i, int(enumID))
			}
			valID := l.ctx.AllocEnumValue(ir.EnumValue{Name: valName, Items: items, Span: v.Sp})
			en.Values = append(en.Values, valID)
		}
		l.ctx.Enums.Set(int(enumID), en)
		return l.ctx.AllocStmt(ir.EnumDeclStmt{Name: name, Enum: enumID, Span: s.Sp})

	case ast.ExprStmt:
		return l.ctx.AllocStmt(ir.ExpressionStmt{Value: l.lowerExpr(s.Value), Span: s.Sp})

	case ast.Return:
		var v ir.ExprID
		if s.HasValue {
			v = l.lowerExpr(s.Value)
		}
		return l.ctx.AllocStmt(ir.ReturnStmt{Value: v, HasValue: s.HasValue, Span: s.Sp})

	default:
		panic("INTERNAL ERROR: lowerStmt: unhandled ast.Stmt variant")
	}
}

// lowerFunction allocates a Function's FuncID first, since its arguments'
// identifiers and type signatures carry that id as diagnostic context
// before the Function value itself (ReturnType, Body) can be completed —
// the same ordering constraint documented on ir.LateInit.
func (l *lowerer) lowerFunction(params []ast.Param, retType ast.TypeExpr, body []ast.Stmt, sp lexer.Span) ir.FuncID {
	funcID := l.ctx.AllocFunc(ir.Function{Span: sp})

	args := make([]ir.FunctionArg, len(params))
	for i, p := range params {
		argName := l.ctx.MakeUnresolvedIdent(p.Name, p.Sp, ir.IdentParent{Kind: ir.IdentParentDefault})
		args[i] = ir.FunctionArg{
			Name:    argName,
			TypeSig: l.lowerType(p.Type, ir.TypeSigCtxFuncArg, i, int(funcID)),
		}
	}

	var retRef ir.TypeRef
	if retType != nil {
		retRef = l.lowerType(retType, ir.TypeSigCtxFuncReturn, 0, int(funcID))
	} else {
		// Unspecified return type: a fresh type variable, not Void — a
		// `return` statement inside the body still has to be able to pin
		// this to whatever it actually returns (type_inference.rs:355-364).
		retRef = ir.TypeRef{
			Sig: l.ctx.FreshTypeVar(),
			Ctx: ir.TypeSigContext{Kind: ir.TypeSigCtxFuncReturn, Owner: int(funcID)},
		}
	}

	var bodyStmts []ir.StmtID
	for _, s := range body {
		bodyStmts = append(bodyStmts, l.lowerStmt(s))
	}
	blockID := l.ctx.AllocStmtBlock(ir.StmtBlock{Stmts: bodyStmts})

	fn := l.ctx.Func(funcID)
	fn.Args = args
	fn.ReturnType.Set(retRef)
	fn.Body.Set(blockID)
	l.ctx.SetFunc(funcID, fn)

	return funcID
}

func (l *lowerer) lowerExpr(e ast.Expr) ir.ExprID {
	switch e := e.(type) {
	case ast.StringLit:
		return l.ctx.AllocExpr(ir.StringLiteralExpr{Value: e.Value, Span: e.Sp})

	case ast.NumberLit:
		return l.ctx.AllocExpr(ir.NumberLiteralExpr{Raw: e.Raw, Span: e.Sp})

	case ast.BoolLit:
		return l.ctx.AllocExpr(ir.BoolLiteralExpr{Value: e.Value, Span: e.Sp})

	case ast.Ident:
		ident := l.ctx.MakeUnresolvedIdent(e.Name, e.Sp, ir.IdentParent{Kind: ir.IdentParentDefault})
		return l.ctx.AllocExpr(ir.IdentifierExpr{Ident: ident, Span: e.Sp})

	case ast.FuncLit:
		funcID := l.lowerFunction(e.Params, e.ReturnType, e.Body, e.Sp)
		scopeName := l.ctx.MakeAnonIdent(anonScopeName("func"), e.Sp, ir.IdentParent{Kind: ir.IdentParentDefault})
		return l.ctx.AllocExpr(ir.FunctionExpr{Func: funcID, ScopeName: scopeName, Span: e.Sp})

	case ast.Call:
		callee := l.lowerExpr(e.Callee)
		args := make([]ir.ExprID, len(e.Args))
		for i, a := range e.Args {
			args[i] = l.lowerExpr(a)
		}
		return l.ctx.AllocExpr(ir.FunctionCallExpr{Callee: callee, Args: args, Span: e.Sp})

	case ast.StructInit:
		structName := l.ctx.MakeUnresolvedIdent(e.Name, e.Sp, ir.IdentParent{Kind: ir.IdentParentDefault})
		scopeName := l.ctx.MakeAnonIdent(anonScopeName("struct-init"), e.Sp, ir.IdentParent{Kind: ir.IdentParentDefault})
		values := make([]ir.StructInitValueID, len(e.Fields))
		for i, f := range e.Fields {
			attrName := l.ctx.MakeUnresolvedIdent(f.Name, f.Sp, ir.IdentParent{Kind: ir.IdentParentStructInitAttrName})
			values[i] = l.ctx.AllocStructInitValue(ir.StructInitValue{
				AttrName: attrName, Value: l.lowerExpr(f.Value), Span: f.Sp,
			})
		}
		return l.ctx.AllocExpr(ir.StructInitExpr{StructName: structName, ScopeName: scopeName, Values: values, Span: e.Sp})

	case ast.MemberAccess:
		member := l.ctx.MakeUnresolvedIdent(e.Member, e.Sp, ir.IdentParent{Kind: ir.IdentParentMemberAccessName})
		if e.Object == nil {
			args := make([]ir.ExprID, len(e.Args))
			for i, a := range e.Args {
				args[i] = l.lowerExpr(a)
			}
			return l.ctx.AllocExpr(ir.UnresolvedMemberAccessExpr{HasObject: false, Member: member, Args: args, Span: e.Sp})
		}
		object := l.lowerExpr(e.Object)
		return l.ctx.AllocExpr(ir.UnresolvedMemberAccessExpr{HasObject: true, Object: object, Member: member, Span: e.Sp})

	case ast.Tuple:
		items := make([]ir.ExprID, len(e.Items))
		for i, it := range e.Items {
			items[i] = l.lowerExpr(it)
		}
		return l.ctx.AllocExpr(ir.TupleExpr{Items: items, Span: e.Sp})

	case ast.TupleAccess:
		return l.ctx.AllocExpr(ir.TupleAccessExpr{Object: l.lowerExpr(e.Object), Index: e.Index, Span: e.Sp})

	case ast.EscapeBlock:
		var typ *ir.TypeRef
		if e.Type != nil {
			t := l.lowerType(e.Type, ir.TypeSigCtxExpr, 0, 0)
			typ = &t
		}
		return l.ctx.AllocExpr(ir.EscapeBlockExpr{Code: e.Code, TypeSig: typ, Span: e.Sp})

	case ast.Assignment:
		target := l.lowerExpr(e.Target)
		value := l.lowerExpr(e.Value)
		return l.ctx.AllocExpr(ir.AssignmentExpr{Target: target, Value: value, Span: e.Sp})

	default:
		panic("INTERNAL ERROR: lowerExpr: unhandled ast.Expr variant")
	}
}

// lowerType hash-conses an ast.TypeExpr into a TypeRef, tagging it with the
// tree slot (ctxKind/index/owner) it occupies for later diagnostics. Named
// types matching one of the builtin scalars resolve immediately; any other
// name becomes an Unresolved type-sig for resolve to disambiguate into
// Struct/Enum/Trait once the symbol table exists.
func (l *lowerer) lowerType(t ast.TypeExpr, ctxKind ir.TypeSigContextKind, index, owner int) ir.TypeRef {
	switch t := t.(type) {
	case ast.NamedType:
		if b, ok := builtinByName(t.Name); ok {
			return ir.TypeRef{
				Sig: l.ctx.BuiltinTypeSig(b),
				Ctx: ir.TypeSigContext{Kind: ctxKind, Index: index, Owner: owner},
			}
		}
		ident := l.ctx.MakeUnresolvedIdent(t.Name, t.Sp, ir.IdentParent{Kind: ir.IdentParentTypeSigName})
		sig := l.ctx.GetTypeSig(ir.TypeSigValue{Kind: ir.TypeSigUnresolved, UnresolvedIdent: ident})
		return ir.TypeRef{Sig: sig, Ctx: ir.TypeSigContext{Kind: ctxKind, Index: index, Owner: owner}}

	case ast.FuncType:
		args := make([]ir.TypeSigID, len(t.Args))
		for i, a := range t.Args {
			args[i] = l.lowerType(a, ir.TypeSigCtxFuncArg, i, owner).Sig
		}
		ret := l.lowerType(t.Return, ir.TypeSigCtxFuncReturn, 0, owner).Sig
		sig := l.ctx.GetTypeSig(ir.TypeSigValue{Kind: ir.TypeSigFunction, FuncArgs: args, FuncReturn: ret})
		return ir.TypeRef{Sig: sig, Ctx: ir.TypeSigContext{Kind: ctxKind, Index: index, Owner: owner}}

	case ast.TupleType:
		members := make([]ir.TypeSigID, len(t.Items))
		for i, it := range t.Items {
			members[i] = l.lowerType(it, ir.TypeSigCtxTupleItem, i, owner).Sig
		}
		sig := l.ctx.GetTypeSig(ir.TypeSigValue{Kind: ir.TypeSigTuple, TupleMembers: members})
		return ir.TypeRef{Sig: sig, Ctx: ir.TypeSigContext{Kind: ctxKind, Index: index, Owner: owner}}

	default:
		panic("INTERNAL ERROR: lowerType: unhandled ast.TypeExpr variant")
	}
}

func builtinByName(name string) (ir.BuiltinType, bool) {
	switch name {
	case "String":
		return ir.TypeString, true
	case "Number":
		return ir.TypeNumber, true
	case "Boolean":
		return ir.TypeBoolean, true
	case "Void":
		return ir.TypeVoid, true
	default:
		return 0, false
	}
}

// anonScopeName mints a human-readable but globally unique scope name for
// an anonymous (struct-init, function-literal) scope, so two anonymous
// scopes never collide as symbol-table keys even across typecheck reruns
// that re-lower nothing but re-walk the same tree.
func anonScopeName(kind string) string {
	return "<" + kind + ">@" + uuid.NewString()
}

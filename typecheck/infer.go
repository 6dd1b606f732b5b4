package typecheck

import (
	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/ir"
)

// inferrer is the constraint-generation walker: one pass over the module
// that assigns every expression a working type (ctx.TypeOfExpr, minting a
// fresh variable on first use) and queues equality constraints onto u for
// later draining. Grounded on the original implementation's
// type_checker/type_inferrer.rs and the teacher's own single-pass Walker
// convention.
type inferrer struct {
	ir.BaseWalker

	ctx *ir.Ctx
	reg *registry
	u   *unifier

	errs []diag.Error
}

func newInferrer(ctx *ir.Ctx, reg *registry, u *unifier) *inferrer {
	return &inferrer{ctx: ctx, reg: reg, u: u}
}

func (inf *inferrer) addErr(e diag.Error) { inf.errs = append(inf.errs, e) }

func (inf *inferrer) PostVisitStmt(ctx *ir.Ctx, id ir.StmtID) error {
	switch s := ctx.Stmt(id).(type) {
	case ir.VarDeclStmt:
		if s.TypeSig != nil {
			inf.u.constrain(s.TypeSig.Sig, ctx.TypeOfExpr(s.Value), s.Span)
		}
	case ir.StructDeclStmt:
		st := ctx.Struct(s.Struct)
		for _, attrID := range st.Attrs {
			attr := ctx.StructAttr(attrID)
			if attr.TypeSig != nil && attr.Default != nil {
				inf.u.constrain(attr.TypeSig.Sig, ctx.TypeOfExpr(*attr.Default), attr.Span)
			}
		}
	case ir.FunctionDeclStmt:
		inf.constrainReturns(ctx, s.Func)
	}
	return nil
}

// constrainReturns chains the declared return type through every Return
// statement's value type (in source order), so all return paths and the
// declaration agree; a function with no Return is pinned to Void.
func (inf *inferrer) constrainReturns(ctx *ir.Ctx, id ir.FuncID) {
	fn := ctx.Func(id)
	if !fn.Body.IsSet() {
		return
	}
	body := ctx.StmtBlock(fn.Body.Get())
	declared := fn.ReturnType.Get().Sig

	prev := declared
	found := false
	for _, stID := range body.Stmts {
		r, ok := ctx.Stmt(stID).(ir.ReturnStmt)
		if !ok || !r.HasValue {
			continue
		}
		found = true
		rt := ctx.TypeOfExpr(r.Value)
		inf.u.constrain(prev, rt, r.Span)
		prev = rt
	}
	if !found {
		inf.u.constrain(declared, ctx.BuiltinTypeSig(ir.TypeVoid), fn.Span)
	}
}

func (inf *inferrer) typeOfIdent(ctx *ir.Ctx, id ir.IdentID) ir.TypeSigID {
	ident := ctx.Ident(id)
	switch ident.Target.Kind {
	case ir.ResolvedVariable:
		decl := ctx.Stmt(ident.Target.VarDecl).(ir.VarDeclStmt)
		if decl.TypeSig != nil {
			return decl.TypeSig.Sig
		}
		return ctx.TypeOfExpr(decl.Value)
	case ir.ResolvedFunctionArg:
		fn := ctx.Func(ident.Target.Func)
		return fn.Args[ident.Target.FuncArgIdx].TypeSig.Sig
	case ir.ResolvedFunction:
		return funcTypeSig(ctx, ident.Target.Func)
	case ir.ResolvedStruct:
		inf.addErr(&diag.IdentNotExpressionError{Name: ident.Name, Sp: ident.Span})
		return structTypeSig(ctx, ident.Name)
	case ir.ResolvedEnum:
		inf.addErr(&diag.IdentNotExpressionError{Name: ident.Name, Sp: ident.Span})
		return enumTypeSig(ctx, ident.Name)
	default:
		return ctx.FreshTypeVar()
	}
}

func (inf *inferrer) PostVisitExpr(ctx *ir.Ctx, id ir.ExprID) error {
	switch e := ctx.Expr(id).(type) {
	case ir.StringLiteralExpr:
		inf.u.constrain(ctx.TypeOfExpr(id), ctx.BuiltinTypeSig(ir.TypeString), e.Span)

	case ir.NumberLiteralExpr:
		inf.u.constrain(ctx.TypeOfExpr(id), ctx.BuiltinTypeSig(ir.TypeNumber), e.Span)

	case ir.BoolLiteralExpr:
		inf.u.constrain(ctx.TypeOfExpr(id), ctx.BuiltinTypeSig(ir.TypeBoolean), e.Span)

	case ir.EscapeBlockExpr:
		if e.TypeSig != nil {
			inf.u.constrain(ctx.TypeOfExpr(id), e.TypeSig.Sig, e.Span)
		} else {
			ctx.SetExprType(id, ctx.BuiltinTypeSig(ir.TypeUntyped))
		}

	case ir.IdentifierExpr:
		inf.u.constrain(ctx.TypeOfExpr(id), inf.typeOfIdent(ctx, e.Ident), e.Span)

	case ir.FunctionExpr:
		ctx.SetExprType(id, funcTypeSig(ctx, e.Func))
		inf.constrainReturns(ctx, e.Func)

	case ir.FunctionCallExpr:
		inf.inferCall(ctx, id, e)

	case ir.StructInitExpr:
		inf.inferStructInit(ctx, id, e)

	case ir.StructAccessExpr:
		// Deferred: the object's type is only known once drain() has run.
		// apply.go resolves AttrName and this expr's own type afterwards.

	case ir.TupleExpr:
		members := make([]ir.TypeSigID, len(e.Items))
		for i, it := range e.Items {
			members[i] = ctx.TypeOfExpr(it)
		}
		ctx.SetExprType(id, ctx.GetTypeSig(ir.TypeSigValue{Kind: ir.TypeSigTuple, TupleMembers: members}))

	case ir.TupleAccessExpr:
		// Deferred, same reason as StructAccessExpr.

	case ir.EnumInitExpr:
		inf.inferEnumInit(ctx, id, e)

	case ir.AssignmentExpr:
		inf.u.constrain(ctx.TypeOfExpr(e.Target), ctx.TypeOfExpr(e.Value), e.Span)
		ctx.SetExprType(id, ctx.TypeOfExpr(e.Value))

	case ir.UnresolvedMemberAccessExpr:
		// Only the anonymous `.variant(args)` form survives resolve (a
		// named one would already be a StructAccessExpr/EnumInitExpr by
		// now). Generate no constraint for it — its type is whatever the
		// surrounding context ends up constraining ctx.TypeOfExpr(id) to;
		// the applier rewrites it into EnumInitExpr once that's settled.
	}
	return nil
}

func (inf *inferrer) inferCall(ctx *ir.Ctx, id ir.ExprID, e ir.FunctionCallExpr) {
	if callee, ok := ctx.Expr(e.Callee).(ir.IdentifierExpr); ok {
		ident := ctx.Ident(callee.Ident)
		if ident.Target.Kind == ir.ResolvedFunction {
			fn := ctx.Func(ident.Target.Func)
			if len(fn.Args) != len(e.Args) {
				inf.addErr(&diag.FunctionError{
					Reason: "`" + ident.Name + "` expects a different number of arguments",
					Sp:     e.Span,
				})
			}
			for i := 0; i < len(fn.Args) && i < len(e.Args); i++ {
				inf.u.constrain(fn.Args[i].TypeSig.Sig, ctx.TypeOfExpr(e.Args[i]), e.Span)
			}
			inf.u.constrain(ctx.TypeOfExpr(id), fn.ReturnType.Get().Sig, e.Span)
			return
		}
	}

	argTypes := make([]ir.TypeSigID, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = ctx.TypeOfExpr(a)
	}
	retVar := ctx.FreshTypeVar()
	expected := ctx.GetTypeSig(ir.TypeSigValue{Kind: ir.TypeSigFunction, FuncArgs: argTypes, FuncReturn: retVar})
	inf.u.constrain(ctx.TypeOfExpr(e.Callee), expected, e.Span)
	inf.u.constrain(ctx.TypeOfExpr(id), retVar, e.Span)
}

func (inf *inferrer) inferStructInit(ctx *ir.Ctx, id ir.ExprID, e ir.StructInitExpr) {
	structIdent := ctx.Ident(e.StructName)
	for _, vID := range e.Values {
		v := ctx.StructInitValue(vID)
		attrIdent := ctx.Ident(v.AttrName)
		if attrIdent.Target.Kind != ir.ResolvedStructAttr {
			continue // already reported by resolve
		}
		attr := ctx.StructAttr(attrIdent.Target.StructAttr)
		if t, ok := attrEffectiveType(ctx, attr); ok {
			inf.u.constrain(t, ctx.TypeOfExpr(v.Value), v.Span)
		}
	}
	ctx.SetExprType(id, structTypeSig(ctx, structIdent.Name))
}

func (inf *inferrer) inferEnumInit(ctx *ir.Ctx, id ir.ExprID, e ir.EnumInitExpr) {
	enumIdent := ctx.Ident(e.EnumName)
	valueIdent := ctx.Ident(e.ValueName)
	if valueIdent.Target.Kind == ir.ResolvedEnumValue {
		val := ctx.EnumValue(valueIdent.Target.EnumValue)
		if len(val.Items) != len(e.Args) {
			inf.addErr(&diag.EnumInitArgCountMismatchError{Expected: len(val.Items), Actual: len(e.Args), Sp: e.Span})
		}
		for i := 0; i < len(val.Items) && i < len(e.Args); i++ {
			inf.u.constrain(val.Items[i].Sig, ctx.TypeOfExpr(e.Args[i]), e.Span)
		}
	}
	ctx.SetExprType(id, enumTypeSig(ctx, enumIdent.Name))
}

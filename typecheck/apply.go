package typecheck

import (
	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/ir"
)

// applier is the post-unification type resolver (spec §4.8): it reads the
// unifier's substitution read-only, finalises every expression's working
// type to its representative, and resolves the struct/tuple access and
// anonymous enum-init nodes Infer had to defer because they needed a
// concrete type. Finding a
// type variable still unresolved here means a rerun might do better once
// later statements have contributed more constraints; NeedsRerun signals
// that to the driver.
type applier struct {
	ir.BaseWalker

	ctx *ir.Ctx
	reg *registry
	u   *unifier

	NeedsRerun     bool
	Undeterminable []diag.Error
	Errs           []diag.Error
}

func newApplier(ctx *ir.Ctx, reg *registry, u *unifier) *applier {
	return &applier{ctx: ctx, reg: reg, u: u}
}

func (a *applier) VisitTypeSig(ctx *ir.Ctx, ref *ir.TypeRef) error {
	ref.Sig = a.u.find(ref.Sig)
	return nil
}

func (a *applier) PostVisitExpr(ctx *ir.Ctx, id ir.ExprID) error {
	if t, ok := ctx.ExprTypes[id]; ok {
		ctx.SetExprType(id, a.u.find(t))
	}

	switch e := ctx.Expr(id).(type) {
	case ir.StructAccessExpr:
		a.resolveStructAccess(ctx, id, e)
	case ir.TupleAccessExpr:
		a.resolveTupleAccess(ctx, id, e)
	case ir.UnresolvedMemberAccessExpr:
		a.resolveAnonymousEnumInit(ctx, id, e)
	case ir.FunctionCallExpr:
		// A call wrapping a bare (zero-arg) EnumInitExpr the branch above
		// just produced absorbs the call's own args into it — mirrors
		// resolve.go's identical absorption for the named `Name.variant`
		// form, which never reaches here because resolve already folded
		// it before typecheck started.
		if enumInit, ok := ctx.Expr(e.Callee).(ir.EnumInitExpr); ok && len(enumInit.Args) == 0 {
			ctx.SetExpr(id, ir.EnumInitExpr{
				EnumName: enumInit.EnumName, ValueName: enumInit.ValueName,
				Args: e.Args, Span: e.Span,
			})
			if t, ok := ctx.ExprTypes[e.Callee]; ok {
				ctx.SetExprType(id, t)
			}
		}
	}
	return nil
}

// resolveAnonymousEnumInit implements spec §4.8's deferred rewrite: the
// anonymous `.variant(args)` form carries no object, so which enum it
// names is only knowable from its own inferred type (the expected type
// its surrounding context constrained it to), not a symbol lookup.
// Grounded on the original implementation's type_resolver.rs visit_expr
// (the Enum/TypeVariable/other split) plus check_enum.rs's arg-count
// check, which the original never wired up anywhere — this is where that
// logic belongs now that the anonymous form actually exists.
func (a *applier) resolveAnonymousEnumInit(ctx *ir.Ctx, id ir.ExprID, e ir.UnresolvedMemberAccessExpr) {
	objType := a.u.find(ctx.TypeOfExpr(id))
	objSig := ctx.TypeSig(objType)
	memberIdent := ctx.Ident(e.Member)

	switch objSig.Kind {
	case ir.TypeSigVariable:
		a.Undeterminable = append(a.Undeterminable, &diag.UndeterminableTypesError{Expected: "enum", Sp: e.Span})
		a.NeedsRerun = true

	case ir.TypeSigEnum:
		enumID, ok := a.reg.enums[objSig.Name]
		if !ok {
			a.Errs = append(a.Errs, &diag.AnonymousEnumInitNonEnumError{TypeName: objSig.Name, Sp: e.Span})
			return
		}
		en := ctx.Enum(enumID)
		for _, valID := range en.Values {
			val := ctx.EnumValue(valID)
			if ctx.Ident(val.Name).Name != memberIdent.Name {
				continue
			}
			if len(val.Items) != len(e.Args) {
				a.Errs = append(a.Errs, &diag.EnumInitArgCountMismatchError{
					Expected: len(val.Items), Actual: len(e.Args), Sp: e.Span,
				})
			}

			enumName := ctx.MakeResolvedIdent(objSig.Name, e.Span, ir.ResolvedTarget{Kind: ir.ResolvedEnum, Enum: enumID})
			valueName := ctx.MakeResolvedIdent(memberIdent.Name, memberIdent.Span, ir.ResolvedTarget{
				Kind: ir.ResolvedEnumValue, Enum: enumID, EnumValue: valID,
			})
			ctx.SetExpr(id, ir.EnumInitExpr{EnumName: enumName, ValueName: valueName, Args: e.Args, Span: e.Span})
			ctx.SetExprType(id, objType)
			return
		}
		a.Errs = append(a.Errs, &diag.UnknownEnumValueError{
			EnumName: objSig.Name, ValueName: memberIdent.Name, Sp: memberIdent.Span,
		})

	default:
		a.Errs = append(a.Errs, &diag.AnonymousEnumInitNonEnumError{TypeName: describeTypeSig(ctx, objType), Sp: e.Span})
	}
}

func (a *applier) resolveStructAccess(ctx *ir.Ctx, id ir.ExprID, e ir.StructAccessExpr) {
	objType := a.u.find(ctx.TypeOfExpr(e.Object))
	objSig := ctx.TypeSig(objType)
	attrIdent := ctx.Ident(e.AttrName)

	switch objSig.Kind {
	case ir.TypeSigVariable:
		a.Undeterminable = append(a.Undeterminable, &diag.UndeterminableTypesError{Expected: "struct", Sp: e.Span})
		a.NeedsRerun = true

	case ir.TypeSigStruct:
		structID, ok := a.reg.structs[objSig.Name]
		if !ok {
			a.Errs = append(a.Errs, &diag.StructError{Reason: "`" + objSig.Name + "` is not a struct", Sp: e.Span})
			return
		}
		st := ctx.Struct(structID)
		for _, attrID := range st.Attrs {
			attr := ctx.StructAttr(attrID)
			if ctx.Ident(attr.Name).Name != attrIdent.Name {
				continue
			}
			v := ctx.Ident(e.AttrName)
			v.Kind = ir.IdentResolvedNamed
			v.Target = ir.ResolvedTarget{Kind: ir.ResolvedStructAttr, Struct: structID, StructAttr: attrID}
			ctx.SetIdent(e.AttrName, v)

			if t, ok := attrEffectiveType(ctx, attr); ok {
				ctx.SetExprType(id, a.u.find(t))
			}
			return
		}
		a.Errs = append(a.Errs, &diag.StructError{
			Reason: "struct `" + objSig.Name + "` has no attribute `" + attrIdent.Name + "`",
			Sp:     attrIdent.Span,
		})

	default:
		a.Errs = append(a.Errs, &diag.StructError{
			Reason: "`" + describeTypeSig(ctx, objType) + "` is not a struct",
			Sp:     e.Span,
		})
	}
}

func (a *applier) resolveTupleAccess(ctx *ir.Ctx, id ir.ExprID, e ir.TupleAccessExpr) {
	objType := a.u.find(ctx.TypeOfExpr(e.Object))
	objSig := ctx.TypeSig(objType)

	switch objSig.Kind {
	case ir.TypeSigVariable:
		a.Undeterminable = append(a.Undeterminable, &diag.UndeterminableTypesError{Sp: e.Span})
		a.NeedsRerun = true

	case ir.TypeSigTuple:
		if e.Index < 0 || e.Index >= len(objSig.TupleMembers) {
			a.Errs = append(a.Errs, &diag.TupleAccessOutOfBoundsError{Index: e.Index, Len: len(objSig.TupleMembers), Sp: e.Span})
			return
		}
		ctx.SetExprType(id, a.u.find(objSig.TupleMembers[e.Index]))

	default:
		a.Errs = append(a.Errs, &diag.TupleAccessOutOfBoundsError{Index: e.Index, Len: 0, Sp: e.Span})
	}
}

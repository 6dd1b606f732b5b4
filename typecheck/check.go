package typecheck

import (
	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/ir"
)

// checker is the end-of-pipeline walker (spec §4.9): the structural rules
// that are not themselves type-equality constraints, so they only make
// sense once inference has fully settled (the driver only runs this on the
// final, no-rerun-needed iteration).
type checker struct {
	ir.BaseWalker

	ctx *ir.Ctx
	u   *unifier

	Errs []diag.Error
}

func newChecker(ctx *ir.Ctx, u *unifier) *checker {
	return &checker{ctx: ctx, u: u}
}

// PostVisitStmt catches an Untyped that was never pinned to a concrete
// type by anything else in the program: a bare `let a = @{ ... }` with no
// annotation, or a function whose only return is an unannotated escape
// block. Grounded on the original implementation's types_helpers.rs
// type_check(), whose final `type_sig == Untyped` check is the same
// end-of-pipeline rejection.
func (c *checker) PostVisitStmt(ctx *ir.Ctx, id ir.StmtID) error {
	switch s := ctx.Stmt(id).(type) {
	case ir.VarDeclStmt:
		var finalType ir.TypeSigID
		if s.TypeSig != nil {
			finalType = c.u.find(s.TypeSig.Sig)
		} else {
			finalType = c.u.find(ctx.TypeOfExpr(s.Value))
		}
		if isUntyped(ctx.TypeSig(finalType)) {
			c.Errs = append(c.Errs, &diag.UndeterminableTypesError{Sp: s.Span})
		}

	case ir.FunctionDeclStmt:
		fn := ctx.Func(s.Func)
		retType := c.u.find(fn.ReturnType.Get().Sig)
		if isUntyped(ctx.TypeSig(retType)) {
			c.Errs = append(c.Errs, &diag.UndeterminableTypesError{Sp: s.Span})
		}
	}
	return nil
}

func (c *checker) PostVisitExpr(ctx *ir.Ctx, id ir.ExprID) error {
	switch e := ctx.Expr(id).(type) {
	case ir.AssignmentExpr:
		if !c.isLValue(ctx, e.Target) {
			c.Errs = append(c.Errs, &diag.AssignmentError{
				Reason: "left-hand side of an assignment must be a mutable variable or a struct attribute",
				Sp:     e.Span,
			})
		}
	case ir.StructInitExpr:
		c.checkStructInitCompleteness(ctx, e)
	case ir.FunctionCallExpr:
		calleeType := c.u.find(ctx.TypeOfExpr(e.Callee))
		if ctx.TypeSig(calleeType).Kind != ir.TypeSigFunction {
			c.Errs = append(c.Errs, &diag.CallNonFunctionError{TypeName: describeTypeSig(ctx, calleeType), Sp: e.Span})
		}
	}
	return nil
}

// isLValue mirrors spec §4.9: an Identifier naming a mutable VarDecl, or a
// struct-attribute access (struct attributes carry no separate mutability
// flag in this grammar, so any attribute is assignable — JS object-field
// semantics).
func (c *checker) isLValue(ctx *ir.Ctx, exprID ir.ExprID) bool {
	switch e := ctx.Expr(exprID).(type) {
	case ir.IdentifierExpr:
		ident := ctx.Ident(e.Ident)
		if ident.Target.Kind != ir.ResolvedVariable {
			return false
		}
		decl, ok := ctx.Stmt(ident.Target.VarDecl).(ir.VarDeclStmt)
		return ok && decl.Mutable
	case ir.StructAccessExpr:
		return true
	default:
		return false
	}
}

// checkStructInitCompleteness requires every attribute with no default to
// be supplied explicitly. Unknown attribute names are already rejected by
// resolve, so this only ever finds missing ones.
func (c *checker) checkStructInitCompleteness(ctx *ir.Ctx, e ir.StructInitExpr) {
	structIdent := ctx.Ident(e.StructName)
	if structIdent.Target.Kind != ir.ResolvedStruct {
		return
	}
	st := ctx.Struct(structIdent.Target.Struct)

	provided := make(map[string]bool, len(e.Values))
	for _, vID := range e.Values {
		v := ctx.StructInitValue(vID)
		provided[ctx.Ident(v.AttrName).Name] = true
	}

	for _, attrID := range st.Attrs {
		attr := ctx.StructAttr(attrID)
		name := ctx.Ident(attr.Name).Name
		if !provided[name] && attr.Default == nil {
			c.Errs = append(c.Errs, &diag.StructError{
				Reason: "struct `" + structIdent.Name + "` is missing required attribute `" + name + "`",
				Sp:     e.Span,
			})
		}
	}
}

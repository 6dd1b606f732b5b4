package ir

// ScopeKind says which kind of declaration introduced the scope a
// VisitScopeBegin/VisitScopeEnd pair brackets.
type ScopeKind int

const (
	ScopeFunc ScopeKind = iota
	ScopeStruct
	ScopeStructInit
	ScopeEnum
)

// ScopeValue identifies the node that owns a scope, so passes can look its
// name up in the symbol table to enter/exit the matching child table.
type ScopeValue struct {
	Kind           ScopeKind
	Func           FuncID
	Struct         StructID
	StructInitExpr ExprID
	Enum           EnumID
	Name           string
}

// Walker is implemented by every IR pass. Embed BaseWalker to inherit
// no-op defaults and override only the hooks a given pass cares about,
// mirroring the teacher's Visitor interface but addressed by arena id
// instead of by pointer.
type Walker interface {
	VisitBegin(ctx *Ctx) error
	VisitEnd(ctx *Ctx) error

	VisitScopeBegin(ctx *Ctx, scope ScopeValue) error
	VisitScopeEnd(ctx *Ctx, scope ScopeValue) error

	// VisitOrderedSymbol fires once per order-dependent (variable) binding
	// as it comes into scope, in source order, so zipper-style symbol
	// tables can track "visible so far" precisely.
	VisitOrderedSymbol(ctx *Ctx, name string) error

	VisitStmt(ctx *Ctx, id StmtID) error
	PostVisitStmt(ctx *Ctx, id StmtID) error

	VisitExpr(ctx *Ctx, id ExprID) error
	PostVisitExpr(ctx *Ctx, id ExprID) error

	VisitIdent(ctx *Ctx, id IdentID) error
	VisitTypeSig(ctx *Ctx, ref *TypeRef) error
}

// BaseWalker gives every hook a no-op body. Passes embed it and override
// only what they need.
type BaseWalker struct{}

func (BaseWalker) VisitBegin(ctx *Ctx) error                        { return nil }
func (BaseWalker) VisitEnd(ctx *Ctx) error                          { return nil }
func (BaseWalker) VisitScopeBegin(ctx *Ctx, scope ScopeValue) error { return nil }
func (BaseWalker) VisitScopeEnd(ctx *Ctx, scope ScopeValue) error   { return nil }
func (BaseWalker) VisitOrderedSymbol(ctx *Ctx, name string) error   { return nil }
func (BaseWalker) VisitStmt(ctx *Ctx, id StmtID) error              { return nil }
func (BaseWalker) PostVisitStmt(ctx *Ctx, id StmtID) error          { return nil }
func (BaseWalker) VisitExpr(ctx *Ctx, id ExprID) error              { return nil }
func (BaseWalker) PostVisitExpr(ctx *Ctx, id ExprID) error          { return nil }
func (BaseWalker) VisitIdent(ctx *Ctx, id IdentID) error            { return nil }
func (BaseWalker) VisitTypeSig(ctx *Ctx, ref *TypeRef) error        { return nil }

// Walk drives one deterministic pre/post-order traversal of module over w.
// Hooks that rewrite a node in place (resolve's UnresolvedMemberAccess
// reshaping, typecheck's substitution application) do so via ctx.SetExpr /
// VisitTypeSig's pointer receiver before Walk re-reads the node to decide
// how to recurse, so a rewrite always takes effect for its own children.
func Walk(ctx *Ctx, mod *Module, w Walker) error {
	if err := w.VisitBegin(ctx); err != nil {
		return err
	}
	for _, s := range mod.Stmts {
		if err := walkStmt(ctx, w, s); err != nil {
			return err
		}
	}
	return w.VisitEnd(ctx)
}

func walkBlock(ctx *Ctx, w Walker, id StmtBlockID) error {
	block := ctx.StmtBlock(id)
	for _, s := range block.Stmts {
		if err := walkStmt(ctx, w, s); err != nil {
			return err
		}
	}
	return nil
}

func walkFunc(ctx *Ctx, w Walker, id FuncID, scopeName string) error {
	fn := ctx.Func(id)
	scope := ScopeValue{Kind: ScopeFunc, Func: id, Name: scopeName}
	if err := w.VisitScopeBegin(ctx, scope); err != nil {
		return err
	}
	for i := range fn.Args {
		if err := w.VisitIdent(ctx, fn.Args[i].Name); err != nil {
			return err
		}
		if err := w.VisitTypeSig(ctx, &fn.Args[i].TypeSig); err != nil {
			return err
		}
		if err := w.VisitOrderedSymbol(ctx, ctx.Ident(fn.Args[i].Name).Name); err != nil {
			return err
		}
	}
	ctx.SetFunc(id, fn)
	if fn.ReturnType.IsSet() {
		rt := fn.ReturnType.Get()
		if err := w.VisitTypeSig(ctx, &rt); err != nil {
			return err
		}
		fn.ReturnType.Set(rt)
		ctx.SetFunc(id, fn)
	}
	if fn.Body.IsSet() {
		if err := walkBlock(ctx, w, fn.Body.Get()); err != nil {
			return err
		}
	}
	return w.VisitScopeEnd(ctx, scope)
}

func walkStmt(ctx *Ctx, w Walker, id StmtID) error {
	if err := w.VisitStmt(ctx, id); err != nil {
		return err
	}
	switch s := ctx.Stmt(id).(type) {
	case VarDeclStmt:
		if err := w.VisitIdent(ctx, s.Name); err != nil {
			return err
		}
		if s.TypeSig != nil {
			if err := w.VisitTypeSig(ctx, s.TypeSig); err != nil {
				return err
			}
		}
		if err := walkExpr(ctx, w, s.Value); err != nil {
			return err
		}
		if err := w.VisitOrderedSymbol(ctx, ctx.Ident(s.Name).Name); err != nil {
			return err
		}
	case FunctionDeclStmt:
		if err := w.VisitIdent(ctx, s.Name); err != nil {
			return err
		}
		if err := walkFunc(ctx, w, s.Func, ctx.Ident(s.Name).Name); err != nil {
			return err
		}
	case StructDeclStmt:
		if err := w.VisitIdent(ctx, s.Name); err != nil {
			return err
		}
		st := ctx.Struct(s.Struct)
		scope := ScopeValue{Kind: ScopeStruct, Struct: s.Struct, Name: ctx.Ident(st.Name).Name}
		if err := w.VisitScopeBegin(ctx, scope); err != nil {
			return err
		}
		for _, attrID := range st.Attrs {
			attr := ctx.StructAttr(attrID)
			if err := w.VisitIdent(ctx, attr.Name); err != nil {
				return err
			}
			if attr.TypeSig != nil {
				if err := w.VisitTypeSig(ctx, attr.TypeSig); err != nil {
					return err
				}
			}
			if attr.Default != nil {
				if err := walkExpr(ctx, w, *attr.Default); err != nil {
					return err
				}
			}
			if err := w.VisitOrderedSymbol(ctx, ctx.Ident(attr.Name).Name); err != nil {
				return err
			}
		}
		if err := w.VisitScopeEnd(ctx, scope); err != nil {
			return err
		}
	case EnumDeclStmt:
		if err := w.VisitIdent(ctx, s.Name); err != nil {
			return err
		}
		en := ctx.Enum(s.Enum)
		scope := ScopeValue{Kind: ScopeEnum, Enum: s.Enum, Name: ctx.Ident(en.Name).Name}
		if err := w.VisitScopeBegin(ctx, scope); err != nil {
			return err
		}
		for _, valID := range en.Values {
			val := ctx.EnumValue(valID)
			if err := w.VisitIdent(ctx, val.Name); err != nil {
				return err
			}
			for i := range val.Items {
				if err := w.VisitTypeSig(ctx, &val.Items[i]); err != nil {
					return err
				}
			}
			if err := w.VisitOrderedSymbol(ctx, ctx.Ident(val.Name).Name); err != nil {
				return err
			}
		}
		if err := w.VisitScopeEnd(ctx, scope); err != nil {
			return err
		}
	case ExpressionStmt:
		if err := walkExpr(ctx, w, s.Value); err != nil {
			return err
		}
	case ReturnStmt:
		if s.HasValue {
			if err := walkExpr(ctx, w, s.Value); err != nil {
				return err
			}
		}
	default:
		panic("INTERNAL ERROR: walkStmt: unhandled stmt variant")
	}
	return w.PostVisitStmt(ctx, id)
}

func walkExpr(ctx *Ctx, w Walker, id ExprID) error {
	if err := w.VisitExpr(ctx, id); err != nil {
		return err
	}
	switch e := ctx.Expr(id).(type) {
	case StringLiteralExpr, NumberLiteralExpr, BoolLiteralExpr:
		// leaves
	case EscapeBlockExpr:
		if e.TypeSig != nil {
			if err := w.VisitTypeSig(ctx, e.TypeSig); err != nil {
				return err
			}
		}
	case IdentifierExpr:
		if err := w.VisitIdent(ctx, e.Ident); err != nil {
			return err
		}
	case FunctionExpr:
		if err := walkFunc(ctx, w, e.Func, ctx.Ident(e.ScopeName).Name); err != nil {
			return err
		}
	case FunctionCallExpr:
		if err := walkExpr(ctx, w, e.Callee); err != nil {
			return err
		}
		for _, a := range e.Args {
			if err := walkExpr(ctx, w, a); err != nil {
				return err
			}
		}
	case StructInitExpr:
		if err := w.VisitIdent(ctx, e.StructName); err != nil {
			return err
		}
		scope := ScopeValue{Kind: ScopeStructInit, StructInitExpr: id, Name: ctx.Ident(e.ScopeName).Name}
		if err := w.VisitScopeBegin(ctx, scope); err != nil {
			return err
		}
		for _, vID := range e.Values {
			v := ctx.StructInitValue(vID)
			if err := w.VisitIdent(ctx, v.AttrName); err != nil {
				return err
			}
			if err := walkExpr(ctx, w, v.Value); err != nil {
				return err
			}
		}
		if err := w.VisitScopeEnd(ctx, scope); err != nil {
			return err
		}
	case StructAccessExpr:
		if err := walkExpr(ctx, w, e.Object); err != nil {
			return err
		}
		if err := w.VisitIdent(ctx, e.AttrName); err != nil {
			return err
		}
	case TupleExpr:
		for _, item := range e.Items {
			if err := walkExpr(ctx, w, item); err != nil {
				return err
			}
		}
	case TupleAccessExpr:
		if err := walkExpr(ctx, w, e.Object); err != nil {
			return err
		}
	case EnumInitExpr:
		if err := w.VisitIdent(ctx, e.EnumName); err != nil {
			return err
		}
		if err := w.VisitIdent(ctx, e.ValueName); err != nil {
			return err
		}
		for _, a := range e.Args {
			if err := walkExpr(ctx, w, a); err != nil {
				return err
			}
		}
	case UnresolvedMemberAccessExpr:
		if e.HasObject {
			if err := walkExpr(ctx, w, e.Object); err != nil {
				return err
			}
		}
		if err := w.VisitIdent(ctx, e.Member); err != nil {
			return err
		}
		for _, a := range e.Args {
			if err := walkExpr(ctx, w, a); err != nil {
				return err
			}
		}
	case AssignmentExpr:
		if err := walkExpr(ctx, w, e.Target); err != nil {
			return err
		}
		if err := walkExpr(ctx, w, e.Value); err != nil {
			return err
		}
	default:
		panic("INTERNAL ERROR: walkExpr: unhandled expr variant")
	}
	return w.PostVisitExpr(ctx, id)
}

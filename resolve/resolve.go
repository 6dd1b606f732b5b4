// Package resolve is the symbol resolver: it walks a lowered ir.Module
// once against the symbols.Table tree symbols.Collect built, rewriting
// every Unresolved ir.IdentID into a Resolved one and reshaping the
// ambiguous ir.UnresolvedMemberAccessExpr shape lowering produces into a
// concrete ir.StructAccessExpr or ir.EnumInitExpr wherever the object side
// is already known well enough to disambiguate without type information.
// Grounded on the teacher's ast.ResolveNode pass and the original
// implementation's type_checker/type_resolver.rs.
package resolve

import (
	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/internal/kujslog"
	"github.com/ku-lang/kujs/ir"
	"github.com/ku-lang/kujs/symbols"
)

var log = kujslog.New("resolve")

// Resolve rewrites every identifier and ambiguous member-access node in
// mod, returning every diagnostic it found. An empty slice means every
// name bound.
func Resolve(ctx *ir.Ctx, mod *ir.Module, root *symbols.Table) []diag.Error {
	r := &resolver{
		zipper: symbols.NewZipper(root),
		tables: flattenTables(root),
	}
	log.Timed("resolve", func() {
		if err := ir.Walk(ctx, mod, r); err != nil {
			panic("INTERNAL ERROR: resolve must report errors via its own slice, not Walk's error: " + err.Error())
		}
	})
	return r.errs
}

type varDeclFrame struct {
	name string
}

type resolver struct {
	ir.BaseWalker

	zipper *symbols.Zipper
	tables map[string]*symbols.Table

	varDeclStack []varDeclFrame
	errs         []diag.Error
}

func (r *resolver) addErr(e diag.Error) { r.errs = append(r.errs, e) }

// target converts a symbol-table entry into its ir-native ResolvedTarget.
func target(sym symbols.SymbolValue) ir.ResolvedTarget {
	switch sym.Kind {
	case symbols.SymbolVariable:
		return ir.ResolvedTarget{Kind: ir.ResolvedVariable, VarDecl: sym.VarDecl}
	case symbols.SymbolFunction:
		return ir.ResolvedTarget{Kind: ir.ResolvedFunction, Func: sym.Func}
	case symbols.SymbolFunctionArg:
		return ir.ResolvedTarget{Kind: ir.ResolvedFunctionArg, Func: sym.Func, FuncArgIdx: sym.FuncArgIdx}
	case symbols.SymbolStruct:
		return ir.ResolvedTarget{Kind: ir.ResolvedStruct, Struct: sym.Struct}
	case symbols.SymbolStructAttr:
		return ir.ResolvedTarget{Kind: ir.ResolvedStructAttr, Struct: sym.Struct, StructAttr: sym.StructAttr}
	case symbols.SymbolEnum:
		return ir.ResolvedTarget{Kind: ir.ResolvedEnum, Enum: sym.Enum}
	case symbols.SymbolEnumValue:
		return ir.ResolvedTarget{Kind: ir.ResolvedEnumValue, Enum: sym.Enum, EnumValue: sym.EnumValue}
	default:
		return ir.ResolvedTarget{}
	}
}

func markResolved(ctx *ir.Ctx, id ir.IdentID, sym symbols.SymbolValue) {
	v := ctx.Ident(id)
	v.Kind = ir.IdentResolvedNamed
	v.Target = target(sym)
	ctx.SetIdent(id, v)
}

// resolveSelf marks ident as the declaration occurrence of a symbol
// already inserted into the current scope table under name.
func (r *resolver) resolveSelf(ctx *ir.Ctx, ident ir.IdentID, name string) {
	sym, ok := r.zipper.LookupCurrentScope(name)
	if !ok {
		// The collector must have inserted this symbol; if it didn't, a
		// duplicate-declaration error already swallowed it. Leave the
		// ident unresolved rather than panic — a later stage will not
		// reach it because the owning statement/scope is already broken.
		return
	}
	markResolved(ctx, ident, sym)
}

func (r *resolver) VisitStmt(ctx *ir.Ctx, id ir.StmtID) error {
	switch s := ctx.Stmt(id).(type) {
	case ir.VarDeclStmt:
		name := ctx.Ident(s.Name).Name
		r.resolveSelf(ctx, s.Name, name)
		r.varDeclStack = append(r.varDeclStack, varDeclFrame{name: name})
	case ir.FunctionDeclStmt:
		r.resolveSelf(ctx, s.Name, ctx.Ident(s.Name).Name)
	case ir.StructDeclStmt:
		r.resolveSelf(ctx, s.Name, ctx.Ident(s.Name).Name)
	case ir.EnumDeclStmt:
		r.resolveSelf(ctx, s.Name, ctx.Ident(s.Name).Name)
	}
	return nil
}

func (r *resolver) PostVisitStmt(ctx *ir.Ctx, id ir.StmtID) error {
	if _, ok := ctx.Stmt(id).(ir.VarDeclStmt); ok {
		r.varDeclStack = r.varDeclStack[:len(r.varDeclStack)-1]
	}
	return nil
}

func (r *resolver) VisitScopeBegin(ctx *ir.Ctx, scope ir.ScopeValue) error {
	r.zipper.EnterScope(scope.Name)

	switch scope.Kind {
	case ir.ScopeFunc:
		fn := ctx.Func(scope.Func)
		for _, arg := range fn.Args {
			r.resolveSelf(ctx, arg.Name, ctx.Ident(arg.Name).Name)
		}
	case ir.ScopeStruct:
		st := ctx.Struct(scope.Struct)
		for _, attrID := range st.Attrs {
			attr := ctx.StructAttr(attrID)
			r.resolveSelf(ctx, attr.Name, ctx.Ident(attr.Name).Name)
		}
	case ir.ScopeEnum:
		en := ctx.Enum(scope.Enum)
		for _, valID := range en.Values {
			val := ctx.EnumValue(valID)
			r.resolveSelf(ctx, val.Name, ctx.Ident(val.Name).Name)
		}
	}
	return nil
}

func (r *resolver) VisitScopeEnd(ctx *ir.Ctx, scope ir.ScopeValue) error {
	r.zipper.ExitScope()
	return nil
}

func (r *resolver) VisitOrderedSymbol(ctx *ir.Ctx, name string) error {
	r.zipper.VisitNextSymbol()
	return nil
}

func (r *resolver) VisitIdent(ctx *ir.Ctx, id ir.IdentID) error {
	v := ctx.Ident(id)
	if v.Kind != ir.IdentUnresolved {
		return nil
	}
	if v.Parent.Kind != ir.IdentParentDefault {
		// struct-init attr names, member-access names, enum-value
		// declaration names and type-sig names are resolved elsewhere
		// (below, or deferred to typecheck once an object type is known).
		return nil
	}

	sym, ok := r.zipper.Lookup(v.Name)
	if !ok {
		for _, f := range r.varDeclStack {
			if f.name == v.Name {
				r.addErr(&diag.RecursiveLetError{Name: v.Name, Sp: v.Span})
				return nil
			}
		}
		r.addErr(&diag.UnknownIdentError{
			Name: v.Name, Sp: v.Span,
			Suggestions: diag.Suggest(r.zipper.CandidatePool(), v.Name),
		})
		return nil
	}

	markResolved(ctx, id, sym)
	return nil
}

func (r *resolver) VisitTypeSig(ctx *ir.Ctx, ref *ir.TypeRef) error {
	sig := ctx.TypeSig(ref.Sig)
	if sig.Kind != ir.TypeSigUnresolved {
		return nil
	}

	identID := sig.UnresolvedIdent
	ident := ctx.Ident(identID)

	sym, ok := r.zipper.Lookup(ident.Name)
	if !ok {
		r.addErr(&diag.UnknownIdentError{
			Name: ident.Name, Sp: ident.Span,
			Suggestions: diag.Suggest(r.zipper.CandidatePool(), ident.Name),
		})
		return nil
	}

	var resolved ir.TypeSigValue
	switch sym.Kind {
	case symbols.SymbolStruct:
		resolved = ir.TypeSigValue{Kind: ir.TypeSigStruct, Name: ident.Name}
	case symbols.SymbolEnum:
		resolved = ir.TypeSigValue{Kind: ir.TypeSigEnum, Name: ident.Name}
	default:
		r.addErr(&diag.NotATypeError{Name: ident.Name, Sp: ident.Span})
		return nil
	}

	ref.Sig = ctx.GetTypeSig(resolved)
	markResolved(ctx, identID, sym)
	return nil
}

// PostVisitExpr reshapes ambiguous nodes once their children are fully
// resolved: UnresolvedMemberAccessExpr becomes StructAccessExpr by
// default, or EnumInitExpr when the object is a bare identifier naming an
// enum; a FunctionCallExpr whose callee just became a bare (zero-arg)
// EnumInitExpr absorbs the call's arguments into it.
func (r *resolver) PostVisitExpr(ctx *ir.Ctx, id ir.ExprID) error {
	switch e := ctx.Expr(id).(type) {
	case ir.UnresolvedMemberAccessExpr:
		r.resolveMemberAccess(ctx, id, e)

	case ir.StructInitExpr:
		r.resolveStructInitAttrs(ctx, e)

	case ir.FunctionCallExpr:
		if enumInit, ok := ctx.Expr(e.Callee).(ir.EnumInitExpr); ok && len(enumInit.Args) == 0 {
			ctx.SetExpr(id, ir.EnumInitExpr{
				EnumName: enumInit.EnumName, ValueName: enumInit.ValueName,
				Args: e.Args, Span: e.Span,
			})
		}
	}
	return nil
}

func (r *resolver) resolveMemberAccess(ctx *ir.Ctx, id ir.ExprID, e ir.UnresolvedMemberAccessExpr) {
	if !e.HasObject {
		// Anonymous `.variant(args)`: no object to disambiguate against a
		// symbol table. Left untouched for typecheck's applier, which
		// resolves it from the expression's inferred type instead.
		return
	}

	if objIdentExpr, ok := ctx.Expr(e.Object).(ir.IdentifierExpr); ok {
		objIdent := ctx.Ident(objIdentExpr.Ident)
		if objIdent.Target.Kind == ir.ResolvedEnum {
			r.resolveEnumInit(ctx, id, e, objIdentExpr.Ident)
			return
		}
	}

	member := ctx.Ident(e.Member)
	member.Parent = ir.IdentParent{Kind: ir.IdentParentStructAccessAttrName, HasExpr: true, OwnerExpr: id}
	ctx.SetIdent(e.Member, member)

	ctx.SetExpr(id, ir.StructAccessExpr{Object: e.Object, AttrName: e.Member, Span: e.Span})
}

func (r *resolver) resolveEnumInit(ctx *ir.Ctx, id ir.ExprID, e ir.UnresolvedMemberAccessExpr, objIdent ir.IdentID) {
	enumName := ctx.Ident(objIdent).Name
	memberIdent := ctx.Ident(e.Member)
	valueTable := r.tables[enumName]

	if valueTable == nil {
		r.addErr(&diag.UnknownEnumValueError{EnumName: enumName, ValueName: memberIdent.Name, Sp: memberIdent.Span})
	} else if valSym, ok := valueTable.Get(memberIdent.Name); !ok {
		r.addErr(&diag.UnknownEnumValueError{
			EnumName: enumName, ValueName: memberIdent.Name, Sp: memberIdent.Span,
			Suggestions: diag.Suggest(valueTable.Names(), memberIdent.Name),
		})
	} else {
		markResolved(ctx, e.Member, valSym)
	}

	ctx.SetExpr(id, ir.EnumInitExpr{EnumName: objIdent, ValueName: e.Member, Span: e.Span})
}

func (r *resolver) resolveStructInitAttrs(ctx *ir.Ctx, e ir.StructInitExpr) {
	structIdent := ctx.Ident(e.StructName)
	if !structIdent.HasTarget() {
		return // the struct name itself failed to resolve; already reported
	}
	if structIdent.Target.Kind != ir.ResolvedStruct {
		r.addErr(&diag.StructError{Reason: "`" + structIdent.Name + "` is not a struct", Sp: structIdent.Span})
		return
	}

	attrTable := r.tables[structIdent.Name]
	for _, vID := range e.Values {
		v := ctx.StructInitValue(vID)
		attrIdent := ctx.Ident(v.AttrName)
		if attrTable == nil {
			continue
		}
		attrSym, ok := attrTable.Get(attrIdent.Name)
		if !ok {
			r.addErr(&diag.StructError{
				Reason: "struct `" + structIdent.Name + "` has no attribute `" + attrIdent.Name + "`",
				Sp:     attrIdent.Span,
			})
			continue
		}
		markResolved(ctx, v.AttrName, attrSym)
	}
}

package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/ir"
	"github.com/ku-lang/kujs/lexer"
	"github.com/ku-lang/kujs/lower"
	"github.com/ku-lang/kujs/parser"
	"github.com/ku-lang/kujs/resolve"
	"github.com/ku-lang/kujs/symbols"
)

func pipeline(t *testing.T, src string) (*ir.Ctx, *ir.Module, *symbols.Table) {
	t.Helper()
	sf := lexer.NewSourcefileFromString("test.kujs", src)
	file, err := parser.Parse(sf)
	require.NoError(t, err)

	ctx, mod := lower.Lower(file)
	root, collectErrs := symbols.Collect(ctx, mod)
	require.Empty(t, collectErrs)
	return ctx, mod, root
}

func TestResolveSimpleVarReference(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		let x = "hi";
		let y = x;
	`)
	errs := resolve.Resolve(ctx, mod, root)
	assert.Empty(t, errs)

	yDecl := ctx.Stmt(mod.Stmts[1]).(ir.VarDeclStmt)
	yVal := ctx.Expr(yDecl.Value).(ir.IdentifierExpr)
	ident := ctx.Ident(yVal.Ident)
	assert.Equal(t, ir.IdentResolvedNamed, ident.Kind)
	assert.Equal(t, ir.ResolvedVariable, ident.Target.Kind)
}

func TestResolveUnknownIdentSuggestsClosestName(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		let counter = "hi";
		let y = countr;
	`)
	errs := resolve.Resolve(ctx, mod, root)
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown-identifier", errs[0].Kind().String())
	unknown := errs[0].(*diag.UnknownIdentError)
	assert.Equal(t, []string{"counter"}, unknown.Suggestions)
}

func TestResolveRecursiveLetIsRejected(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		let x = x;
	`)
	errs := resolve.Resolve(ctx, mod, root)
	require.Len(t, errs, 1)
	assert.Equal(t, "recursive-let", errs[0].Kind().String())
}

func TestResolveFunctionIsForwardReferenceable(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		func a() -> Void { b(); }
		func b() -> Void { }
	`)
	errs := resolve.Resolve(ctx, mod, root)
	assert.Empty(t, errs)
}

func TestResolveStructInitAttrNames(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		struct Point {
			let x: Number;
			let y: Number;
		}
		let p = Point { x: 1, y: 2 };
	`)
	errs := resolve.Resolve(ctx, mod, root)
	require.Empty(t, errs)

	decl := ctx.Stmt(mod.Stmts[1]).(ir.VarDeclStmt)
	init := ctx.Expr(decl.Value).(ir.StructInitExpr)
	for _, vID := range init.Values {
		v := ctx.StructInitValue(vID)
		attr := ctx.Ident(v.AttrName)
		assert.Equal(t, ir.ResolvedStructAttr, attr.Target.Kind)
	}
}

func TestResolveStructInitUnknownAttr(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		struct Point {
			let x: Number;
		}
		let p = Point { z: 1 };
	`)
	errs := resolve.Resolve(ctx, mod, root)
	require.Len(t, errs, 1)
	assert.Equal(t, "struct-error", errs[0].Kind().String())
}

func TestResolveEnumInitWithArgs(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		enum Shape {
			Circle(Number);
			Point;
		}
		let c = Shape.Circle(1);
		let p = Shape.Point;
	`)
	errs := resolve.Resolve(ctx, mod, root)
	require.Empty(t, errs)

	cDecl := ctx.Stmt(mod.Stmts[1]).(ir.VarDeclStmt)
	cInit, ok := ctx.Expr(cDecl.Value).(ir.EnumInitExpr)
	require.True(t, ok)
	assert.Len(t, cInit.Args, 1)

	pDecl := ctx.Stmt(mod.Stmts[2]).(ir.VarDeclStmt)
	pInit, ok := ctx.Expr(pDecl.Value).(ir.EnumInitExpr)
	require.True(t, ok)
	assert.Empty(t, pInit.Args)
}

func TestResolveEnumInitUnknownValue(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		enum Shape {
			Circle;
		}
		let c = Shape.Square;
	`)
	errs := resolve.Resolve(ctx, mod, root)
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown-enum-value", errs[0].Kind().String())
}

func TestResolveStructAttrAccessDeferredToTypecheck(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		struct Point {
			let x: Number;
		}
		func f(p: Point) -> Number { return p.x; }
	`)
	errs := resolve.Resolve(ctx, mod, root)
	require.Empty(t, errs)

	fn := ctx.Stmt(mod.Stmts[1]).(ir.FunctionDeclStmt)
	body := ctx.StmtBlock(ctx.Func(fn.Func).Body.Get())
	ret := ctx.Stmt(body.Stmts[0]).(ir.ReturnStmt)
	access, ok := ctx.Expr(ret.Value).(ir.StructAccessExpr)
	require.True(t, ok)
	attrIdent := ctx.Ident(access.AttrName)
	assert.Equal(t, ir.IdentParentStructAccessAttrName, attrIdent.Parent.Kind)
	assert.Equal(t, ir.IdentUnresolved, attrIdent.Kind)
}

func TestResolveTypeSigNamesAStruct(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		struct Point {
			let x: Number;
		}
		let p: Point = Point { x: 1 };
	`)
	errs := resolve.Resolve(ctx, mod, root)
	require.Empty(t, errs)

	decl := ctx.Stmt(mod.Stmts[1]).(ir.VarDeclStmt)
	require.NotNil(t, decl.TypeSig)
	sig := ctx.TypeSig(decl.TypeSig.Sig)
	assert.Equal(t, ir.TypeSigStruct, sig.Kind)
	assert.Equal(t, "Point", sig.Name)
}

func TestResolveUnknownTypeName(t *testing.T) {
	ctx, mod, root := pipeline(t, `
		let p: Bogus = "hi";
	`)
	errs := resolve.Resolve(ctx, mod, root)
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown-identifier", errs[0].Kind().String())
}

package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ku-lang/kujs/ir"
	"github.com/ku-lang/kujs/lexer"
	"github.com/ku-lang/kujs/parser"
)

func lowerSrc(t *testing.T, src string) (*ir.Ctx, *ir.Module) {
	t.Helper()
	file, err := parser.Parse(lexer.NewSourcefileFromString("test.kujs", src))
	require.NoError(t, err)
	return Lower(file)
}

func TestLowerVarDeclWithAnnotationProducesBuiltinTypeSig(t *testing.T) {
	ctx, mod := lowerSrc(t, `let x: Number = 1;`)
	require.Len(t, mod.Stmts, 1)
	decl := ctx.Stmt(mod.Stmts[0]).(ir.VarDeclStmt)
	assert.Equal(t, "x", ctx.Ident(decl.Name).Name)
	require.NotNil(t, decl.TypeSig)
	assert.Equal(t, ctx.BuiltinTypeSig(ir.TypeNumber), decl.TypeSig.Sig)
}

func TestLowerVarDeclWithoutAnnotationHasNilTypeSig(t *testing.T) {
	ctx, mod := lowerSrc(t, `let x = 1;`)
	decl := ctx.Stmt(mod.Stmts[0]).(ir.VarDeclStmt)
	assert.Nil(t, decl.TypeSig)
}

func TestLowerFuncDeclDefaultsMissingReturnTypeToFreshTypeVar(t *testing.T) {
	ctx, mod := lowerSrc(t, `func f() { }`)
	decl := ctx.Stmt(mod.Stmts[0]).(ir.FunctionDeclStmt)
	fn := ctx.Func(decl.Func)
	sig := ctx.TypeSig(fn.ReturnType.Get().Sig)
	assert.Equal(t, ir.TypeSigVariable, sig.Kind, "an omitted return type must stay open for inference, not default to Void")
}

func TestLowerStructDeclAllocatesAttrsInDeclaredOrder(t *testing.T) {
	ctx, mod := lowerSrc(t, `struct Point { let x: Number; let y: Number = 0; }`)
	decl := ctx.Stmt(mod.Stmts[0]).(ir.StructDeclStmt)
	st := ctx.Struct(decl.Struct)
	require.Len(t, st.Attrs, 2)

	xAttr := ctx.StructAttr(st.Attrs[0])
	assert.Equal(t, "x", ctx.Ident(xAttr.Name).Name)
	assert.Nil(t, xAttr.Default)

	yAttr := ctx.StructAttr(st.Attrs[1])
	assert.Equal(t, "y", ctx.Ident(yAttr.Name).Name)
	assert.NotNil(t, yAttr.Default)
}

func TestLowerEnumDeclPreservesValueItemTypes(t *testing.T) {
	ctx, mod := lowerSrc(t, `enum Shape { Circle(Number); Square; }`)
	decl := ctx.Stmt(mod.Stmts[0]).(ir.EnumDeclStmt)
	en := ctx.Enum(decl.Enum)
	require.Len(t, en.Values, 2)

	circle := ctx.EnumValue(en.Values[0])
	assert.Equal(t, "Circle", ctx.Ident(circle.Name).Name)
	require.Len(t, circle.Items, 1)

	square := ctx.EnumValue(en.Values[1])
	assert.Empty(t, square.Items)
}

func TestLowerIdentifierProducesUnresolvedIdent(t *testing.T) {
	ctx, mod := lowerSrc(t, `let y = x;`)
	decl := ctx.Stmt(mod.Stmts[0]).(ir.VarDeclStmt)
	identExpr := ctx.Expr(decl.Value).(ir.IdentifierExpr)
	assert.Equal(t, ir.IdentUnresolved, ctx.Ident(identExpr.Ident).Kind)
}

func TestLowerMemberAccessIsUnresolvedUntilResolve(t *testing.T) {
	ctx, mod := lowerSrc(t, `let y = a.b;`)
	decl := ctx.Stmt(mod.Stmts[0]).(ir.VarDeclStmt)
	_, ok := ctx.Expr(decl.Value).(ir.UnresolvedMemberAccessExpr)
	assert.True(t, ok, "lower never disambiguates member access into struct-access/enum-init; resolve does")
}

func TestLowerTupleAccessCarriesLiteralIndex(t *testing.T) {
	ctx, mod := lowerSrc(t, `let y = p.0;`)
	decl := ctx.Stmt(mod.Stmts[0]).(ir.VarDeclStmt)
	access := ctx.Expr(decl.Value).(ir.TupleAccessExpr)
	assert.Equal(t, 0, access.Index)
}

func TestLowerStructInitAllocatesStructInitValuesInSourceOrder(t *testing.T) {
	ctx, mod := lowerSrc(t, `struct Point { let x: Number; let y: Number; }
		let p = Point { x: 1, y: 2 };`)
	decl := ctx.Stmt(mod.Stmts[1]).(ir.VarDeclStmt)
	init := ctx.Expr(decl.Value).(ir.StructInitExpr)
	require.Len(t, init.Values, 2)
	assert.Equal(t, "x", ctx.Ident(ctx.StructInitValue(init.Values[0]).AttrName).Name)
	assert.Equal(t, "y", ctx.Ident(ctx.StructInitValue(init.Values[1]).AttrName).Name)
}

func TestLowerFuncLiteralMintsAnonymousScopeName(t *testing.T) {
	ctx, mod := lowerSrc(t, `let f = func() -> Void { };`)
	decl := ctx.Stmt(mod.Stmts[0]).(ir.VarDeclStmt)
	lit := ctx.Expr(decl.Value).(ir.FunctionExpr)
	assert.Contains(t, ctx.Ident(lit.ScopeName).Name, "<func>@")
}

func TestLowerEscapeBlockWithoutAnnotationHasNilTypeSig(t *testing.T) {
	ctx, mod := lowerSrc(t, `let x = @{ 1 };`)
	decl := ctx.Stmt(mod.Stmts[0]).(ir.VarDeclStmt)
	block := ctx.Expr(decl.Value).(ir.EscapeBlockExpr)
	assert.Nil(t, block.TypeSig)
	assert.Equal(t, " 1 ", block.Code)
}

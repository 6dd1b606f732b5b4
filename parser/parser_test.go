package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ku-lang/kujs/ast"
	"github.com/ku-lang/kujs/lexer"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := Parse(lexer.NewSourcefileFromString("test.kujs", src))
	require.NoError(t, err)
	return file
}

func TestParseVarDeclWithAnnotationAndMutable(t *testing.T) {
	file := parse(t, `let mut x: Number = 1;`)
	require.Len(t, file.Stmts, 1)
	decl := file.Stmts[0].(ast.VarDecl)
	assert.Equal(t, "x", decl.Name)
	assert.True(t, decl.Mutable)
	assert.Equal(t, ast.NamedType{Name: "Number", Sp: decl.Type.Span()}, decl.Type)
}

func TestParseVarDeclWithoutAnnotation(t *testing.T) {
	file := parse(t, `let x = 1;`)
	decl := file.Stmts[0].(ast.VarDecl)
	assert.Nil(t, decl.Type)
	assert.False(t, decl.Mutable)
}

func TestParseFuncDeclWithReturnType(t *testing.T) {
	file := parse(t, `func add(a: Number, b: Number) -> Number { return a; }`)
	decl := file.Stmts[0].(ast.FuncDecl)
	assert.Equal(t, "add", decl.Name)
	require.Len(t, decl.Params, 2)
	assert.Equal(t, "a", decl.Params[0].Name)
	require.Len(t, decl.Body, 1)
}

func TestParseStructDeclWithDefaultAttr(t *testing.T) {
	file := parse(t, `struct Point { let x: Number; let y: Number = 0; }`)
	decl := file.Stmts[0].(ast.StructDecl)
	require.Len(t, decl.Attrs, 2)
	assert.Nil(t, decl.Attrs[0].Default)
	assert.NotNil(t, decl.Attrs[1].Default)
}

func TestParseEnumDeclWithAndWithoutItems(t *testing.T) {
	file := parse(t, `enum Shape { Circle(Number); Square; }`)
	decl := file.Stmts[0].(ast.EnumDecl)
	require.Len(t, decl.Values, 2)
	assert.Equal(t, "Circle", decl.Values[0].Name)
	require.Len(t, decl.Values[0].Items, 1)
	assert.Equal(t, "Square", decl.Values[1].Name)
	assert.Empty(t, decl.Values[1].Items)
}

func TestParseTupleTypeAndFuncType(t *testing.T) {
	file := parse(t, `let a: (Number, Boolean) = (1, true);
		let f: (Number) -> Number = func(n: Number) -> Number { return n; };`)
	a := file.Stmts[0].(ast.VarDecl)
	_, isTuple := a.Type.(ast.TupleType)
	assert.True(t, isTuple)

	f := file.Stmts[1].(ast.VarDecl)
	_, isFunc := f.Type.(ast.FuncType)
	assert.True(t, isFunc)
}

func TestParseSingleParenExprIsNotATuple(t *testing.T) {
	file := parse(t, `let x = (1);`)
	decl := file.Stmts[0].(ast.VarDecl)
	_, isTuple := decl.Value.(ast.Tuple)
	assert.False(t, isTuple, "a single parenthesized expression without a trailing comma is not a tuple")
}

func TestParseTupleAccessAndMemberAccessChain(t *testing.T) {
	file := parse(t, `let x = pair.0.field;`)
	decl := file.Stmts[0].(ast.VarDecl)
	member := decl.Value.(ast.MemberAccess)
	assert.Equal(t, "field", member.Member)
	tupleAccess := member.Object.(ast.TupleAccess)
	assert.Equal(t, 0, tupleAccess.Index)
}

func TestParseCallChainedOffMemberAccess(t *testing.T) {
	file := parse(t, `let c = Shape.Circle(1);`)
	decl := file.Stmts[0].(ast.VarDecl)
	call := decl.Value.(ast.Call)
	require.Len(t, call.Args, 1)
	member := call.Callee.(ast.MemberAccess)
	assert.Equal(t, "Circle", member.Member)
}

func TestParseAnonymousEnumInit(t *testing.T) {
	file := parse(t, `let c = .Circle(1, 2);`)
	decl := file.Stmts[0].(ast.VarDecl)
	member := decl.Value.(ast.MemberAccess)
	assert.Nil(t, member.Object)
	assert.Equal(t, "Circle", member.Member)
	require.Len(t, member.Args, 2)
}

func TestParseNestedAnonymousEnumInit(t *testing.T) {
	file := parse(t, `let c = .Outer(.Inner(42));`)
	decl := file.Stmts[0].(ast.VarDecl)
	outer := decl.Value.(ast.MemberAccess)
	assert.Nil(t, outer.Object)
	require.Len(t, outer.Args, 1)
	inner := outer.Args[0].(ast.MemberAccess)
	assert.Nil(t, inner.Object)
	assert.Equal(t, "Inner", inner.Member)
}

func TestParseStructInitDistinguishedFromBareIdent(t *testing.T) {
	file := parse(t, `struct Point { let x: Number; }
		let p = Point { x: 1 };
		let q = Point;`)
	initDecl := file.Stmts[1].(ast.VarDecl)
	init := initDecl.Value.(ast.StructInit)
	assert.Equal(t, "Point", init.Name)
	require.Len(t, init.Fields, 1)

	bareDecl := file.Stmts[2].(ast.VarDecl)
	_, isIdent := bareDecl.Value.(ast.Ident)
	assert.True(t, isIdent)
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	file := parse(t, `let mut x = 0;
		let mut y = 0;
		x = y = 1;`)
	stmt := file.Stmts[2].(ast.ExprStmt)
	assign := stmt.Value.(ast.Assignment)
	_, targetIsIdent := assign.Target.(ast.Ident)
	assert.True(t, targetIsIdent)
	_, valueIsAssignment := assign.Value.(ast.Assignment)
	assert.True(t, valueIsAssignment, "x = y = 1 groups as x = (y = 1)")
}

func TestParseEscapeBlockWithTypeAnnotation(t *testing.T) {
	file := parse(t, `let x = @[Number]{ 1 + 1 };`)
	decl := file.Stmts[0].(ast.VarDecl)
	block := decl.Value.(ast.EscapeBlock)
	assert.Equal(t, " 1 + 1 ", block.Code)
	named := block.Type.(ast.NamedType)
	assert.Equal(t, "Number", named.Name)
}

func TestParseEscapeBlockWithoutTypeAnnotation(t *testing.T) {
	file := parse(t, `let x = @{ console.log("hi") };`)
	decl := file.Stmts[0].(ast.VarDecl)
	block := decl.Value.(ast.EscapeBlock)
	assert.Nil(t, block.Type)
}

func TestParseReturnWithAndWithoutValue(t *testing.T) {
	file := parse(t, `func f() { return 1; }
		func g() { return; }`)
	f := file.Stmts[0].(ast.FuncDecl)
	ret1 := f.Body[0].(ast.Return)
	assert.True(t, ret1.HasValue)

	g := file.Stmts[1].(ast.FuncDecl)
	ret2 := g.Body[0].(ast.Return)
	assert.False(t, ret2.HasValue)
}

func TestParseKeywordCannotBeUsedAsBareIdentifier(t *testing.T) {
	_, err := Parse(lexer.NewSourcefileFromString("test.kujs", `let x = mut;`))
	require.Error(t, err)
}

func TestParseUnexpectedTokenIsAnError(t *testing.T) {
	_, err := Parse(lexer.NewSourcefileFromString("test.kujs", `let x = ;`))
	require.Error(t, err)
}

func TestParseMissingClosingBraceIsAnError(t *testing.T) {
	_, err := Parse(lexer.NewSourcefileFromString("test.kujs", `func f() { let x = 1;`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated block")
}

package symbols_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ku-lang/kujs/ir"
	"github.com/ku-lang/kujs/lexer"
	"github.com/ku-lang/kujs/lower"
	"github.com/ku-lang/kujs/parser"
	"github.com/ku-lang/kujs/symbols"
)

func parseAndLower(t *testing.T, src string) (*ir.Ctx, *ir.Module) {
	t.Helper()
	sf := lexer.NewSourcefileFromString("test.kujs", src)
	file, err := parser.Parse(sf)
	require.NoError(t, err)
	return lower.Lower(file)
}

func TestCollectBuildsGlobalTable(t *testing.T) {
	ctx, mod := parseAndLower(t, `
		let x = "hi";
		func f() -> Void { }
	`)
	root, errs := symbols.Collect(ctx, mod)
	assert.Empty(t, errs)

	_, ok := root.Get("x")
	assert.True(t, ok)
	_, ok = root.Get("f")
	assert.True(t, ok)
}

func TestCollectRejectsDuplicateTopLevelDeclaration(t *testing.T) {
	ctx, mod := parseAndLower(t, `
		let x = "hi";
		let x = "bye";
	`)
	_, errs := symbols.Collect(ctx, mod)
	require.Len(t, errs, 1)
	assert.Equal(t, "duplicate-declaration", errs[0].Kind().String())
}

func TestCollectRejectsDuplicateFunctionArg(t *testing.T) {
	ctx, mod := parseAndLower(t, `
		func f(a: Number, a: Number) -> Void { }
	`)
	_, errs := symbols.Collect(ctx, mod)
	require.Len(t, errs, 1)
	assert.Equal(t, "duplicate-declaration", errs[0].Kind().String())
}

func TestCollectRejectsDuplicateStructAttr(t *testing.T) {
	ctx, mod := parseAndLower(t, `
		struct Point {
			let x: Number;
			let x: Number;
		}
	`)
	_, errs := symbols.Collect(ctx, mod)
	require.Len(t, errs, 1)
	assert.Equal(t, "duplicate-declaration", errs[0].Kind().String())
}

func TestCollectAllowsSameAttrNameAcrossDifferentStructs(t *testing.T) {
	ctx, mod := parseAndLower(t, `
		struct A { let x: Number; }
		struct B { let x: Number; }
	`)
	_, errs := symbols.Collect(ctx, mod)
	assert.Empty(t, errs)
}

func TestCollectRejectsDuplicateEnumValue(t *testing.T) {
	ctx, mod := parseAndLower(t, `
		enum Shape {
			Circle;
			Circle;
		}
	`)
	_, errs := symbols.Collect(ctx, mod)
	require.Len(t, errs, 1)
	assert.Equal(t, "duplicate-declaration", errs[0].Kind().String())
}

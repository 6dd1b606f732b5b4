package emit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ku-lang/kujs/emit"
	"github.com/ku-lang/kujs/ir"
	"github.com/ku-lang/kujs/lexer"
	"github.com/ku-lang/kujs/lower"
	"github.com/ku-lang/kujs/parser"
	"github.com/ku-lang/kujs/resolve"
	"github.com/ku-lang/kujs/symbols"
	"github.com/ku-lang/kujs/typecheck"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	sf := lexer.NewSourcefileFromString("test.kujs", src)
	file, err := parser.Parse(sf)
	require.NoError(t, err)

	ctx, mod := lower.Lower(file)
	root, collectErrs := symbols.Collect(ctx, mod)
	require.Empty(t, collectErrs)
	require.Empty(t, resolve.Resolve(ctx, mod, root))
	require.Empty(t, typecheck.Check(ctx, mod))

	var out strings.Builder
	require.NoError(t, emit.Emit(&out, ctx, mod))
	return out.String()
}

func TestEmitLetAssignSimple(t *testing.T) {
	got := compile(t, `let val: Number = 23.4;`)
	assert.Equal(t, "const val = 23.4;\n", got)
}

func TestEmitFuncCall(t *testing.T) {
	got := compile(t, `func f() -> Void { } f();`)
	assert.Equal(t, "function f() {}\nf();\n", got)
}

func TestEmitAssignFuncCallNamedFunction(t *testing.T) {
	got := compile(t, `
		func f() -> Boolean { return true; }
		let x: Boolean = f();
	`)
	assert.Equal(t, "function f() {return true;}\nconst x = f();\n", got)
}

func TestEmitAssignFuncCallFunctionLiteral(t *testing.T) {
	got := compile(t, `
		let f = func() -> Boolean { return true; };
		let x: Boolean = f();
	`)
	assert.Equal(t, "const f = () => {return true;};\nconst x = f();\n", got)
}

func TestEmitStruct(t *testing.T) {
	got := compile(t, `
		struct Test {
			let defaultVal: Number = 123;
			let noDefault: Boolean;
		}
		let testVar = Test { noDefault: false };
		let val: Number = testVar.defaultVal;
	`)
	assert.Equal(t,
		"function Test (defaultVal, noDefault) {\n"+
			"this.defaultVal = defaultVal ?? 123;\n"+
			"this.noDefault = noDefault}\n"+
			"const testVar = new Test(null, false);\n"+
			"const val = testVar.defaultVal;\n",
		got)
}

func TestEmitTuple(t *testing.T) {
	got := compile(t, `
		let val: (Boolean, Number) = (true, 42);
		let val2: Number = val.1;
	`)
	assert.Equal(t,
		"const val = [true, 42];\n"+
			"const val2 = val[1];\n",
		got)
}

func TestEmitEnumDeclEmitsNothing(t *testing.T) {
	got := compile(t, `
		enum Shape {
			Circle(Number);
		}
		let c = Shape.Circle(1);
	`)
	assert.Equal(t, "const c = {tag: \"Circle\", values: [1]};\n", got)
}

func TestEmitEscapeBlockVerbatim(t *testing.T) {
	got := compile(t, `let x: Number = @{ 1 + 1 };`)
	assert.Equal(t, "const x =  1 + 1 ;\n", got)
}

func TestEmitTupleAccessAlwaysArrayIndex(t *testing.T) {
	got := compile(t, `
		let pair = (1, 2);
		let first: Number = pair.0;
	`)
	assert.Equal(t, "const pair = [1, 2];\nconst first = pair[0];\n", got)
}

package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ku-lang/kujs/ir"
	"github.com/ku-lang/kujs/lexer"
	"github.com/ku-lang/kujs/lower"
	"github.com/ku-lang/kujs/parser"
	"github.com/ku-lang/kujs/resolve"
	"github.com/ku-lang/kujs/symbols"
	"github.com/ku-lang/kujs/typecheck"
)

func pipeline(t *testing.T, src string) (*ir.Ctx, *ir.Module) {
	t.Helper()
	sf := lexer.NewSourcefileFromString("test.kujs", src)
	file, err := parser.Parse(sf)
	require.NoError(t, err)

	ctx, mod := lower.Lower(file)
	root, collectErrs := symbols.Collect(ctx, mod)
	require.Empty(t, collectErrs)
	resolveErrs := resolve.Resolve(ctx, mod, root)
	require.Empty(t, resolveErrs)
	return ctx, mod
}

func TestCheckWellTypedProgramHasNoErrors(t *testing.T) {
	ctx, mod := pipeline(t, `
		struct Point {
			let x: Number;
			let y: Number;
		}

		func dist(p: Point) -> Number {
			return p.x;
		}

		let p = Point { x: 1, y: 2 };
		let d: Number = dist(p);
	`)
	errs := typecheck.Check(ctx, mod)
	assert.Empty(t, errs)
}

func TestCheckVarDeclAnnotationMismatch(t *testing.T) {
	ctx, mod := pipeline(t, `
		let x: Number = "hi";
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "conflicting-types", errs[0].Kind().String())
}

func TestCheckCallArgCountMismatch(t *testing.T) {
	ctx, mod := pipeline(t, `
		func f(a: Number) -> Void { }
		f(1, 2);
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "function-error", errs[0].Kind().String())
}

func TestCheckEnumInitArgCountMismatch(t *testing.T) {
	ctx, mod := pipeline(t, `
		enum Shape {
			Circle(Number);
		}
		let c = Shape.Circle(1, 2);
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "enum-init-arg-count-mismatch", errs[0].Kind().String())
}

func TestCheckStructInitMissingRequiredAttr(t *testing.T) {
	ctx, mod := pipeline(t, `
		struct Point {
			let x: Number;
			let y: Number;
		}
		let p = Point { x: 1 };
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "struct-error", errs[0].Kind().String())
}

func TestCheckStructInitDefaultedAttrMayBeOmitted(t *testing.T) {
	ctx, mod := pipeline(t, `
		struct Point {
			let x: Number;
			let y: Number = 0;
		}
		let p = Point { x: 1 };
	`)
	errs := typecheck.Check(ctx, mod)
	assert.Empty(t, errs)
}

func TestCheckStructAccessUnknownAttr(t *testing.T) {
	ctx, mod := pipeline(t, `
		struct Point {
			let x: Number;
		}
		func f(p: Point) -> Number { return p.z; }
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "struct-error", errs[0].Kind().String())
}

func TestCheckTupleAccessOutOfBounds(t *testing.T) {
	ctx, mod := pipeline(t, `
		let t = (1, 2);
		let x = t.5;
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "tuple-access-out-of-bounds", errs[0].Kind().String())
}

func TestCheckCallNonFunction(t *testing.T) {
	ctx, mod := pipeline(t, `
		let x = 1;
		let y = x(2);
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)

	var sawCallNonFunction bool
	for _, e := range errs {
		if e.Kind().String() == "call-non-function" {
			sawCallNonFunction = true
		}
	}
	assert.True(t, sawCallNonFunction)
}

func TestCheckAssignmentToImmutableVariable(t *testing.T) {
	ctx, mod := pipeline(t, `
		let x = 1;
		x = 2;
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "assignment-error", errs[0].Kind().String())
}

func TestCheckAssignmentToMutableVariableIsAllowed(t *testing.T) {
	ctx, mod := pipeline(t, `
		let mut x = 1;
		x = 2;
	`)
	errs := typecheck.Check(ctx, mod)
	assert.Empty(t, errs)
}

func TestCheckIdentNotExpressionForBareStructName(t *testing.T) {
	ctx, mod := pipeline(t, `
		struct Point {
			let x: Number;
		}
		let p = Point;
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "ident-not-expression", errs[0].Kind().String())
}

func TestCheckUntypedEscapeBlockCoercesIntoTypedContext(t *testing.T) {
	ctx, mod := pipeline(t, `
		let x: Number = @{ 1 + 1 };
	`)
	errs := typecheck.Check(ctx, mod)
	assert.Empty(t, errs)
}

func TestCheckAnnotatedEscapeBlockMismatch(t *testing.T) {
	ctx, mod := pipeline(t, `
		let x: Number = @[String]{ "hi" };
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "conflicting-types", errs[0].Kind().String())
}

func TestCheckUnannotatedReturnInfersFromReturnStatement(t *testing.T) {
	ctx, mod := pipeline(t, `
		func f() { return 123; }
		let x: Number = f();
	`)
	errs := typecheck.Check(ctx, mod)
	assert.Empty(t, errs)
}

func TestCheckAnonymousEnumInit(t *testing.T) {
	ctx, mod := pipeline(t, `
		enum Shape {
			Circle(Number);
		}
		let c: Shape = .Circle(1);
	`)
	errs := typecheck.Check(ctx, mod)
	assert.Empty(t, errs)
}

func TestCheckNestedAnonymousEnumInit(t *testing.T) {
	ctx, mod := pipeline(t, `
		enum Inner {
			Value(Number);
		}
		enum Outer {
			Wrap(Inner);
		}
		let c: Outer = .Wrap(.Value(42));
	`)
	errs := typecheck.Check(ctx, mod)
	assert.Empty(t, errs)
}

func TestCheckAnonymousEnumInitAgainstNonEnumIsAnError(t *testing.T) {
	ctx, mod := pipeline(t, `
		let c: Number = .Circle(1);
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "anonymous-enum-init-non-enum", errs[0].Kind().String())
}

func TestCheckUnpinnedEscapeBlockIsUndeterminable(t *testing.T) {
	ctx, mod := pipeline(t, `
		let a = @{ 1 + 2 };
	`)
	errs := typecheck.Check(ctx, mod)
	require.NotEmpty(t, errs)
	assert.Equal(t, "undeterminable-types", errs[0].Kind().String())
}

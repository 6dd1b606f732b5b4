package kujs_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ku-lang/kujs"
	"github.com/ku-lang/kujs/internal/fuzzgen"
	"github.com/ku-lang/kujs/lexer"
)

func TestTranspileEndToEnd(t *testing.T) {
	sf := lexer.NewSourcefileFromString("test.kujs", `
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

	var out strings.Builder
	errs := kujs.Transpile(&out, sf)
	require.Empty(t, errs)
	assert.Contains(t, out.String(), "function Point (")
	assert.Contains(t, out.String(), "function dist(p)")
}

func TestTranspileReportsUnknownIdentifier(t *testing.T) {
	sf := lexer.NewSourcefileFromString("test.kujs", `let y = nope;`)

	var out strings.Builder
	errs := kujs.Transpile(&out, sf)
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown-identifier", errs[0].Kind().String())
}

// TestWellTypedFixturesRoundTrip exercises SPEC_FULL.md §12.3's property:
// every generated well-typed fixture transpiles with no diagnostics and
// emitting it again from the same source is byte-for-byte stable.
func TestWellTypedFixturesRoundTrip(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		src := fuzzgen.GenWellTypedProgram(seed)

		sf1 := lexer.NewSourcefileFromString("fixture.kujs", src)
		var out1 strings.Builder
		errs := kujs.Transpile(&out1, sf1)
		require.Emptyf(t, errs, "seed %d: %q", seed, src)

		sf2 := lexer.NewSourcefileFromString("fixture.kujs", src)
		var out2 strings.Builder
		require.Empty(t, kujs.Transpile(&out2, sf2))

		assert.Equalf(t, out1.String(), out2.String(), "seed %d: re-transpiling the same source must be stable", seed)
	}
}

// TestSingleFaultFixturesReportPredictedKind exercises SPEC_FULL.md §12.3's
// other property: a source with exactly one injected fault always reports
// the diagnostic kind predicted for it.
func TestSingleFaultFixturesReportPredictedKind(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		src, wantKind := fuzzgen.GenSingleFault(seed)

		sf := lexer.NewSourcefileFromString("fixture.kujs", src)
		var out strings.Builder
		errs := kujs.Transpile(&out, sf)
		require.NotEmptyf(t, errs, "seed %d: %q", seed, src)
		assert.Equalf(t, wantKind.String(), errs[0].Kind().String(), "seed %d: %q", seed, src)
	}
}

// Package kujs is the root of the transpiler: Transpile runs the whole
// pipeline — lex, parse, lower, collect symbols, resolve identifiers,
// type-check, emit — over one source file and writes its JS translation.
// Grounded on the original implementation's lib.rs::transpile driver,
// adapted to return every diagnostic found rather than stopping at the
// first failing stage's first error.
package kujs

import (
	"io"

	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/emit"
	"github.com/ku-lang/kujs/lexer"
	"github.com/ku-lang/kujs/lower"
	"github.com/ku-lang/kujs/parser"
	"github.com/ku-lang/kujs/resolve"
	"github.com/ku-lang/kujs/symbols"
	"github.com/ku-lang/kujs/typecheck"
)

// Transpile reads sf as kujs and writes its JS translation to w. A
// non-empty diagnostic slice means w may have received a partial or no
// write; Parse/Collect/Resolve/Typecheck failures all stop before emit
// runs at all. The caller owns sf so it can reuse it to render diagnostics
// (diag.Render) against the same source positions.
func Transpile(w io.Writer, sf *lexer.Sourcefile) []diag.Error {
	file, err := parser.Parse(sf)
	if err != nil {
		return []diag.Error{&diag.ParseError{Msg: err.Error()}}
	}

	ctx, mod := lower.Lower(file)

	root, errs := symbols.Collect(ctx, mod)
	if len(errs) > 0 {
		return errs
	}

	if errs := resolve.Resolve(ctx, mod, root); len(errs) > 0 {
		return errs
	}

	if errs := typecheck.Check(ctx, mod); len(errs) > 0 {
		return errs
	}

	if err := emit.Emit(w, ctx, mod); err != nil {
		return []diag.Error{err.(*diag.WriteError)}
	}
	return nil
}

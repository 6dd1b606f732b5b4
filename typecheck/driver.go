// Package typecheck is the Hindley-Milner-style type checker: constraint
// generation (infer.go), unification with a bounded FIFO queue and
// Untyped-coercion (unify.go), a post-substitution resolver for the access
// forms inference had to defer (apply.go), a final structural checker
// (check.go), and the bounded rerun loop tying them together (this file).
// Grounded on the original implementation's type_checker/mod.rs driver.
package typecheck

import (
	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/internal/kujslog"
	"github.com/ku-lang/kujs/ir"
)

var log = kujslog.New("typecheck")

// maxReruns bounds the rerun loop: each rerun only ever helps when a
// deferred struct/tuple access or anonymous enum init can be resolved with
// information an earlier iteration contributed, so convergence is expected within a
// handful of iterations for any real program.
const maxReruns = 8

// Check runs the full type-checking pipeline over mod, returning every
// diagnostic found. An empty slice means mod is well-typed and ready for
// emit.
func Check(ctx *ir.Ctx, mod *ir.Module) []diag.Error {
	reg := buildRegistry(ctx, mod)

	var errs []diag.Error
	var app *applier
	var leftover []constraint

	log.Timed("typecheck", func() {
		for i := 0; i < maxReruns; i++ {
			ctx.ResetInference()

			u := newUnifier(ctx)
			inf := newInferrer(ctx, reg, u)
			mustWalk(ctx, mod, inf)

			unifyErrs, lo := u.drain()
			leftover = lo

			app = newApplier(ctx, reg, u)
			mustWalk(ctx, mod, app)

			errs = append(append([]diag.Error{}, inf.errs...), unifyErrs...)

			if !app.NeedsRerun {
				break
			}
			log.Debug("rerun %d: %d access forms still undeterminable", i+1, len(app.Undeterminable))
		}
	})

	errs = append(errs, app.Errs...)
	if len(leftover) > 0 {
		errs = append(errs, &diag.UnresolvableTypeConstraintsError{Count: len(leftover), Sp: leftover[0].Sp})
	}

	if !app.NeedsRerun {
		chk := newChecker(ctx, app.u)
		mustWalk(ctx, mod, chk)
		errs = append(errs, chk.Errs...)
	} else {
		errs = append(errs, app.Undeterminable...)
	}

	return errs
}

func mustWalk(ctx *ir.Ctx, mod *ir.Module, w ir.Walker) {
	if err := ir.Walk(ctx, mod, w); err != nil {
		panic("INTERNAL ERROR: typecheck walkers must report errors via their own slices, not Walk's error: " + err.Error())
	}
}

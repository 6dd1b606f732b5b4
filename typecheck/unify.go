package typecheck

import (
	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/ir"
	"github.com/ku-lang/kujs/lexer"
)

// constraint is one equality the unifier must satisfy: A and B name the
// same type. Structural dispatch (Tuple/Function) emits fresh constraints
// onto the same queue as it decomposes a pair, so drain processes the
// whole closure of a single generation pass before returning.
type constraint struct {
	A, B ir.TypeSigID
	Sp   lexer.Span
}

// unifier is a union-find over type-sig ids, draining a FIFO constraint
// queue. Grounded on the original implementation's type_checker/mod.rs
// substitution map plus Deque<Constraint>.
type unifier struct {
	ctx   *ir.Ctx
	subst map[ir.TypeSigID]ir.TypeSigID
	queue []constraint
}

func newUnifier(ctx *ir.Ctx) *unifier {
	return &unifier{ctx: ctx, subst: make(map[ir.TypeSigID]ir.TypeSigID)}
}

func (u *unifier) constrain(a, b ir.TypeSigID, sp lexer.Span) {
	u.queue = append(u.queue, constraint{A: a, B: b, Sp: sp})
}

// find chases the substitution chain to a representative id.
func (u *unifier) find(id ir.TypeSigID) ir.TypeSigID {
	for {
		next, ok := u.subst[id]
		if !ok {
			return id
		}
		id = next
	}
}

func (u *unifier) bind(v, t ir.TypeSigID) { u.subst[v] = t }

// drain processes the queue to a fixed point. A (Var, Var) pair that makes
// no progress across a full pass over the remaining queue is left
// unresolved rather than looped on forever; the caller decides whether
// that is fatal (UnresolvableTypeConstraints) once the rerun loop is done
// giving later information a chance to pin it down.
func (u *unifier) drain() ([]diag.Error, []constraint) {
	var errs []diag.Error
	queue := u.queue
	u.queue = nil
	stall := 0
	for len(queue) > 0 && stall < len(queue) {
		c := queue[0]
		queue = queue[1:]
		progressed, err := u.step(c)
		if err != nil {
			errs = append(errs, err)
			stall = 0
			continue
		}
		if !progressed {
			queue = append(queue, c)
			stall++
			continue
		}
		stall = 0
	}
	return errs, queue
}

func (u *unifier) step(c constraint) (progressed bool, err diag.Error) {
	a := u.find(c.A)
	b := u.find(c.B)
	if a == b {
		return true, nil
	}
	av := u.ctx.TypeSig(a)
	bv := u.ctx.TypeSig(b)

	if av.Kind == ir.TypeSigVariable && bv.Kind == ir.TypeSigVariable {
		return false, nil
	}
	if av.Kind == ir.TypeSigVariable {
		u.bind(a, b)
		return true, nil
	}
	if bv.Kind == ir.TypeSigVariable {
		u.bind(b, a)
		return true, nil
	}

	// Untyped coerces into (and accepts from) any concrete type; it pins
	// nothing and never conflicts.
	if isUntyped(av) || isUntyped(bv) {
		return true, nil
	}

	switch {
	case av.Kind == ir.TypeSigTuple && bv.Kind == ir.TypeSigTuple:
		if len(av.TupleMembers) != len(bv.TupleMembers) {
			return true, u.conflict(a, b, c.Sp)
		}
		for i := range av.TupleMembers {
			u.constrain(av.TupleMembers[i], bv.TupleMembers[i], c.Sp)
		}
		return true, nil

	case av.Kind == ir.TypeSigFunction && bv.Kind == ir.TypeSigFunction:
		if len(av.FuncArgs) != len(bv.FuncArgs) {
			return true, &diag.FunctionError{Reason: "function argument count mismatch", Sp: c.Sp}
		}
		for i := range av.FuncArgs {
			u.constrain(av.FuncArgs[i], bv.FuncArgs[i], c.Sp)
		}
		u.constrain(av.FuncReturn, bv.FuncReturn, c.Sp)
		return true, nil

	case av.Kind == ir.TypeSigBuiltin && bv.Kind == ir.TypeSigBuiltin && av.Builtin == bv.Builtin:
		return true, nil

	default:
		// Struct/Struct and Enum/Enum pairs that reach here are always a
		// name mismatch: equal names already hash-cons to the same id and
		// would have been caught by the a == b check above.
		return true, u.conflict(a, b, c.Sp)
	}
}

func isUntyped(v ir.TypeSigValue) bool {
	return v.Kind == ir.TypeSigBuiltin && v.Builtin == ir.TypeUntyped
}

func (u *unifier) conflict(a, b ir.TypeSigID, sp lexer.Span) diag.Error {
	return &diag.ConflictingTypesError{
		Expected: describeTypeSig(u.ctx, a),
		Actual:   describeTypeSig(u.ctx, b),
		Sp:       sp,
	}
}

package ir

import "fmt"

// TypeSigID addresses a hash-consed TypeSigValue in Ctx.TypeSigs. Two type
// signatures that are structurally equal always share one TypeSigID, so
// unification can compare ids instead of deep-walking trees.
type TypeSigID int

// BuiltinType enumerates the language's non-composite scalar types.
type BuiltinType int

const (
	TypeString BuiltinType = iota
	TypeNumber
	TypeBoolean
	TypeVoid
	TypeUntyped
)

func (b BuiltinType) String() string {
	switch b {
	case TypeString:
		return "String"
	case TypeNumber:
		return "Number"
	case TypeBoolean:
		return "Boolean"
	case TypeVoid:
		return "Void"
	case TypeUntyped:
		return "Untyped"
	default:
		return "<unknown builtin>"
	}
}

// TypeSigKind discriminates the variants of TypeSigValue.
type TypeSigKind int

const (
	TypeSigBuiltin TypeSigKind = iota
	TypeSigUnresolved
	TypeSigVariable
	TypeSigFunction
	TypeSigStruct
	TypeSigEnum
	TypeSigTrait
	TypeSigTuple
)

// TypeSigValue is a hash-consed node in the type-signature graph. Equality
// and hashing (see key()) only ever look at the fields relevant to the
// active Kind, matching the Rust original's per-variant Eq/Hash impls.
type TypeSigValue struct {
	Kind TypeSigKind

	Builtin          BuiltinType // Kind == Builtin
	UnresolvedIdent  IdentID     // Kind == Unresolved
	VarID            int         // Kind == Variable, a fresh-counter value
	FuncArgs         []TypeSigID // Kind == Function
	FuncReturn       TypeSigID   // Kind == Function
	Name             string      // Kind == Struct | Enum | Trait
	TupleMembers     []TypeSigID // Kind == Tuple
}

// key renders a canonical string for hash-consing. Function/Tuple members
// are addressed by their already-canonical child ids, so this stays O(arity)
// rather than recursing into grandchildren.
func (v TypeSigValue) key() string {
	switch v.Kind {
	case TypeSigBuiltin:
		return fmt.Sprintf("B:%d", v.Builtin)
	case TypeSigUnresolved:
		return fmt.Sprintf("U:%d", v.UnresolvedIdent)
	case TypeSigVariable:
		return fmt.Sprintf("V:%d", v.VarID)
	case TypeSigFunction:
		return fmt.Sprintf("F:%v->%d", v.FuncArgs, v.FuncReturn)
	case TypeSigStruct:
		return fmt.Sprintf("S:%s", v.Name)
	case TypeSigEnum:
		return fmt.Sprintf("E:%s", v.Name)
	case TypeSigTrait:
		return fmt.Sprintf("T:%s", v.Name)
	case TypeSigTuple:
		return fmt.Sprintf("Tup:%v", v.TupleMembers)
	default:
		panic("INTERNAL ERROR: unreachable TypeSigKind in key()")
	}
}

// TypeSigContextKind says which tree slot a TypeRef occupies, for
// diagnostics only — it never affects hash-consing or unification.
type TypeSigContextKind int

const (
	TypeSigCtxDefault TypeSigContextKind = iota
	TypeSigCtxVarDecl
	TypeSigCtxFuncArg
	TypeSigCtxFuncReturn
	TypeSigCtxStructAttr
	TypeSigCtxTupleItem
	TypeSigCtxExpr
	TypeSigCtxEnumValue
)

// TypeSigContext carries per-occurrence provenance for a TypeRef. Two
// TypeRefs can point at the same hash-consed TypeSigID while disagreeing
// about Context, because the same concrete type (say Number) can show up as
// a function's 2nd argument in one place and a struct attribute in another.
type TypeSigContext struct {
	Kind  TypeSigContextKind
	Index int // argument/tuple-item index, when applicable
	Owner int // arena id of the owning node (FuncID/StructID/etc, untyped to avoid import churn)
}

// TypeRef is what every tree slot actually stores: the hash-cons-shared
// signature id, plus where in the tree this particular occurrence sits.
type TypeRef struct {
	Sig TypeSigID
	Ctx TypeSigContext
}

// GetTypeSig hash-cons-interns v, returning the existing id if an equal
// value was already allocated.
func (c *Ctx) GetTypeSig(v TypeSigValue) TypeSigID {
	k := v.key()
	if id, ok := c.typeSigLookup[k]; ok {
		return id
	}
	id := TypeSigID(c.TypeSigs.Alloc(v))
	c.typeSigLookup[k] = id
	return id
}

// BuiltinTypeSig returns the (shared) signature id for a builtin type.
func (c *Ctx) BuiltinTypeSig(b BuiltinType) TypeSigID {
	return c.GetTypeSig(TypeSigValue{Kind: TypeSigBuiltin, Builtin: b})
}

// FreshTypeVar allocates a never-before-seen type variable; it is never
// hash-consed against another variable since each one is a distinct
// unknown, even if they end up unifying to the same concrete type later.
func (c *Ctx) FreshTypeVar() TypeSigID {
	c.nextTypeVar++
	return TypeSigID(c.TypeSigs.Alloc(TypeSigValue{Kind: TypeSigVariable, VarID: c.nextTypeVar}))
}

func (c *Ctx) TypeSig(id TypeSigID) TypeSigValue {
	return c.TypeSigs.Get(int(id))
}

// ReplaceTypeSig overwrites a variable/function's in-place fields during
// late completion (e.g. once a Function's argument types are known). Since
// content changes, the old hash-cons key is left stale in the lookup map;
// callers must not rely on further GetTypeSig calls re-finding this id by
// its original content — this is only used to complete LateInit-style slots
// that are never looked up again by value.
func (c *Ctx) ReplaceTypeSig(id TypeSigID, v TypeSigValue) {
	c.TypeSigs.Set(int(id), v)
}

func mkTypeRef(sig TypeSigID, ctxKind TypeSigContextKind, index, owner int) TypeRef {
	return TypeRef{Sig: sig, Ctx: TypeSigContext{Kind: ctxKind, Index: index, Owner: owner}}
}

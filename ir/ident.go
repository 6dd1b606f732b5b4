package ir

import "github.com/ku-lang/kujs/lexer"

// IdentID addresses an IdentValue in Ctx.Idents.
type IdentID int

// IdentKind tags what stage of resolution an identifier has reached.
type IdentKind int

const (
	// Unresolved idents are produced by lower and rewritten in place by
	// resolve; one must never survive into typecheck or emit.
	IdentUnresolved IdentKind = iota
	IdentResolvedNamed
	IdentResolvedAnonymous
	IdentResolvedBuiltin
)

// IdentParentKind says which tree slot an ident occupies, which in turn
// says what lookup strategy resolve must use for it (a struct attribute
// name is never looked up in the enclosing scope, for example).
type IdentParentKind int

const (
	IdentParentDefault IdentParentKind = iota
	IdentParentStructInitAttrName
	IdentParentStructAccessAttrName
	IdentParentEnumInitValueName
	IdentParentMemberAccessName
	IdentParentTypeSigName
)

// IdentParent records the owning node so a diagnostic can point back at it
// and so resolve can special-case attribute/member-name slots.
type IdentParent struct {
	Kind     IdentParentKind
	OwnerStmt StmtID
	OwnerExpr ExprID
	HasStmt   bool
	HasExpr   bool
}

// ResolvedKind says what kind of declaration a resolved ident's
// ResolvedTarget fields point at. Mirrors symbols.SymbolKind, duplicated
// here (rather than imported) because symbols imports ir and a back-import
// would cycle.
type ResolvedKind int

const (
	ResolvedNone ResolvedKind = iota
	ResolvedVariable
	ResolvedFunction
	ResolvedFunctionArg
	ResolvedStruct
	ResolvedStructAttr
	ResolvedEnum
	ResolvedEnumValue
)

// ResolvedTarget is the ir-native description of what a resolved ident
// refers to: exactly one of these id fields is meaningful, selected by
// Kind, mirroring symbols.SymbolValue's shape so resolve can copy it
// straight across without a further table lookup at typecheck time.
type ResolvedTarget struct {
	Kind       ResolvedKind
	VarDecl    StmtID
	Func       FuncID
	FuncArgIdx int
	Struct     StructID
	StructAttr StructAttrID
	Enum       EnumID
	EnumValue  EnumValueID
}

// IdentValue is the arena-held payload of an identifier occurrence.
type IdentValue struct {
	Kind    IdentKind
	Name    string
	Span    lexer.Span
	Parent  IdentParent
	Builtin BuiltinType // valid when Kind == IdentResolvedBuiltin

	// Target is set by resolve once Kind graduates away from Unresolved
	// (IdentResolvedAnonymous/IdentResolvedBuiltin idents never populate it).
	Target ResolvedTarget
}

// HasTarget reports whether resolve has populated Target.
func (v IdentValue) HasTarget() bool { return v.Target.Kind != ResolvedNone }

// MakeIdent allocates an already-resolved, named identifier.
func (c *Ctx) MakeIdent(name string, span lexer.Span, parent IdentParent) IdentID {
	return IdentID(c.Idents.Alloc(IdentValue{
		Kind:   IdentResolvedNamed,
		Name:   name,
		Span:   span,
		Parent: parent,
	}))
}

// MakeUnresolvedIdent allocates an ident still awaiting resolution.
func (c *Ctx) MakeUnresolvedIdent(name string, span lexer.Span, parent IdentParent) IdentID {
	return IdentID(c.Idents.Alloc(IdentValue{
		Kind:   IdentUnresolved,
		Name:   name,
		Span:   span,
		Parent: parent,
	}))
}

// MakeResolvedIdent allocates an identifier that is already resolved,
// naming a symbol lower/resolve could not name directly (the applier
// constructing an EnumInitExpr from a previously anonymous member access
// has no source ident for the enum name to reuse).
func (c *Ctx) MakeResolvedIdent(name string, span lexer.Span, target ResolvedTarget) IdentID {
	return IdentID(c.Idents.Alloc(IdentValue{
		Kind:   IdentResolvedNamed,
		Name:   name,
		Span:   span,
		Target: target,
	}))
}

// MakeAnonIdent allocates an identifier for a scope that has no source
// name of its own (a struct-init block, a function literal). The name is
// still human-readable for logging/diagnostics; uniqueness across reruns is
// guaranteed separately by the caller minting a fresh uuid-suffixed scope
// name (see lower.anonScopeName).
func (c *Ctx) MakeAnonIdent(scopeName string, span lexer.Span, parent IdentParent) IdentID {
	return IdentID(c.Idents.Alloc(IdentValue{
		Kind:   IdentResolvedAnonymous,
		Name:   scopeName,
		Span:   span,
		Parent: parent,
	}))
}

// MakeBuiltinIdent allocates an identifier naming one of the builtin types.
func (c *Ctx) MakeBuiltinIdent(b BuiltinType, span lexer.Span, parent IdentParent) IdentID {
	return IdentID(c.Idents.Alloc(IdentValue{
		Kind:    IdentResolvedBuiltin,
		Name:    b.String(),
		Span:    span,
		Parent:  parent,
		Builtin: b,
	}))
}

func (c *Ctx) Ident(id IdentID) IdentValue {
	return c.Idents.Get(int(id))
}

func (c *Ctx) SetIdent(id IdentID, v IdentValue) {
	c.Idents.Set(int(id), v)
}

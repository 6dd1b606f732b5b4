package ir

import "github.com/ku-lang/kujs/lexer"

// StmtID, ExprID and the rest address their respective arenas in Ctx. They
// are the only way one IR node ever refers to another; nothing in this
// package holds a Go pointer to a sibling node.
type (
	StmtID           int
	ExprID           int
	FuncID           int
	StructID         int
	StructAttrID     int
	EnumID           int
	EnumValueID      int
	StmtBlockID      int
	StructInitValueID int
)

// Stmt is implemented by every statement-position node. Stored by value
// inside Ctx.Stmts, so the interface value itself is the payload — callers
// never hold a *Stmt across a mutation, they re-Get it by StmtID.
type Stmt interface {
	isStmt()
	StmtSpan() lexer.Span
}

// Expr is implemented by every expression-position node.
type Expr interface {
	isExpr()
	ExprSpan() lexer.Span
}

// --- statements ---

type VarDeclStmt struct {
	Name    IdentID
	Mutable bool
	TypeSig *TypeRef // explicit annotation; nil if the source omitted one
	Value   ExprID
	Span    lexer.Span
}

func (VarDeclStmt) isStmt()                  {}
func (s VarDeclStmt) StmtSpan() lexer.Span   { return s.Span }

type FunctionDeclStmt struct {
	Name IdentID
	Func FuncID
	Span lexer.Span
}

func (FunctionDeclStmt) isStmt()                { }
func (s FunctionDeclStmt) StmtSpan() lexer.Span { return s.Span }

type StructDeclStmt struct {
	Name   IdentID
	Struct StructID
	Span   lexer.Span
}

func (StructDeclStmt) isStmt()                { }
func (s StructDeclStmt) StmtSpan() lexer.Span { return s.Span }

type EnumDeclStmt struct {
	Name IdentID
	Enum EnumID
	Span lexer.Span
}

func (EnumDeclStmt) isStmt()                { }
func (s EnumDeclStmt) StmtSpan() lexer.Span { return s.Span }

type ExpressionStmt struct {
	Value ExprID
	Span  lexer.Span
}

func (ExpressionStmt) isStmt()                { }
func (s ExpressionStmt) StmtSpan() lexer.Span { return s.Span }

type ReturnStmt struct {
	Value    ExprID
	HasValue bool
	Span     lexer.Span
}

func (ReturnStmt) isStmt()                { }
func (s ReturnStmt) StmtSpan() lexer.Span { return s.Span }

// --- expressions ---

type StringLiteralExpr struct {
	Value string
	Span  lexer.Span
}

func (StringLiteralExpr) isExpr()                { }
func (e StringLiteralExpr) ExprSpan() lexer.Span { return e.Span }

type NumberLiteralExpr struct {
	Raw  string // source text, preserved so emit round-trips literally
	Span lexer.Span
}

func (NumberLiteralExpr) isExpr()                { }
func (e NumberLiteralExpr) ExprSpan() lexer.Span { return e.Span }

type BoolLiteralExpr struct {
	Value bool
	Span  lexer.Span
}

func (BoolLiteralExpr) isExpr()                { }
func (e BoolLiteralExpr) ExprSpan() lexer.Span { return e.Span }

type IdentifierExpr struct {
	Ident IdentID
	Span  lexer.Span
}

func (IdentifierExpr) isExpr()                { }
func (e IdentifierExpr) ExprSpan() lexer.Span { return e.Span }

type FunctionExpr struct {
	Func      FuncID
	ScopeName IdentID // anonymous scope ident minted at lowering time
	Span      lexer.Span
}

func (FunctionExpr) isExpr()                { }
func (e FunctionExpr) ExprSpan() lexer.Span { return e.Span }

type FunctionCallExpr struct {
	Callee ExprID
	Args   []ExprID
	Span   lexer.Span
}

func (FunctionCallExpr) isExpr()                { }
func (e FunctionCallExpr) ExprSpan() lexer.Span { return e.Span }

type StructInitExpr struct {
	StructName IdentID
	ScopeName  IdentID // anonymous scope minted at lowering time, see ir.Ctx.MakeAnonIdent
	Values     []StructInitValueID
	Span       lexer.Span
}

func (StructInitExpr) isExpr()                { }
func (e StructInitExpr) ExprSpan() lexer.Span { return e.Span }

// StructInitValue is one `attr: value` pair inside a struct-init literal.
type StructInitValue struct {
	AttrName IdentID
	Value    ExprID
	Span     lexer.Span
}

type StructAccessExpr struct {
	Object   ExprID
	AttrName IdentID
	Span     lexer.Span
}

func (StructAccessExpr) isExpr()                { }
func (e StructAccessExpr) ExprSpan() lexer.Span { return e.Span }

type TupleExpr struct {
	Items []ExprID
	Span  lexer.Span
}

func (TupleExpr) isExpr()                { }
func (e TupleExpr) ExprSpan() lexer.Span { return e.Span }

type TupleAccessExpr struct {
	Object ExprID
	Index  int
	Span   lexer.Span
}

func (TupleAccessExpr) isExpr()                { }
func (e TupleAccessExpr) ExprSpan() lexer.Span { return e.Span }

type EnumInitExpr struct {
	EnumName  IdentID
	ValueName IdentID
	Args      []ExprID
	Span      lexer.Span
}

func (EnumInitExpr) isExpr()                { }
func (e EnumInitExpr) ExprSpan() lexer.Span { return e.Span }

// UnresolvedMemberAccessExpr is the ambiguous `a.b` shape lowering produces
// whenever it cannot yet tell whether b names a struct attribute or an enum
// value; resolve/typecheck rewrite it into StructAccessExpr or EnumInitExpr
// once the object's type (or the identifier's symbol) disambiguates it. One
// surviving to emit is an internal error.
//
// HasObject is false for the anonymous enum-init form `.variant(args)`
// (Object is meaningless then); resolve leaves such nodes untouched, since
// disambiguating them needs a concrete type, not a symbol-table lookup —
// typecheck's applier rewrites them into EnumInitExpr once inference has
// run. Args is only ever populated for the anonymous form: it carries the
// call's arguments directly on this node (rather than via a wrapping
// FunctionCallExpr, the named form's shape) so they flow with it through
// the rerun loop and land in the EnumInitExpr the applier builds.
type UnresolvedMemberAccessExpr struct {
	HasObject bool
	Object    ExprID
	Member    IdentID
	Args      []ExprID
	Span      lexer.Span
}

func (UnresolvedMemberAccessExpr) isExpr()                { }
func (e UnresolvedMemberAccessExpr) ExprSpan() lexer.Span { return e.Span }

// EscapeBlockExpr is a verbatim-emitted chunk of target-language code.
// TypeSig is nil for a bare `@{...}` block (its result type is Untyped,
// coercible into whatever context expects) and set for an annotated
// `@[Type]{...}` block.
type EscapeBlockExpr struct {
	Code    string
	TypeSig *TypeRef
	Span    lexer.Span
}

func (EscapeBlockExpr) isExpr()                { }
func (e EscapeBlockExpr) ExprSpan() lexer.Span { return e.Span }

type AssignmentExpr struct {
	Target ExprID
	Value  ExprID
	Span   lexer.Span
}

func (AssignmentExpr) isExpr()                { }
func (e AssignmentExpr) ExprSpan() lexer.Span { return e.Span }

// --- composite declarations ---

// FunctionArg is one declared parameter of a Function.
type FunctionArg struct {
	Name    IdentID
	TypeSig TypeRef
}

// Function backs both FunctionDeclStmt and FunctionExpr (a function
// literal is the same shape as a named declaration's body). ReturnType and
// Body are LateInit because FunctionArg idents are allocated with a Parent
// pointing at the owning FuncID before the Function value describing that
// very FuncID is complete.
type Function struct {
	Args       []FunctionArg
	ReturnType LateInit[TypeRef]
	Body       LateInit[StmtBlockID]
	Span       lexer.Span
}

type StmtBlock struct {
	Stmts []StmtID
}

type Struct struct {
	Name  IdentID
	Attrs []StructAttrID
	Span  lexer.Span
}

type StructAttr struct {
	Name    IdentID
	TypeSig *TypeRef // nil when inferred purely from Default
	Default *ExprID  // nil when the attribute has no default value
	Span    lexer.Span
}

type Enum struct {
	Name   IdentID
	Values []EnumValueID
	Span   lexer.Span
}

// EnumValue is one tagged variant of an enum, with an optional tuple of
// carried-argument types (`Foo(Number, String);`).
type EnumValue struct {
	Name  IdentID
	Items []TypeRef
	Span  lexer.Span
}

// Package ast holds the untyped parse tree produced by parser.Parse. It is
// a thin, name-addressed tree — no scoping, no resolved identifiers, no
// types beyond what the source text spells out. lower.Lower is the single
// conversion function that turns one of these into the arena-addressed,
// symbol-resolved ir.Module the rest of the compiler operates on.
package ast

import "github.com/ku-lang/kujs/lexer"

// File is a whole parsed source file: a flat top-level statement list.
type File struct {
	Stmts []Stmt
}

// Stmt is implemented by every top-level/block-level parse-tree node.
type Stmt interface {
	isStmt()
	Span() lexer.Span
}

// Expr is implemented by every expression parse-tree node.
type Expr interface {
	isExpr()
	Span() lexer.Span
}

// TypeExpr is implemented by every parsed type annotation.
type TypeExpr interface {
	isTypeExpr()
	Span() lexer.Span
}

// --- type annotations ---

type NamedType struct {
	Name string
	Sp   lexer.Span
}

func (NamedType) isTypeExpr()        {}
func (t NamedType) Span() lexer.Span { return t.Sp }

type FuncType struct {
	Args   []TypeExpr
	Return TypeExpr
	Sp     lexer.Span
}

func (FuncType) isTypeExpr()        {}
func (t FuncType) Span() lexer.Span { return t.Sp }

type TupleType struct {
	Items []TypeExpr
	Sp    lexer.Span
}

func (TupleType) isTypeExpr()        {}
func (t TupleType) Span() lexer.Span { return t.Sp }

// --- declarations shared by func decl/expr ---

type Param struct {
	Name string
	Type TypeExpr
	Sp   lexer.Span
}

type StructAttrDecl struct {
	Name    string
	Type    TypeExpr // nil if omitted
	Default Expr     // nil if omitted
	Sp      lexer.Span
}

type EnumValueDecl struct {
	Name  string
	Items []TypeExpr
	Sp    lexer.Span
}

// --- statements ---

type VarDecl struct {
	Name    string
	Mutable bool
	Type    TypeExpr // nil if omitted
	Value   Expr
	Sp      lexer.Span
}

func (VarDecl) isStmt()          {}
func (s VarDecl) Span() lexer.Span { return s.Sp }

type FuncDecl struct {
	Name       string
	Params     []Param
	ReturnType TypeExpr // nil if omitted
	Body       []Stmt
	Sp         lexer.Span
}

func (FuncDecl) isStmt()          {}
func (s FuncDecl) Span() lexer.Span { return s.Sp }

type StructDecl struct {
	Name  string
	Attrs []StructAttrDecl
	Sp    lexer.Span
}

func (StructDecl) isStmt()          {}
func (s StructDecl) Span() lexer.Span { return s.Sp }

type EnumDecl struct {
	Name   string
	Values []EnumValueDecl
	Sp     lexer.Span
}

func (EnumDecl) isStmt()          {}
func (s EnumDecl) Span() lexer.Span { return s.Sp }

type ExprStmt struct {
	Value Expr
	Sp    lexer.Span
}

func (ExprStmt) isStmt()          {}
func (s ExprStmt) Span() lexer.Span { return s.Sp }

type Return struct {
	Value    Expr // nil if HasValue is false
	HasValue bool
	Sp       lexer.Span
}

func (Return) isStmt()          {}
func (s Return) Span() lexer.Span { return s.Sp }

// --- expressions ---

type StringLit struct {
	Value string
	Sp    lexer.Span
}

func (StringLit) isExpr()          {}
func (e StringLit) Span() lexer.Span { return e.Sp }

type NumberLit struct {
	Raw string
	Sp  lexer.Span
}

func (NumberLit) isExpr()          {}
func (e NumberLit) Span() lexer.Span { return e.Sp }

type BoolLit struct {
	Value bool
	Sp    lexer.Span
}

func (BoolLit) isExpr()          {}
func (e BoolLit) Span() lexer.Span { return e.Sp }

type Ident struct {
	Name string
	Sp   lexer.Span
}

func (Ident) isExpr()          {}
func (e Ident) Span() lexer.Span { return e.Sp }

type FuncLit struct {
	Params     []Param
	ReturnType TypeExpr // nil if omitted
	Body       []Stmt
	Sp         lexer.Span
}

func (FuncLit) isExpr()          {}
func (e FuncLit) Span() lexer.Span { return e.Sp }

type Call struct {
	Callee Expr
	Args   []Expr
	Sp     lexer.Span
}

func (Call) isExpr()          {}
func (e Call) Span() lexer.Span { return e.Sp }

type StructInitField struct {
	Name  string
	Value Expr
	Sp    lexer.Span
}

type StructInit struct {
	Name   string
	Fields []StructInitField
	Sp     lexer.Span
}

func (StructInit) isExpr()          {}
func (e StructInit) Span() lexer.Span { return e.Sp }

// MemberAccess is the ambiguous `a.b` form: the parser cannot tell whether
// b names a struct attribute, an enum value, or a tuple index (`a.0` is
// parsed separately as TupleAccess since its member token is numeric).
// lower turns this into ir.UnresolvedMemberAccessExpr verbatim; resolve and
// typecheck are what disambiguate it.
//
// Object is nil for the anonymous enum-init form `.variant(args)`: the
// leading dot has no object to its left, and which enum is meant is only
// knowable from the surrounding expected type once inference has run. Args
// is only populated in that case too — the parser consumes the call's
// argument list itself instead of leaving it to a wrapping Call node,
// since nothing else would later know to fold the two back together.
type MemberAccess struct {
	Object Expr // nil for the anonymous `.variant` form
	Member string
	Args   []Expr // only set when Object == nil
	Sp     lexer.Span
}

func (MemberAccess) isExpr()          {}
func (e MemberAccess) Span() lexer.Span { return e.Sp }

type Tuple struct {
	Items []Expr
	Sp    lexer.Span
}

func (Tuple) isExpr()          {}
func (e Tuple) Span() lexer.Span { return e.Sp }

type TupleAccess struct {
	Object Expr
	Index  int
	Sp     lexer.Span
}

func (TupleAccess) isExpr()          {}
func (e TupleAccess) Span() lexer.Span { return e.Sp }

// EscapeBlock is a verbatim-JS `@[T]{ ... }` or untyped `@{ ... }` block;
// Type is nil for the untyped form.
type EscapeBlock struct {
	Type TypeExpr
	Code string
	Sp   lexer.Span
}

func (EscapeBlock) isExpr()          {}
func (e EscapeBlock) Span() lexer.Span { return e.Sp }

type Assignment struct {
	Target Expr
	Value  Expr
	Sp     lexer.Span
}

func (Assignment) isExpr()          {}
func (e Assignment) Span() lexer.Span { return e.Sp }

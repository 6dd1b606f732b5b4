// Package diag is the compiler's error taxonomy: one Go interface plus a
// concrete struct per failure shape, the idiomatic replacement for the
// tagged union (`enum TranspilerError`/`enum TypeCheckerError`) the
// original implementation this specification was distilled from used.
// Every stage returns a diag.Error instead of exiting the process; only
// cmd/kujs turns one into a process exit code.
package diag

import "github.com/ku-lang/kujs/lexer"

// Kind discriminates the variants of Error, so callers (and the
// property-based fault-injection tests) can switch on failure shape
// without a type assertion.
type Kind int

const (
	KindParse Kind = iota
	KindUnknownIdent
	KindUnknownEnumValue
	KindDuplicateDeclaration
	KindRecursiveLet
	KindConflictingTypes
	KindAssignment
	KindStruct
	KindFunction
	KindEnumInitArgCountMismatch
	KindAnonymousEnumInitNonEnum
	KindUnresolvableTypeConstraints
	KindUndeterminableTypes
	KindIdentNotExpression
	KindCallNonFunction
	KindTupleAccessOutOfBounds
	KindNotAType
	KindWrite
)

var kindNames = [...]string{
	"parse-error", "unknown-identifier", "unknown-enum-value",
	"duplicate-declaration", "recursive-let", "conflicting-types",
	"assignment-error", "struct-error", "function-error",
	"enum-init-arg-count-mismatch", "anonymous-enum-init-non-enum",
	"unresolvable-type-constraints", "undeterminable-types",
	"ident-not-expression", "call-non-function", "tuple-access-out-of-bounds",
	"not-a-type", "write-error",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown-error"
	}
	return kindNames[k]
}

// Error is implemented by every diagnostic this compiler produces.
type Error interface {
	error
	Kind() Kind
	Span() lexer.Span
}

// ParseError wraps a lexical or syntactic failure.
type ParseError struct {
	Msg string
	Sp  lexer.Span
}

func (e *ParseError) Error() string     { return "parse error: " + e.Msg }
func (e *ParseError) Kind() Kind        { return KindParse }
func (e *ParseError) Span() lexer.Span  { return e.Sp }

// UnknownIdentError is raised by resolve when an identifier has no binding
// visible from its point of use. Suggestions is a Levenshtein-ranked pool
// of in-scope names that might be what was meant.
type UnknownIdentError struct {
	Name        string
	Sp          lexer.Span
	Suggestions []string
}

func (e *UnknownIdentError) Error() string    { return "unknown identifier `" + e.Name + "`" }
func (e *UnknownIdentError) Kind() Kind       { return KindUnknownIdent }
func (e *UnknownIdentError) Span() lexer.Span { return e.Sp }

// UnknownEnumValueError is raised when an EnumInit names a value the enum
// declaration does not have.
type UnknownEnumValueError struct {
	EnumName    string
	ValueName   string
	Sp          lexer.Span
	Suggestions []string
}

func (e *UnknownEnumValueError) Error() string {
	return "enum `" + e.EnumName + "` has no value `" + e.ValueName + "`"
}
func (e *UnknownEnumValueError) Kind() Kind       { return KindUnknownEnumValue }
func (e *UnknownEnumValueError) Span() lexer.Span { return e.Sp }

// DuplicateDeclarationError is raised when a name is declared twice in the
// same scope.
type DuplicateDeclarationError struct {
	Name string
	Sp   lexer.Span
}

func (e *DuplicateDeclarationError) Error() string    { return "`" + e.Name + "` is already declared in this scope" }
func (e *DuplicateDeclarationError) Kind() Kind       { return KindDuplicateDeclaration }
func (e *DuplicateDeclarationError) Span() lexer.Span { return e.Sp }

// RecursiveLetError is raised when a `let` initialiser references its own
// name (disallowed — only function declarations may be recursive).
type RecursiveLetError struct {
	Name string
	Sp   lexer.Span
}

func (e *RecursiveLetError) Error() string    { return "`" + e.Name + "` cannot reference itself in its own initialiser" }
func (e *RecursiveLetError) Kind() Kind       { return KindRecursiveLet }
func (e *RecursiveLetError) Span() lexer.Span { return e.Sp }

// ConflictingTypesError is raised by unification when two concrete types
// that are neither equal nor coercible meet.
type ConflictingTypesError struct {
	Expected, Actual string
	Sp               lexer.Span
}

func (e *ConflictingTypesError) Error() string {
	return "expected type `" + e.Expected + "`, found `" + e.Actual + "`"
}
func (e *ConflictingTypesError) Kind() Kind       { return KindConflictingTypes }
func (e *ConflictingTypesError) Span() lexer.Span { return e.Sp }

// AssignmentError covers lvalue-rule violations (assigning to an
// immutable `let`, assigning to a non-lvalue expression).
type AssignmentError struct {
	Reason string
	Sp     lexer.Span
}

func (e *AssignmentError) Error() string    { return e.Reason }
func (e *AssignmentError) Kind() Kind       { return KindAssignment }
func (e *AssignmentError) Span() lexer.Span { return e.Sp }

// StructError covers struct violations: a required attribute with no
// default left unset in a struct init, an unknown attribute name in a
// struct init or access, and a struct access on a non-struct value.
type StructError struct {
	Reason string
	Sp     lexer.Span
}

func (e *StructError) Error() string    { return e.Reason }
func (e *StructError) Kind() Kind       { return KindStruct }
func (e *StructError) Span() lexer.Span { return e.Sp }

// FunctionError covers call-arity/shape violations.
type FunctionError struct {
	Reason string
	Sp     lexer.Span
}

func (e *FunctionError) Error() string    { return e.Reason }
func (e *FunctionError) Kind() Kind       { return KindFunction }
func (e *FunctionError) Span() lexer.Span { return e.Sp }

// EnumInitArgCountMismatchError is raised when an enum-init's argument
// count does not match its value's declared arity.
type EnumInitArgCountMismatchError struct {
	Expected, Actual int
	Sp               lexer.Span
}

func (e *EnumInitArgCountMismatchError) Error() string {
	return "enum value expects arguments, argument count mismatch"
}
func (e *EnumInitArgCountMismatchError) Kind() Kind       { return KindEnumInitArgCountMismatch }
func (e *EnumInitArgCountMismatchError) Span() lexer.Span { return e.Sp }

// AnonymousEnumInitNonEnumError is raised when an anonymous `.variant(...)`
// init is inferred to have a concrete, non-enum type.
type AnonymousEnumInitNonEnumError struct {
	TypeName string
	Sp       lexer.Span
}

func (e *AnonymousEnumInitNonEnumError) Error() string {
	return "`" + e.TypeName + "` is not an enum"
}
func (e *AnonymousEnumInitNonEnumError) Kind() Kind       { return KindAnonymousEnumInitNonEnum }
func (e *AnonymousEnumInitNonEnumError) Span() lexer.Span { return e.Sp }

// UnresolvableTypeConstraintsError is raised when the unification queue
// still has constraints after the rerun loop gives up.
type UnresolvableTypeConstraintsError struct {
	Count int
	Sp    lexer.Span
}

func (e *UnresolvableTypeConstraintsError) Error() string {
	return "could not resolve all type constraints"
}
func (e *UnresolvableTypeConstraintsError) Kind() Kind       { return KindUnresolvableTypeConstraints }
func (e *UnresolvableTypeConstraintsError) Span() lexer.Span { return e.Sp }

// UndeterminableTypesError is raised when a type variable never resolved
// to a concrete type across every rerun.
type UndeterminableTypesError struct {
	Expected string // "enum", "struct", or "" when no specific shape was expected
	Sp       lexer.Span
}

func (e *UndeterminableTypesError) Error() string {
	if e.Expected != "" {
		return "could not determine a concrete " + e.Expected + " type here"
	}
	return "could not determine a concrete type here"
}
func (e *UndeterminableTypesError) Kind() Kind       { return KindUndeterminableTypes }
func (e *UndeterminableTypesError) Span() lexer.Span { return e.Sp }

// IdentNotExpressionError is raised when an identifier resolves to a
// symbol (a struct name, an enum name) that cannot be used as a bare
// value expression.
type IdentNotExpressionError struct {
	Name string
	Sp   lexer.Span
}

func (e *IdentNotExpressionError) Error() string    { return "`" + e.Name + "` cannot be used as a value" }
func (e *IdentNotExpressionError) Kind() Kind       { return KindIdentNotExpression }
func (e *IdentNotExpressionError) Span() lexer.Span { return e.Sp }

// CallNonFunctionError is raised when a call expression's callee does not
// have a function type.
type CallNonFunctionError struct {
	TypeName string
	Sp       lexer.Span
}

func (e *CallNonFunctionError) Error() string    { return "cannot call a value of type `" + e.TypeName + "`" }
func (e *CallNonFunctionError) Kind() Kind       { return KindCallNonFunction }
func (e *CallNonFunctionError) Span() lexer.Span { return e.Sp }

// TupleAccessOutOfBoundsError is raised when `expr.N` names an index past
// the tuple's arity.
type TupleAccessOutOfBoundsError struct {
	Index, Len int
	Sp         lexer.Span
}

func (e *TupleAccessOutOfBoundsError) Error() string {
	return "tuple index out of bounds"
}
func (e *TupleAccessOutOfBoundsError) Kind() Kind       { return KindTupleAccessOutOfBounds }
func (e *TupleAccessOutOfBoundsError) Span() lexer.Span { return e.Sp }

// NotATypeError is raised when a type annotation names a symbol that
// exists but does not denote a type (e.g. a variable or function name
// used where a struct/enum name was expected).
type NotATypeError struct {
	Name string
	Sp   lexer.Span
}

func (e *NotATypeError) Error() string    { return "`" + e.Name + "` is not a type" }
func (e *NotATypeError) Kind() Kind       { return KindNotAType }
func (e *NotATypeError) Span() lexer.Span { return e.Sp }

// WriteError wraps a failure from the underlying io.Writer during emit.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string    { return "write error: " + e.Err.Error() }
func (e *WriteError) Kind() Kind       { return KindWrite }
func (e *WriteError) Span() lexer.Span { return lexer.Span{} }
func (e *WriteError) Unwrap() error    { return e.Err }

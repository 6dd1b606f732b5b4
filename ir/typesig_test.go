package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinTypeSigIsHashConsed(t *testing.T) {
	c := NewCtx()
	a := c.BuiltinTypeSig(TypeNumber)
	b := c.BuiltinTypeSig(TypeNumber)
	assert.Equal(t, a, b, "two requests for the same builtin must share one TypeSigID")
}

func TestDistinctBuiltinsGetDistinctSigs(t *testing.T) {
	c := NewCtx()
	n := c.BuiltinTypeSig(TypeNumber)
	s := c.BuiltinTypeSig(TypeString)
	assert.NotEqual(t, n, s)
}

func TestStructuralTypesAreHashConsedByShape(t *testing.T) {
	c := NewCtx()
	n := c.BuiltinTypeSig(TypeNumber)
	b := c.BuiltinTypeSig(TypeBoolean)

	t1 := c.GetTypeSig(TypeSigValue{Kind: TypeSigTuple, TupleMembers: []TypeSigID{n, b}})
	t2 := c.GetTypeSig(TypeSigValue{Kind: TypeSigTuple, TupleMembers: []TypeSigID{n, b}})
	assert.Equal(t, t1, t2)

	t3 := c.GetTypeSig(TypeSigValue{Kind: TypeSigTuple, TupleMembers: []TypeSigID{b, n}})
	assert.NotEqual(t, t1, t3, "tuple member order is part of its identity")
}

func TestFreshTypeVarsAreNeverHashConsedTogether(t *testing.T) {
	c := NewCtx()
	v1 := c.FreshTypeVar()
	v2 := c.FreshTypeVar()
	assert.NotEqual(t, v1, v2, "every FreshTypeVar call mints a distinct unknown")
}

func TestReplaceTypeSigOverwritesContentInPlace(t *testing.T) {
	c := NewCtx()
	v := c.FreshTypeVar()
	c.ReplaceTypeSig(v, TypeSigValue{Kind: TypeSigBuiltin, Builtin: TypeNumber})
	assert.Equal(t, TypeSigBuiltin, c.TypeSig(v).Kind)
	assert.Equal(t, TypeNumber, c.TypeSig(v).Builtin)
}

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAllocReturnsStableIncreasingIDs(t *testing.T) {
	var a Arena[string]
	id0 := a.Alloc("first")
	id1 := a.Alloc("second")
	assert.Equal(t, 0, id0)
	assert.Equal(t, 1, id1)
	assert.Equal(t, "first", a.Get(id0))
	assert.Equal(t, "second", a.Get(id1))
}

func TestArenaSetOverwritesInPlace(t *testing.T) {
	var a Arena[int]
	id := a.Alloc(1)
	a.Set(id, 2)
	assert.Equal(t, 2, a.Get(id))
}

func TestArenaLen(t *testing.T) {
	var a Arena[int]
	assert.Equal(t, 0, a.Len())
	a.Alloc(1)
	a.Alloc(2)
	assert.Equal(t, 2, a.Len())
}

func TestLateInitPanicsBeforeSet(t *testing.T) {
	var l LateInit[int]
	assert.False(t, l.IsSet())
	assert.Panics(t, func() { l.Get() })
}

func TestLateInitGetAfterSet(t *testing.T) {
	var l LateInit[string]
	l.Set("value")
	require.True(t, l.IsSet())
	assert.Equal(t, "value", l.Get())
}

package diag

import (
	"strings"
	"testing"

	"github.com/ku-lang/kujs/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestRanksByDistance(t *testing.T) {
	got := Suggest([]string{"counter", "count", "counters", "other"}, "cunt")
	require.NotEmpty(t, got)
	assert.Equal(t, "count", got[0])
}

func TestSuggestExcludesExactMatch(t *testing.T) {
	got := Suggest([]string{"foo", "foobar"}, "foo")
	assert.NotContains(t, got, "foo")
}

func TestSuggestCapsAtMax(t *testing.T) {
	var candidates []string
	for i := 0; i < 20; i++ {
		candidates = append(candidates, strings.Repeat("a", i+1))
	}
	got := Suggest(candidates, "aaaa")
	assert.LessOrEqual(t, len(got), maxSuggestions)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unknown-identifier", KindUnknownIdent.String())
	assert.Equal(t, "unknown-error", Kind(999).String())
}

func TestRenderIncludesSpanAndSuggestions(t *testing.T) {
	src := lexer.NewSourcefileFromString("test.kujs", "let x = yz\n")
	sp := lexer.Span{StartLine: 1, StartChar: 9, EndLine: 1, EndChar: 11}
	err := &UnknownIdentError{Name: "yz", Sp: sp, Suggestions: []string{"x"}}

	out := Render(src, err)
	assert.Contains(t, out, "unknown identifier")
	assert.Contains(t, out, "test.kujs:1:9")
	assert.Contains(t, out, "did you mean")
	assert.Contains(t, out, "`x`")
}

func TestErrorKindsAreDistinct(t *testing.T) {
	var e Error = &ParseError{Msg: "x"}
	assert.Equal(t, KindParse, e.Kind())
}

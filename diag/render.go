package diag

import (
	"fmt"
	"strings"

	"github.com/ku-lang/kujs/lexer"
)

const (
	ansiRed    = "\x1b[31m"
	ansiBold   = "\x1b[1m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// Render formats err against src the way a terminal diagnostic should
// read: a one-line "error(kind): message" header, the file:line:col, the marked
// source span, and any "did you mean" suggestions.
func Render(src *lexer.Sourcefile, err Error) string {
	buf := new(strings.Builder)
	sp := err.Span()

	fmt.Fprintf(buf, "%s%serror(%s):%s %s\n", ansiBold, ansiRed, err.Kind(), ansiReset, err.Error())
	fmt.Fprintf(buf, "  --> %s:%d:%d\n", src.Name, sp.StartLine, sp.StartChar)
	buf.WriteString(src.MarkSpan(sp))

	if sug := suggestionsOf(err); len(sug) > 0 {
		fmt.Fprintf(buf, "%shelp:%s did you mean %s?\n", ansiYellow, ansiReset, joinBackticked(sug))
	}

	return buf.String()
}

func suggestionsOf(err Error) []string {
	switch e := err.(type) {
	case *UnknownIdentError:
		return e.Suggestions
	case *UnknownEnumValueError:
		return e.Suggestions
	default:
		return nil
	}
}

func joinBackticked(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "`" + n + "`"
	}
	return strings.Join(parts, ", ")
}

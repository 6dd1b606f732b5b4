package lexer

import (
	"bytes"
	"os"
	"strings"
)

// Sourcefile holds one source file's raw text plus whatever Lex has
// produced from it so far.
type Sourcefile struct {
	Path     string
	Name     string
	Contents []rune
	NewLines []int
	Tokens   []*Token
}

// NewSourcefile reads filepath off disk and returns a Sourcefile ready to
// be passed to Lex.
func NewSourcefile(filepath string) (*Sourcefile, error) {
	name := filepath
	if i := strings.LastIndex(filepath, "/"); i >= 0 {
		name = filepath[i+1:]
	}

	sf := &Sourcefile{Name: name, Path: filepath}
	sf.NewLines = append(sf.NewLines, -1, -1)

	contents, err := os.ReadFile(sf.Path)
	if err != nil {
		return nil, err
	}

	sf.Contents = []rune(string(contents))
	return sf, nil
}

// NewSourcefileFromString builds a Sourcefile directly from in-memory
// source text, named name — the shape cmd/kujs uses for stdin input.
func NewSourcefileFromString(name, contents string) *Sourcefile {
	sf := &Sourcefile{Name: name, Path: name}
	sf.NewLines = append(sf.NewLines, -1, -1)
	sf.Contents = []rune(contents)
	return sf
}

// GetLine returns the text of the given 1-indexed line.
func (s *Sourcefile) GetLine(line int) string {
	if line+1 >= len(s.NewLines) {
		return ""
	}
	return string(s.Contents[s.NewLines[line]+1 : s.NewLines[line+1]])
}

const TabWidth = 4

// MarkPos renders the source line at pos followed by a caret line pointing
// at pos.Char.
func (s *Sourcefile) MarkPos(pos Position) string {
	buf := new(bytes.Buffer)

	lineString := s.GetLine(pos.Line)
	lineRunes := []rune(lineString)
	pad := pos.Char - 1

	buf.WriteString(strings.ReplaceAll(lineString, "\t", "    "))
	buf.WriteRune('\n')
	for i := 0; i < pad && i < len(lineRunes); i++ {
		spaces := 1
		if lineRunes[i] == '\t' {
			spaces = TabWidth
		}
		buf.WriteString(strings.Repeat(" ", spaces))
	}
	buf.WriteString("^\n")

	return buf.String()
}

// MarkSpan renders every source line covered by span, underlining the
// covered columns with `~`.
func (s *Sourcefile) MarkSpan(span Span) string {
	spanEnd := span.End()
	spanEnd.Char--
	if span.Start() == spanEnd {
		return s.MarkPos(span.Start())
	}

	buf := new(bytes.Buffer)
	for line := span.StartLine; line <= span.EndLine; line++ {
		lineString := s.GetLine(line)
		lineRunes := []rune(lineString)

		pad := 0
		if line == span.StartLine {
			pad = span.StartChar - 1
		}

		length := len(lineRunes)
		if line == span.EndLine {
			length = span.EndChar - span.StartChar
		}

		buf.WriteString(strings.ReplaceAll(lineString, "\t", "    "))
		buf.WriteRune('\n')

		for i := 0; i < pad && i < len(lineRunes); i++ {
			spaces := 1
			if lineRunes[i] == '\t' {
				spaces = TabWidth
			}
			buf.WriteString(strings.Repeat(" ", spaces))
		}
		for i := 0; i < length && i+pad < len(lineRunes); i++ {
			spaces := 1
			if lineRunes[i+pad] == '\t' {
				spaces = TabWidth
			}
			buf.WriteString(strings.Repeat("~", spaces))
		}
		buf.WriteRune('\n')
	}

	return buf.String()
}

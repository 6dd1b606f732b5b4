// Package parser turns a token stream from lexer into an ast.File. It is
// a small hand-written recursive-descent parser over the thin surface
// grammar this compiler accepts; kept deliberately simple since the
// parser, like the lexer, is a collaborator the rest of the pipeline
// consumes through one conversion function, not a module of its own.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ku-lang/kujs/ast"
	"github.com/ku-lang/kujs/lexer"
)

// Error is returned by Parse when the token stream does not match the
// grammar.
type Error struct {
	Pos lexer.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s:%d:%d] %s", e.Pos.Filename, e.Pos.Line, e.Pos.Char, e.Msg)
}

type parser struct {
	input   *lexer.Sourcefile
	current int
}

type parsePanic struct{ err *Error }

// Parse tokenizes and parses a whole source file into an ast.File.
func Parse(input *lexer.Sourcefile) (file *ast.File, err error) {
	toks, lexErr := lexer.Lex(input)
	if lexErr != nil {
		return nil, lexErr
	}
	input.Tokens = toks

	p := &parser{input: input}

	defer func() {
		if r := recover(); r != nil {
			pp, ok := r.(parsePanic)
			if !ok {
				panic(r)
			}
			err = pp.err
		}
	}()

	file = p.parseFile()
	return file, nil
}

func (p *parser) errTok(tok *lexer.Token, format string, args ...interface{}) {
	where := lexer.Position{Filename: p.input.Name, Line: 1, Char: 1}
	if tok != nil {
		where = tok.Where.Start()
	} else if len(p.input.Tokens) > 0 {
		where = p.input.Tokens[len(p.input.Tokens)-1].Where.End()
	}
	panic(parsePanic{&Error{Pos: where, Msg: fmt.Sprintf(format, args...)}})
}

func (p *parser) err(format string, args ...interface{}) {
	p.errTok(p.peek(0), format, args...)
}

func (p *parser) peek(ahead int) *lexer.Token {
	if p.current+ahead >= len(p.input.Tokens) {
		return nil
	}
	return p.input.Tokens[p.current+ahead]
}

func (p *parser) consume() *lexer.Token {
	tok := p.peek(0)
	p.current++
	return tok
}

func (p *parser) is(typ lexer.TokenType, contents string) bool {
	tok := p.peek(0)
	return tok != nil && tok.Type == typ && (contents == "" || tok.Contents == contents)
}

func (p *parser) accept(typ lexer.TokenType, contents string) *lexer.Token {
	if p.is(typ, contents) {
		return p.consume()
	}
	return nil
}

func (p *parser) expect(typ lexer.TokenType, contents string) *lexer.Token {
	if tok := p.accept(typ, contents); tok != nil {
		return tok
	}
	got := "EOF"
	if tok := p.peek(0); tok != nil {
		got = tok.Contents
	}
	p.err("expected `%s`, found `%s`", contents, got)
	return nil
}

func spanFrom(start lexer.Position, end *lexer.Token) lexer.Span {
	if end == nil {
		return lexer.Span{Filename: start.Filename, StartLine: start.Line, StartChar: start.Char}
	}
	return lexer.NewSpan(start, end.Where.End())
}

func (p *parser) startPos() lexer.Position {
	if tok := p.peek(0); tok != nil {
		return tok.Where.Start()
	}
	if len(p.input.Tokens) > 0 {
		return p.input.Tokens[len(p.input.Tokens)-1].Where.End()
	}
	return lexer.Position{Filename: p.input.Name, Line: 1, Char: 1}
}

// --- top level ---

func (p *parser) parseFile() *ast.File {
	var stmts []ast.Stmt
	for p.peek(0) != nil {
		stmts = append(stmts, p.parseStmt())
	}
	return &ast.File{Stmts: stmts}
}

func (p *parser) parseBlock() []ast.Stmt {
	p.expect(lexer.Separator, "{")
	var stmts []ast.Stmt
	for !p.is(lexer.Separator, "}") {
		if p.peek(0) == nil {
			p.err("unterminated block")
		}
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(lexer.Separator, "}")
	return stmts
}

func (p *parser) parseStmt() ast.Stmt {
	switch {
	case p.is(lexer.Identifier, KeywordLet):
		return p.parseVarDecl()
	case p.is(lexer.Identifier, KeywordFunc):
		return p.parseFuncDecl()
	case p.is(lexer.Identifier, KeywordStruct):
		return p.parseStructDecl()
	case p.is(lexer.Identifier, KeywordEnum):
		return p.parseEnumDecl()
	case p.is(lexer.Identifier, KeywordReturn):
		return p.parseReturn()
	default:
		start := p.startPos()
		e := p.parseExpr()
		p.accept(lexer.Separator, ";")
		return ast.ExprStmt{Value: e, Sp: spanFrom(start, p.lastConsumed())}
	}
}

// lastConsumed returns the token just before the cursor, used to close off
// a span after parsing a sub-rule that may or may not consume a trailing
// `;`.
func (p *parser) lastConsumed() *lexer.Token {
	if p.current == 0 {
		return nil
	}
	return p.input.Tokens[p.current-1]
}

func (p *parser) parseVarDecl() ast.Stmt {
	start := p.startPos()
	p.expect(lexer.Identifier, KeywordLet)
	mutable := p.accept(lexer.Identifier, KeywordMut) != nil
	name := p.expect(lexer.Identifier, "")

	var typ ast.TypeExpr
	if p.accept(lexer.Operator, ":") != nil {
		typ = p.parseType()
	}
	p.expect(lexer.Operator, "=")
	value := p.parseExpr()
	p.accept(lexer.Separator, ";")

	return ast.VarDecl{
		Name: name.Contents, Mutable: mutable, Type: typ, Value: value,
		Sp: spanFrom(start, p.lastConsumed()),
	}
}

func (p *parser) parseParams() []ast.Param {
	var params []ast.Param
	p.expect(lexer.Separator, "(")
	for !p.is(lexer.Separator, ")") {
		pstart := p.startPos()
		name := p.expect(lexer.Identifier, "")
		p.expect(lexer.Operator, ":")
		typ := p.parseType()
		params = append(params, ast.Param{Name: name.Contents, Type: typ, Sp: spanFrom(pstart, p.lastConsumed())})
		if p.accept(lexer.Separator, ",") == nil {
			break
		}
	}
	p.expect(lexer.Separator, ")")
	return params
}

func (p *parser) parseFuncDecl() ast.Stmt {
	start := p.startPos()
	p.expect(lexer.Identifier, KeywordFunc)
	name := p.expect(lexer.Identifier, "")
	params := p.parseParams()

	var ret ast.TypeExpr
	if p.accept(lexer.Operator, "->") != nil {
		ret = p.parseType()
	}
	body := p.parseBlock()

	return ast.FuncDecl{
		Name: name.Contents, Params: params, ReturnType: ret, Body: body,
		Sp: spanFrom(start, p.lastConsumed()),
	}
}

func (p *parser) parseStructDecl() ast.Stmt {
	start := p.startPos()
	p.expect(lexer.Identifier, KeywordStruct)
	name := p.expect(lexer.Identifier, "")
	p.expect(lexer.Separator, "{")

	var attrs []ast.StructAttrDecl
	for !p.is(lexer.Separator, "}") {
		astart := p.startPos()
		p.expect(lexer.Identifier, KeywordLet)
		attrName := p.expect(lexer.Identifier, "")

		var typ ast.TypeExpr
		if p.accept(lexer.Operator, ":") != nil {
			typ = p.parseType()
		}
		var def ast.Expr
		if p.accept(lexer.Operator, "=") != nil {
			def = p.parseExpr()
		}
		p.accept(lexer.Separator, ";")
		attrs = append(attrs, ast.StructAttrDecl{
			Name: attrName.Contents, Type: typ, Default: def,
			Sp: spanFrom(astart, p.lastConsumed()),
		})
	}
	p.expect(lexer.Separator, "}")

	return ast.StructDecl{Name: name.Contents, Attrs: attrs, Sp: spanFrom(start, p.lastConsumed())}
}

func (p *parser) parseEnumDecl() ast.Stmt {
	start := p.startPos()
	p.expect(lexer.Identifier, KeywordEnum)
	name := p.expect(lexer.Identifier, "")
	p.expect(lexer.Separator, "{")

	var values []ast.EnumValueDecl
	for !p.is(lexer.Separator, "}") {
		vstart := p.startPos()
		valName := p.expect(lexer.Identifier, "")

		var items []ast.TypeExpr
		if p.accept(lexer.Separator, "(") != nil {
			for !p.is(lexer.Separator, ")") {
				items = append(items, p.parseType())
				if p.accept(lexer.Separator, ",") == nil {
					break
				}
			}
			p.expect(lexer.Separator, ")")
		}
		p.accept(lexer.Separator, ";")
		values = append(values, ast.EnumValueDecl{Name: valName.Contents, Items: items, Sp: spanFrom(vstart, p.lastConsumed())})
	}
	p.expect(lexer.Separator, "}")

	return ast.EnumDecl{Name: name.Contents, Values: values, Sp: spanFrom(start, p.lastConsumed())}
}

func (p *parser) parseReturn() ast.Stmt {
	start := p.startPos()
	p.expect(lexer.Identifier, KeywordReturn)

	hasValue := !p.is(lexer.Separator, ";") && !p.is(lexer.Separator, "}")
	var value ast.Expr
	if hasValue {
		value = p.parseExpr()
	}
	p.accept(lexer.Separator, ";")

	return ast.Return{Value: value, HasValue: hasValue, Sp: spanFrom(start, p.lastConsumed())}
}

// --- types ---

func (p *parser) parseType() ast.TypeExpr {
	start := p.startPos()
	if p.accept(lexer.Separator, "(") != nil {
		var items []ast.TypeExpr
		for !p.is(lexer.Separator, ")") {
			items = append(items, p.parseType())
			if p.accept(lexer.Separator, ",") == nil {
				break
			}
		}
		p.expect(lexer.Separator, ")")

		if p.accept(lexer.Operator, "->") != nil {
			ret := p.parseType()
			return ast.FuncType{Args: items, Return: ret, Sp: spanFrom(start, p.lastConsumed())}
		}
		return ast.TupleType{Items: items, Sp: spanFrom(start, p.lastConsumed())}
	}

	name := p.expect(lexer.Identifier, "")
	return ast.NamedType{Name: name.Contents, Sp: spanFrom(start, p.lastConsumed())}
}

// --- expressions ---
//
// No arithmetic/boolean operators exist in this grammar — numeric and
// logical computation only happens inside escape blocks — so expression
// parsing is just primaries, postfix member/call/tuple-access chains, and
// a single right-associative assignment level on top.

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() ast.Expr {
	start := p.startPos()
	lhs := p.parsePostfix()
	if p.accept(lexer.Operator, "=") != nil {
		rhs := p.parseAssignment()
		return ast.Assignment{Target: lhs, Value: rhs, Sp: spanFrom(start, p.lastConsumed())}
	}
	return lhs
}

func (p *parser) parsePostfix() ast.Expr {
	start := p.startPos()
	e := p.parsePrimary()

	for {
		switch {
		case p.accept(lexer.Separator, ".") != nil:
			if tok := p.accept(lexer.Number, ""); tok != nil {
				idx, err := strconv.Atoi(tok.Contents)
				if err != nil {
					p.err("invalid tuple index `%s`", tok.Contents)
				}
				e = ast.TupleAccess{Object: e, Index: idx, Sp: spanFrom(start, p.lastConsumed())}
				continue
			}
			member := p.expect(lexer.Identifier, "")
			e = ast.MemberAccess{Object: e, Member: member.Contents, Sp: spanFrom(start, p.lastConsumed())}
		case p.is(lexer.Separator, "("):
			args := p.parseArgs()
			e = ast.Call{Callee: e, Args: args, Sp: spanFrom(start, p.lastConsumed())}
		default:
			return e
		}
	}
}

func (p *parser) parseArgs() []ast.Expr {
	p.expect(lexer.Separator, "(")
	var args []ast.Expr
	for !p.is(lexer.Separator, ")") {
		args = append(args, p.parseExpr())
		if p.accept(lexer.Separator, ",") == nil {
			break
		}
	}
	p.expect(lexer.Separator, ")")
	return args
}

func (p *parser) parsePrimary() ast.Expr {
	start := p.startPos()

	switch {
	case p.accept(lexer.Identifier, KeywordTrue) != nil:
		return ast.BoolLit{Value: true, Sp: spanFrom(start, p.lastConsumed())}
	case p.accept(lexer.Identifier, KeywordFalse) != nil:
		return ast.BoolLit{Value: false, Sp: spanFrom(start, p.lastConsumed())}
	case p.accept(lexer.Identifier, KeywordFunc) != nil:
		params := p.parseParams()
		var ret ast.TypeExpr
		if p.accept(lexer.Operator, "->") != nil {
			ret = p.parseType()
		}
		body := p.parseBlock()
		return ast.FuncLit{Params: params, ReturnType: ret, Body: body, Sp: spanFrom(start, p.lastConsumed())}
	case p.accept(lexer.Separator, ".") != nil:
		// Anonymous enum-init: `.variant(args)`, with no object to its left.
		// Which enum is meant is resolved later from the expected type.
		// The argument list is consumed right here rather than left for
		// parsePostfix's generic Call handling, since there is no object
		// expression for a later rewrite pass to fold it back onto.
		member := p.expect(lexer.Identifier, "")
		args := p.parseArgs()
		return ast.MemberAccess{Object: nil, Member: member.Contents, Args: args, Sp: spanFrom(start, p.lastConsumed())}
	}

	if tok := p.accept(lexer.String, ""); tok != nil {
		return ast.StringLit{Value: unescapeString(tok.Contents), Sp: spanFrom(start, p.lastConsumed())}
	}
	if tok := p.accept(lexer.Number, ""); tok != nil {
		return ast.NumberLit{Raw: tok.Contents, Sp: spanFrom(start, p.lastConsumed())}
	}
	if tok := p.accept(lexer.EscapeBlock, ""); tok != nil {
		typ, code := splitEscapeBlock(tok.Contents)
		var typeExpr ast.TypeExpr
		if typ != "" {
			typeExpr = ast.NamedType{Name: typ, Sp: tok.Where}
		}
		return ast.EscapeBlock{Type: typeExpr, Code: code, Sp: spanFrom(start, p.lastConsumed())}
	}
	if p.accept(lexer.Separator, "(") != nil {
		var items []ast.Expr
		trailingComma := false
		for !p.is(lexer.Separator, ")") {
			items = append(items, p.parseExpr())
			if p.accept(lexer.Separator, ",") == nil {
				break
			}
			trailingComma = true
		}
		p.expect(lexer.Separator, ")")
		if len(items) == 1 && !trailingComma {
			return items[0]
		}
		return ast.Tuple{Items: items, Sp: spanFrom(start, p.lastConsumed())}
	}
	if tok := p.peek(0); tok != nil && tok.Type == lexer.Identifier && !IsKeyword(tok.Contents) {
		p.consume()
		if p.is(lexer.Separator, "{") {
			return p.parseStructInit(tok.Contents, start)
		}
		return ast.Ident{Name: tok.Contents, Sp: spanFrom(start, p.lastConsumed())}
	}

	p.err("unexpected token in expression")
	return nil
}

func (p *parser) parseStructInit(name string, start lexer.Position) ast.Expr {
	p.expect(lexer.Separator, "{")
	var fields []ast.StructInitField
	for !p.is(lexer.Separator, "}") {
		fstart := p.startPos()
		fieldName := p.expect(lexer.Identifier, "")
		p.expect(lexer.Operator, ":")
		value := p.parseExpr()
		fields = append(fields, ast.StructInitField{Name: fieldName.Contents, Value: value, Sp: spanFrom(fstart, p.lastConsumed())})
		if p.accept(lexer.Separator, ",") == nil {
			break
		}
	}
	p.expect(lexer.Separator, "}")
	return ast.StructInit{Name: name, Fields: fields, Sp: spanFrom(start, p.lastConsumed())}
}

func splitEscapeBlock(contents string) (typeAnnotation, code string) {
	parts := strings.SplitN(contents, "\x00", 2)
	if len(parts) != 2 {
		return "", contents
	}
	return parts[0], parts[1]
}

func unescapeString(raw string) string {
	return strings.ReplaceAll(raw, `\"`, `"`)
}

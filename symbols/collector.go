package symbols

import (
	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/ir"
)

// Collector walks a freshly-lowered module once and builds the Table tree
// — every declaration gets a SymbolValue in the table of its enclosing
// scope, and every Func/Struct/Enum/StructInit scope gets its own child
// table, before any identifier resolution happens. resolve runs against
// the tree this produces; typecheck does not use it.
type Collector struct {
	ir.BaseWalker
	cursor      *Table
	parentStack []*Table
	errs        []diag.Error
}

// Collect builds and returns the root (global) Table for mod, plus any
// duplicate-declaration diagnostics found along the way.
func Collect(ctx *ir.Ctx, mod *ir.Module) (*Table, []diag.Error) {
	root := NewTable("<global>")
	c := &Collector{cursor: root}
	if err := ir.Walk(ctx, mod, c); err != nil {
		panic("INTERNAL ERROR: symbol collection must never fail: " + err.Error())
	}
	return root, c.errs
}

// insert inserts v under name, recording a DuplicateDeclarationError
// instead when the enclosing scope already declares that name.
func (c *Collector) insert(ctx *ir.Ctx, name string, ident ir.IdentID, v SymbolValue) {
	if _, exists := c.cursor.Get(name); exists {
		c.errs = append(c.errs, &diag.DuplicateDeclarationError{Name: name, Sp: ctx.Ident(ident).Span})
		return
	}
	c.cursor.Insert(v)
}

func (c *Collector) VisitStmt(ctx *ir.Ctx, id ir.StmtID) error {
	switch s := ctx.Stmt(id).(type) {
	case ir.VarDeclStmt:
		c.insert(ctx, ctx.Ident(s.Name).Name, s.Name, SymbolValue{Kind: SymbolVariable, Name: ctx.Ident(s.Name).Name, VarDecl: id})
	case ir.FunctionDeclStmt:
		c.insert(ctx, ctx.Ident(s.Name).Name, s.Name, SymbolValue{Kind: SymbolFunction, Name: ctx.Ident(s.Name).Name, Func: s.Func})
	case ir.StructDeclStmt:
		c.insert(ctx, ctx.Ident(s.Name).Name, s.Name, SymbolValue{Kind: SymbolStruct, Name: ctx.Ident(s.Name).Name, Struct: s.Struct})
	case ir.EnumDeclStmt:
		c.insert(ctx, ctx.Ident(s.Name).Name, s.Name, SymbolValue{Kind: SymbolEnum, Name: ctx.Ident(s.Name).Name, Enum: s.Enum})
	}
	return nil
}

func (c *Collector) VisitScopeBegin(ctx *ir.Ctx, scope ir.ScopeValue) error {
	child := NewTable(scope.Name)
	c.cursor.AddChild(child)
	c.parentStack = append(c.parentStack, c.cursor)
	c.cursor = child

	switch scope.Kind {
	case ir.ScopeFunc:
		fn := ctx.Func(scope.Func)
		for i, arg := range fn.Args {
			name := ctx.Ident(arg.Name).Name
			c.insert(ctx, name, arg.Name, SymbolValue{
				Kind: SymbolFunctionArg, Name: name,
				Func: scope.Func, FuncArgIdx: i,
			})
		}
	case ir.ScopeStruct:
		st := ctx.Struct(scope.Struct)
		for _, attrID := range st.Attrs {
			attr := ctx.StructAttr(attrID)
			name := ctx.Ident(attr.Name).Name
			c.insert(ctx, name, attr.Name, SymbolValue{
				Kind: SymbolStructAttr, Name: name,
				Struct: scope.Struct, StructAttr: attrID,
			})
		}
	case ir.ScopeEnum:
		en := ctx.Enum(scope.Enum)
		for _, valID := range en.Values {
			val := ctx.EnumValue(valID)
			name := ctx.Ident(val.Name).Name
			c.insert(ctx, name, val.Name, SymbolValue{
				Kind: SymbolEnumValue, Name: name,
				Enum: scope.Enum, EnumValue: valID,
			})
		}
	case ir.ScopeStructInit:
		// a struct-init block introduces a naming scope for any function
		// literals nested in its values, but declares nothing of its own.
	}
	return nil
}

func (c *Collector) VisitScopeEnd(ctx *ir.Ctx, scope ir.ScopeValue) error {
	n := len(c.parentStack)
	c.cursor = c.parentStack[n-1]
	c.parentStack = c.parentStack[:n-1]
	return nil
}

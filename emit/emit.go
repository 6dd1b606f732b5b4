// Package emit is the code generator: one pass over a fully resolved and
// type-checked module that writes its JS-target translation verbatim to an
// io.Writer. Grounded on the original implementation's code_gen/mod.rs,
// ported node-for-node and adapted to this package's arena-id IR.
package emit

import (
	"bufio"
	"io"
	"strconv"

	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/internal/kujslog"
	"github.com/ku-lang/kujs/ir"
)

var log = kujslog.New("emit")

// Emit writes mod's JS translation to w. mod must already have passed
// resolve.Resolve and typecheck.Check with no errors; emit performs no
// further checking of its own and panics on an IR shape that implies
// otherwise (an UnresolvedMemberAccessExpr). Identifiers are written by
// name without checking whether they were resolved.
func Emit(w io.Writer, ctx *ir.Ctx, mod *ir.Module) error {
	g := &generator{ctx: ctx, w: bufio.NewWriter(w)}

	var err error
	log.Timed("emit", func() {
		err = g.module(mod)
	})
	if err != nil {
		return &diag.WriteError{Err: err}
	}
	if err := g.w.Flush(); err != nil {
		return &diag.WriteError{Err: err}
	}
	return nil
}

type generator struct {
	ctx *ir.Ctx
	w   *bufio.Writer
}

func (g *generator) write(s string) error {
	_, err := g.w.WriteString(s)
	return err
}

func (g *generator) writeIdent(id ir.IdentID) error {
	return g.write(g.ctx.Ident(id).Name)
}

// list emits n items separated by sep, "all but last" style — no trailing
// separator.
func (g *generator) list(n int, sep string, item func(i int) error) error {
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := g.write(sep); err != nil {
				return err
			}
		}
		if err := item(i); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) module(mod *ir.Module) error {
	// Enum declarations emit nothing, so they are left out before joining;
	// otherwise each one would leave an empty line behind.
	var stmts []ir.StmtID
	for _, id := range mod.Stmts {
		if _, isEnum := g.ctx.Stmt(id).(ir.EnumDeclStmt); !isEnum {
			stmts = append(stmts, id)
		}
	}
	if err := g.list(len(stmts), "\n", func(i int) error {
		return g.stmt(stmts[i])
	}); err != nil {
		return err
	}
	return g.write("\n")
}

func (g *generator) block(id ir.StmtBlockID) error {
	b := g.ctx.StmtBlock(id)
	return g.list(len(b.Stmts), "\n", func(i int) error {
		return g.stmt(b.Stmts[i])
	})
}

func (g *generator) stmt(id ir.StmtID) error {
	switch s := g.ctx.Stmt(id).(type) {
	case ir.VarDeclStmt:
		return g.varDecl(s)
	case ir.FunctionDeclStmt:
		return g.funcDecl(s)
	case ir.StructDeclStmt:
		return g.structDecl(s)
	case ir.EnumDeclStmt:
		// Enums exist only at the type level; nothing is emitted.
		return nil
	case ir.ExpressionStmt:
		if err := g.expr(s.Value); err != nil {
			return err
		}
		return g.write(";")
	case ir.ReturnStmt:
		if err := g.write("return"); err != nil {
			return err
		}
		if s.HasValue {
			if err := g.write(" "); err != nil {
				return err
			}
			if err := g.expr(s.Value); err != nil {
				return err
			}
		}
		return g.write(";")
	default:
		panic("INTERNAL ERROR: unhandled stmt kind in emit")
	}
}

func (g *generator) varDecl(s ir.VarDeclStmt) error {
	kw := "const "
	if s.Mutable {
		kw = "let "
	}
	if err := g.write(kw); err != nil {
		return err
	}
	if err := g.writeIdent(s.Name); err != nil {
		return err
	}
	if err := g.write(" = "); err != nil {
		return err
	}
	if err := g.expr(s.Value); err != nil {
		return err
	}
	return g.write(";")
}

// structDecl emits a struct as a constructor function: one parameter per
// attribute in declaration order, each assigned onto `this` and falling
// back to its default (via `??`) when the caller passes null/undefined.
func (g *generator) structDecl(s ir.StructDeclStmt) error {
	st := g.ctx.Struct(s.Struct)

	if err := g.write("function "); err != nil {
		return err
	}
	if err := g.writeIdent(st.Name); err != nil {
		return err
	}
	if err := g.write(" ("); err != nil {
		return err
	}
	if err := g.list(len(st.Attrs), ", ", func(i int) error {
		return g.writeIdent(g.ctx.StructAttr(st.Attrs[i]).Name)
	}); err != nil {
		return err
	}
	if err := g.write(") {\n"); err != nil {
		return err
	}
	if err := g.list(len(st.Attrs), ";\n", func(i int) error {
		attr := g.ctx.StructAttr(st.Attrs[i])
		if err := g.write("this."); err != nil {
			return err
		}
		if err := g.writeIdent(attr.Name); err != nil {
			return err
		}
		if err := g.write(" = "); err != nil {
			return err
		}
		if err := g.writeIdent(attr.Name); err != nil {
			return err
		}
		if attr.Default != nil {
			if err := g.write(" ?? "); err != nil {
				return err
			}
			if err := g.expr(*attr.Default); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return g.write("}")
}

func (g *generator) funcArgs(args []ir.FunctionArg) error {
	if err := g.write("("); err != nil {
		return err
	}
	if err := g.list(len(args), ", ", func(i int) error {
		return g.writeIdent(args[i].Name)
	}); err != nil {
		return err
	}
	return g.write(")")
}

func (g *generator) funcDecl(s ir.FunctionDeclStmt) error {
	fn := g.ctx.Func(s.Func)

	if err := g.write("function "); err != nil {
		return err
	}
	if err := g.writeIdent(s.Name); err != nil {
		return err
	}
	if err := g.funcArgs(fn.Args); err != nil {
		return err
	}
	if err := g.write(" {"); err != nil {
		return err
	}
	if err := g.block(fn.Body.Get()); err != nil {
		return err
	}
	return g.write("}")
}

func (g *generator) expr(id ir.ExprID) error {
	switch e := g.ctx.Expr(id).(type) {
	case ir.StringLiteralExpr:
		if err := g.write("\""); err != nil {
			return err
		}
		if err := g.write(e.Value); err != nil {
			return err
		}
		return g.write("\"")

	case ir.NumberLiteralExpr:
		return g.write(e.Raw)

	case ir.BoolLiteralExpr:
		if e.Value {
			return g.write("true")
		}
		return g.write("false")

	case ir.IdentifierExpr:
		return g.writeIdent(e.Ident)

	case ir.FunctionExpr:
		fn := g.ctx.Func(e.Func)
		if err := g.funcArgs(fn.Args); err != nil {
			return err
		}
		if err := g.write(" => {"); err != nil {
			return err
		}
		if err := g.block(fn.Body.Get()); err != nil {
			return err
		}
		return g.write("}")

	case ir.FunctionCallExpr:
		if err := g.expr(e.Callee); err != nil {
			return err
		}
		if err := g.write("("); err != nil {
			return err
		}
		if err := g.list(len(e.Args), ", ", func(i int) error {
			return g.expr(e.Args[i])
		}); err != nil {
			return err
		}
		return g.write(")")

	case ir.StructInitExpr:
		return g.structInit(e)

	case ir.StructAccessExpr:
		if err := g.expr(e.Object); err != nil {
			return err
		}
		if err := g.write("."); err != nil {
			return err
		}
		return g.writeIdent(e.AttrName)

	case ir.TupleExpr:
		if err := g.write("["); err != nil {
			return err
		}
		if err := g.list(len(e.Items), ", ", func(i int) error {
			return g.expr(e.Items[i])
		}); err != nil {
			return err
		}
		return g.write("]")

	case ir.TupleAccessExpr:
		if err := g.expr(e.Object); err != nil {
			return err
		}
		if err := g.write("["); err != nil {
			return err
		}
		if err := g.write(strconv.Itoa(e.Index)); err != nil {
			return err
		}
		return g.write("]")

	case ir.EnumInitExpr:
		return g.enumInit(e)

	case ir.EscapeBlockExpr:
		return g.write(e.Code)

	case ir.AssignmentExpr:
		if err := g.expr(e.Target); err != nil {
			return err
		}
		if err := g.write(" = "); err != nil {
			return err
		}
		return g.expr(e.Value)

	case ir.UnresolvedMemberAccessExpr:
		panic("INTERNAL ERROR: UnresolvedMemberAccessExpr survived into emit")

	default:
		panic("INTERNAL ERROR: unhandled expr kind in emit")
	}
}

// structInit walks the struct's declared attrs in order (not e.Values'
// source order) so positional constructor arguments always land correctly;
// an attribute with no supplied value emits `null`, deferring to the
// constructor's own `??` default.
func (g *generator) structInit(e ir.StructInitExpr) error {
	structID := g.ctx.Ident(e.StructName).Target.Struct
	st := g.ctx.Struct(structID)

	if err := g.write("new "); err != nil {
		return err
	}
	if err := g.writeIdent(st.Name); err != nil {
		return err
	}
	if err := g.write("("); err != nil {
		return err
	}
	if err := g.list(len(st.Attrs), ", ", func(i int) error {
		name := g.ctx.Ident(g.ctx.StructAttr(st.Attrs[i]).Name).Name
		for _, vID := range e.Values {
			v := g.ctx.StructInitValue(vID)
			if g.ctx.Ident(v.AttrName).Name == name {
				return g.expr(v.Value)
			}
		}
		return g.write("null")
	}); err != nil {
		return err
	}
	return g.write(")")
}

// enumInit has no analogue in the original code generator (its own
// `Expr::EnumInit` arm was never implemented there, and spec.md's emitter
// table is silent on it too — see DESIGN.md). Emitted as a tagged plain
// object, JS's idiomatic stand-in for a closed sum type: `{tag, values}`.
func (g *generator) enumInit(e ir.EnumInitExpr) error {
	valueIdent := g.ctx.Ident(e.ValueName)

	if err := g.write("{tag: \""); err != nil {
		return err
	}
	if err := g.write(valueIdent.Name); err != nil {
		return err
	}
	if err := g.write("\", values: ["); err != nil {
		return err
	}
	if err := g.list(len(e.Args), ", ", func(i int) error {
		return g.expr(e.Args[i])
	}); err != nil {
		return err
	}
	return g.write("]}")
}

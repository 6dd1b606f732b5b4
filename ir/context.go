package ir

// Ctx owns every arena the IR is built from. A Ctx outlives a single
// type-check rerun (the rerun loop only resets typecheck-owned side tables,
// never the node arenas themselves), so the tree lowering produced is never
// reallocated mid-pipeline.
type Ctx struct {
	Idents Arena[IdentValue]

	TypeSigs      Arena[TypeSigValue]
	typeSigLookup map[string]TypeSigID
	nextTypeVar   int

	Stmts            Arena[Stmt]
	Exprs            Arena[Expr]
	StmtBlocks       Arena[StmtBlock]
	Funcs            Arena[Function]
	Structs          Arena[Struct]
	StructAttrs      Arena[StructAttr]
	Enums            Arena[Enum]
	EnumValues       Arena[EnumValue]
	StructInitValues Arena[StructInitValue]

	// ExprTypes is the side table the typechecker writes: the inferred (or
	// still-variable) type of every expression node. A fresh TypeVariable is
	// minted the first time an ExprID is looked up, so callers never need to
	// special-case "not yet typed".
	ExprTypes map[ExprID]TypeSigID
}

// NewCtx returns an empty, ready-to-lower-into context.
func NewCtx() *Ctx {
	return &Ctx{
		typeSigLookup: make(map[string]TypeSigID),
		ExprTypes:     make(map[ExprID]TypeSigID),
	}
}

// TypeOfExpr returns the current working type of expr, minting a fresh type
// variable on first access.
func (c *Ctx) TypeOfExpr(expr ExprID) TypeSigID {
	if t, ok := c.ExprTypes[expr]; ok {
		return t
	}
	t := c.FreshTypeVar()
	c.ExprTypes[expr] = t
	return t
}

// SetExprType overwrites the working type of expr.
func (c *Ctx) SetExprType(expr ExprID, t TypeSigID) {
	c.ExprTypes[expr] = t
}

// ResetInference clears every per-rerun side table the typechecker owns,
// without touching the node arenas or idents. Called at the top of each
// rerun iteration by typecheck.Check.
func (c *Ctx) ResetInference() {
	c.ExprTypes = make(map[ExprID]TypeSigID)
}

// --- thin per-arena accessors, named to mirror the node kind they wrap ---

func (c *Ctx) AllocStmt(s Stmt) StmtID   { return StmtID(c.Stmts.Alloc(s)) }
func (c *Ctx) Stmt(id StmtID) Stmt       { return c.Stmts.Get(int(id)) }
func (c *Ctx) SetStmt(id StmtID, s Stmt) { c.Stmts.Set(int(id), s) }

func (c *Ctx) AllocExpr(e Expr) ExprID   { return ExprID(c.Exprs.Alloc(e)) }
func (c *Ctx) Expr(id ExprID) Expr       { return c.Exprs.Get(int(id)) }
func (c *Ctx) SetExpr(id ExprID, e Expr) { c.Exprs.Set(int(id), e) }

func (c *Ctx) AllocStmtBlock(b StmtBlock) StmtBlockID { return StmtBlockID(c.StmtBlocks.Alloc(b)) }
func (c *Ctx) StmtBlock(id StmtBlockID) StmtBlock     { return c.StmtBlocks.Get(int(id)) }

func (c *Ctx) AllocFunc(f Function) FuncID  { return FuncID(c.Funcs.Alloc(f)) }
func (c *Ctx) Func(id FuncID) Function       { return c.Funcs.Get(int(id)) }
func (c *Ctx) SetFunc(id FuncID, f Function) { c.Funcs.Set(int(id), f) }

func (c *Ctx) AllocStruct(s Struct) StructID { return StructID(c.Structs.Alloc(s)) }
func (c *Ctx) Struct(id StructID) Struct     { return c.Structs.Get(int(id)) }

func (c *Ctx) AllocStructAttr(a StructAttr) StructAttrID { return StructAttrID(c.StructAttrs.Alloc(a)) }
func (c *Ctx) StructAttr(id StructAttrID) StructAttr     { return c.StructAttrs.Get(int(id)) }

func (c *Ctx) AllocEnum(e Enum) EnumID { return EnumID(c.Enums.Alloc(e)) }
func (c *Ctx) Enum(id EnumID) Enum     { return c.Enums.Get(int(id)) }

func (c *Ctx) AllocEnumValue(v EnumValue) EnumValueID { return EnumValueID(c.EnumValues.Alloc(v)) }
func (c *Ctx) EnumValue(id EnumValueID) EnumValue     { return c.EnumValues.Get(int(id)) }

func (c *Ctx) AllocStructInitValue(v StructInitValue) StructInitValueID {
	return StructInitValueID(c.StructInitValues.Alloc(v))
}
func (c *Ctx) StructInitValue(id StructInitValueID) StructInitValue {
	return c.StructInitValues.Get(int(id))
}

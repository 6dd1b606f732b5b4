package typecheck

import "github.com/ku-lang/kujs/ir"

// registry indexes top-level struct/enum declarations by name, so a pass
// can go from a StructAccessExpr's inferred Struct{Name} type-sig back to
// the declaration's attribute list without re-walking the module. It is
// built by one flat pass over mod.Stmts, so a struct or enum declared
// inside a function body is not indexed.
type registry struct {
	structs map[string]ir.StructID
	enums   map[string]ir.EnumID
}

func buildRegistry(ctx *ir.Ctx, mod *ir.Module) *registry {
	r := &registry{structs: map[string]ir.StructID{}, enums: map[string]ir.EnumID{}}
	for _, id := range mod.Stmts {
		switch s := ctx.Stmt(id).(type) {
		case ir.StructDeclStmt:
			r.structs[ctx.Ident(s.Name).Name] = s.Struct
		case ir.EnumDeclStmt:
			r.enums[ctx.Ident(s.Name).Name] = s.Enum
		}
	}
	return r
}

func funcTypeSig(ctx *ir.Ctx, id ir.FuncID) ir.TypeSigID {
	fn := ctx.Func(id)
	args := make([]ir.TypeSigID, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = a.TypeSig.Sig
	}
	return ctx.GetTypeSig(ir.TypeSigValue{Kind: ir.TypeSigFunction, FuncArgs: args, FuncReturn: fn.ReturnType.Get().Sig})
}

func structTypeSig(ctx *ir.Ctx, name string) ir.TypeSigID {
	return ctx.GetTypeSig(ir.TypeSigValue{Kind: ir.TypeSigStruct, Name: name})
}

func enumTypeSig(ctx *ir.Ctx, name string) ir.TypeSigID {
	return ctx.GetTypeSig(ir.TypeSigValue{Kind: ir.TypeSigEnum, Name: name})
}

// attrEffectiveType is a struct attribute's working type for unification
// purposes: its declared annotation, or (when omitted) its default value's
// inferred type. Returns false only for the degenerate case of an attr
// with neither.
func attrEffectiveType(ctx *ir.Ctx, attr ir.StructAttr) (ir.TypeSigID, bool) {
	if attr.TypeSig != nil {
		return attr.TypeSig.Sig, true
	}
	if attr.Default != nil {
		return ctx.TypeOfExpr(*attr.Default), true
	}
	return 0, false
}

// describeTypeSig renders a human-readable name for a type-sig value, used
// only in diagnostics.
func describeTypeSig(ctx *ir.Ctx, id ir.TypeSigID) string {
	v := ctx.TypeSig(id)
	switch v.Kind {
	case ir.TypeSigBuiltin:
		return v.Builtin.String()
	case ir.TypeSigStruct, ir.TypeSigEnum, ir.TypeSigTrait:
		return v.Name
	case ir.TypeSigFunction:
		s := "("
		for i, a := range v.FuncArgs {
			if i > 0 {
				s += ", "
			}
			s += describeTypeSig(ctx, a)
		}
		return s + ") -> " + describeTypeSig(ctx, v.FuncReturn)
	case ir.TypeSigTuple:
		s := "("
		for i, m := range v.TupleMembers {
			if i > 0 {
				s += ", "
			}
			s += describeTypeSig(ctx, m)
		}
		return s + ")"
	case ir.TypeSigVariable, ir.TypeSigUnresolved:
		return "?"
	default:
		return "?"
	}
}

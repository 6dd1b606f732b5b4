package resolve

import "github.com/ku-lang/kujs/symbols"

// flattenTables indexes every scope table in root's tree by its own name,
// regardless of nesting depth, so struct-init/enum-init resolution can
// find a struct's attribute table or an enum's value table by name alone
// without re-walking the zipper's current path.
func flattenTables(root *symbols.Table) map[string]*symbols.Table {
	out := make(map[string]*symbols.Table)
	var walk func(t *symbols.Table)
	walk = func(t *symbols.Table) {
		out[t.Name] = t
		for _, c := range t.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

package symbols

// Table holds the bindings introduced by exactly one lexical scope (a
// module, a function body, a struct body, an enum body, a struct-init
// block). SymbolIDs are local to their owning Table, not globally unique —
// a lookup always walks from a specific Table outward, never compares ids
// across tables.
type Table struct {
	Name string

	values  []SymbolValue
	byName  map[string]SymbolID
	ordered []SymbolID // insertion order of order-dependent bindings only

	Children map[string]*Table
}

// NewTable returns an empty table for the scope named name.
func NewTable(name string) *Table {
	return &Table{
		Name:     name,
		byName:   make(map[string]SymbolID),
		Children: make(map[string]*Table),
	}
}

// Insert adds v under its own Name, returning the id it was given. A
// duplicate name in the same scope overwrites the previous binding — the
// caller (symbols collector / resolve) is responsible for rejecting
// redeclarations before calling Insert if that should be an error.
func (t *Table) Insert(v SymbolValue) SymbolID {
	id := SymbolID(len(t.values))
	t.values = append(t.values, v)
	t.byName[v.Name] = id
	if v.IsOrdered() {
		t.ordered = append(t.ordered, id)
	}
	return id
}

// Get looks a name up in this table only (no parent search).
func (t *Table) Get(name string) (SymbolValue, bool) {
	id, ok := t.byName[name]
	if !ok {
		return SymbolValue{}, false
	}
	return t.values[id], true
}

// AddChild registers a child scope table, keyed by its own name, so the
// zipper can descend into it by name later.
func (t *Table) AddChild(child *Table) {
	t.Children[child.Name] = child
}

// Names returns every name declared in this table, for fuzzy-suggestion
// candidate pools.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.values))
	for _, v := range t.values {
		names = append(names, v.Name)
	}
	return names
}

// OrderedCount returns how many order-dependent bindings this table has.
func (t *Table) OrderedCount() int {
	return len(t.ordered)
}

// OrderedName returns the name of the i-th order-dependent binding
// inserted into this table.
func (t *Table) OrderedName(i int) string {
	return t.values[t.ordered[i]].Name
}
